// Package itembank defines the calibrated item surface the engine selects
// from, and a JSON loader for item-bank files.
package itembank

// Item is the calibrated-item surface the selector depends on. Any source of
// items (file bank, database, fixture) satisfies it; the engine never depends
// on a concrete item type.
type Item interface {
	// ID returns the stable item identifier.
	ID() string
	// Discrimination returns the 2PL a-parameter. Must be > 0 for a valid
	// calibration.
	Discrimination() float64
	// Difficulty returns the 2PL b-parameter.
	Difficulty() float64
	// Domain returns the content-domain tag.
	Domain() string
}

// Calibrated is the standard concrete Item. Immutable once calibrated.
type Calibrated struct {
	ItemID string
	A      float64
	B      float64
	Tag    string
}

func (c Calibrated) ID() string              { return c.ItemID }
func (c Calibrated) Discrimination() float64 { return c.A }
func (c Calibrated) Difficulty() float64     { return c.B }
func (c Calibrated) Domain() string          { return c.Tag }
