package irt

import "fmt"

// InvalidParameterError reports a caller-supplied parameter that violates a
// model precondition. It is always a caller bug, never auto-corrected.
type InvalidParameterError struct {
	Field  string
	Value  float64
	ItemID string
}

func (e *InvalidParameterError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("invalid parameter %s=%g for item %q", e.Field, e.Value, e.ItemID)
	}
	return fmt.Sprintf("invalid parameter %s=%g", e.Field, e.Value)
}
