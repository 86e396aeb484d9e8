// Package stopping decides when an adaptive test ends. Rules are evaluated
// in a strict priority order and short-circuit on the first that applies.
package stopping

import (
	"fmt"

	"github.com/gioe/quotient/internal/blueprint"
)

// Reason is the closed set of stop reasons.
type Reason string

const (
	ReasonMaxItems              Reason = "max_items"
	ReasonSEThreshold           Reason = "se_threshold"
	ReasonThetaStable           Reason = "theta_stable"
	ReasonContentBalancePending Reason = "content_balance_pending"
	ReasonAllItemsExhausted     Reason = "all_items_exhausted"
)

// Config holds the stopping thresholds.
type Config struct {
	// MinItems is the floor below which the test never stops.
	MinItems int
	// MaxItems is the ceiling at which the test always stops.
	MaxItems int
	// SEThreshold is the target precision; se below it stops the test.
	SEThreshold float64
	// BalanceWaiverItems is the item count past which unmet content
	// balance no longer blocks stopping.
	BalanceWaiverItems int
	// StabilityDelta is the |theta change| below which the estimate counts
	// as stabilized.
	StabilityDelta float64
	// StabilitySEMargin scales SEThreshold for the stabilization rule: the
	// estimate must already be reasonably precise for theta_stable to
	// apply.
	StabilitySEMargin float64
}

// DefaultConfig returns the standard operational thresholds.
func DefaultConfig() Config {
	return Config{
		MinItems:           8,
		MaxItems:           20,
		SEThreshold:        0.30,
		BalanceWaiverItems: 16,
		StabilityDelta:     0.02,
		StabilitySEMargin:  1.25,
	}
}

// Input is the session evidence the evaluator inspects.
type Input struct {
	// SE is the current standard error of the ability estimate.
	SE float64
	// ItemsGiven is the count of items administered.
	ItemsGiven int
	// Coverage maps domain tag to items administered.
	Coverage map[string]int
	// DeltaTheta is |theta_n - theta_n-1|; valid only when HasDelta.
	DeltaTheta float64
	// HasDelta is false until at least two estimates exist.
	HasDelta bool
}

// Decision is the evaluator's verdict plus full diagnostics.
type Decision struct {
	ShouldStop bool
	// Reason is set when stopping, and to content_balance_pending when
	// unmet balance is what keeps the test running.
	Reason     Reason
	SE         float64
	ItemsGiven int
	DeltaTheta float64
	// DomainsMet maps each blueprint domain to whether its minimum count
	// is satisfied.
	DomainsMet map[string]bool
	BalanceMet bool
}

// Evaluator applies the stopping policy for one blueprint.
type Evaluator struct {
	reg *blueprint.Registry
	cfg Config
}

// New creates an Evaluator. Config bounds are checked once here.
func New(reg *blueprint.Registry, cfg Config) (*Evaluator, error) {
	if cfg.MinItems < 0 || cfg.MaxItems <= 0 {
		return nil, fmt.Errorf("item bounds must be positive, got min=%d max=%d", cfg.MinItems, cfg.MaxItems)
	}
	if cfg.MinItems > cfg.MaxItems {
		return nil, fmt.Errorf("min items %d exceeds max items %d", cfg.MinItems, cfg.MaxItems)
	}
	if cfg.SEThreshold <= 0 {
		return nil, fmt.Errorf("se threshold must be > 0, got %g", cfg.SEThreshold)
	}
	if cfg.StabilitySEMargin < 1.0 {
		cfg.StabilitySEMargin = 1.0
	}
	return &Evaluator{reg: reg, cfg: cfg}, nil
}

// Evaluate runs the rules in priority order:
// minimum items, maximum items, content balance waiver, precision threshold,
// estimate stabilization. Negative se or counts are caller errors.
func (e *Evaluator) Evaluate(in Input) (Decision, error) {
	if in.SE < 0 {
		return Decision{}, fmt.Errorf("negative se %g is a caller error", in.SE)
	}
	if in.ItemsGiven < 0 {
		return Decision{}, fmt.Errorf("negative item count %d is a caller error", in.ItemsGiven)
	}
	for tag, n := range in.Coverage {
		if n < 0 {
			return Decision{}, fmt.Errorf("negative coverage %d for domain %q is a caller error", n, tag)
		}
	}

	d := Decision{
		SE:         in.SE,
		ItemsGiven: in.ItemsGiven,
		DeltaTheta: in.DeltaTheta,
		DomainsMet: make(map[string]bool, e.reg.Len()),
		BalanceMet: true,
	}
	for _, dom := range e.reg.Domains() {
		met := in.Coverage[dom.Tag] >= dom.MinItems
		d.DomainsMet[dom.Tag] = met
		if !met {
			d.BalanceMet = false
		}
	}

	// 1. Below the minimum the test never stops, regardless of precision.
	if in.ItemsGiven < e.cfg.MinItems {
		return d, nil
	}

	// 2. At the ceiling the test always stops, overriding everything else.
	if in.ItemsGiven >= e.cfg.MaxItems {
		d.ShouldStop = true
		d.Reason = ReasonMaxItems
		return d, nil
	}

	// 3. Unmet content balance blocks stopping until the waiver threshold.
	if !d.BalanceMet && in.ItemsGiven < e.cfg.BalanceWaiverItems {
		d.Reason = ReasonContentBalancePending
		return d, nil
	}

	// 4. Precision threshold, the primary stopping path.
	if in.SE < e.cfg.SEThreshold {
		d.ShouldStop = true
		d.Reason = ReasonSEThreshold
		return d, nil
	}

	// 5. Supplementary: the estimate has stopped moving and se is already
	// close to threshold.
	if in.HasDelta && in.DeltaTheta < e.cfg.StabilityDelta &&
		in.SE <= e.cfg.SEThreshold*e.cfg.StabilitySEMargin {
		d.ShouldStop = true
		d.Reason = ReasonThetaStable
		return d, nil
	}

	return d, nil
}
