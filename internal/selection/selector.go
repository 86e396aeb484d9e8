// Package selection chooses the next item to administer, balancing Fisher
// information against content coverage and item-exposure security.
package selection

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/gioe/quotient/internal/blueprint"
	"github.com/gioe/quotient/internal/irt"
	"github.com/gioe/quotient/internal/itembank"
)

// ErrNoEligibleItems signals that filtering left no candidate. It is a
// first-class outcome, not a fault: callers treat it as a forced stop.
var ErrNoEligibleItems = errors.New("no eligible items after filtering")

const (
	// DefaultTopK is the randomesque candidate count. K=1 degenerates to
	// pure maximum-information selection.
	DefaultTopK = 5

	// DefaultSoftTolerance is how far a domain's actual share may fall
	// below its target before soft balancing restricts the pool.
	DefaultSoftTolerance = 0.05

	// DefaultMaxItems is the test-length ceiling assumed when the caller
	// leaves it unset. Hard content balance needs a real ceiling to know
	// how many slots remain for deficits.
	DefaultMaxItems = 20
)

// Config holds selection tuning.
type Config struct {
	// TopK is the number of top-information candidates the randomesque
	// stage picks among.
	TopK int
	// SoftTolerance is the soft content-balance share tolerance.
	SoftTolerance float64
	// MaxItems is the test-length ceiling, used to decide whether enough
	// slots remain to fill all hard-balance deficits.
	MaxItems int
}

// DefaultConfig returns sensible selection defaults.
func DefaultConfig() Config {
	return Config{
		TopK:          DefaultTopK,
		SoftTolerance: DefaultSoftTolerance,
		MaxItems:      DefaultMaxItems,
	}
}

// State is the session-local view the selector needs.
type State struct {
	// Theta is the current ability estimate.
	Theta float64
	// Administered holds item ids already given this session.
	Administered map[string]bool
	// SeenBefore holds item ids exposed to this examinee in prior sessions.
	SeenBefore map[string]bool
	// Coverage maps domain tag to items administered this session.
	Coverage map[string]int
	// ItemsGiven is the count of items administered this session.
	ItemsGiven int
}

// Selector implements the selection pipeline over a blueprint.
type Selector struct {
	reg *blueprint.Registry
	cfg Config
}

// New creates a Selector. The registry carries pre-validated domain weights.
func New(reg *blueprint.Registry, cfg Config) *Selector {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.SoftTolerance <= 0 {
		cfg.SoftTolerance = DefaultSoftTolerance
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultMaxItems
	}
	return &Selector{reg: reg, cfg: cfg}
}

// Select runs the pipeline: eligibility filter, hard content balance, soft
// content balance, information ranking, randomesque exposure control.
// Returns ErrNoEligibleItems when the pool is exhausted after filtering.
func (s *Selector) Select(pool []itembank.Item, st State, rng *rand.Rand) (itembank.Item, error) {
	if rng == nil {
		return nil, errors.New("selection requires an explicit random source")
	}

	candidates := s.eligible(pool, st)
	if len(candidates) == 0 {
		return nil, ErrNoEligibleItems
	}

	if restricted := s.hardBalance(candidates, st); restricted != nil {
		candidates = restricted
	} else if restricted := s.softBalance(candidates, st); restricted != nil {
		candidates = restricted
	}

	ranked := rankByInformation(candidates, st.Theta)

	k := s.cfg.TopK
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[rng.Intn(k)], nil
}

// eligible removes items already administered this session, items exposed in
// prior sessions, and items with an invalid calibration (non-positive
// discrimination or a domain outside the blueprint).
func (s *Selector) eligible(pool []itembank.Item, st State) []itembank.Item {
	var out []itembank.Item
	for _, it := range pool {
		if it == nil || it.Discrimination() <= 0 || !s.reg.Has(it.Domain()) {
			continue
		}
		if st.Administered[it.ID()] || st.SeenBefore[it.ID()] {
			continue
		}
		out = append(out, it)
	}
	return out
}

// hardBalance restricts candidates to deficient domains when some domain is
// below its configured minimum and enough slots remain to fill every deficit.
// Returns nil when the stage does not apply or would empty the pool.
func (s *Selector) hardBalance(candidates []itembank.Item, st State) []itembank.Item {
	deficient := make(map[string]bool)
	totalDeficit := 0
	for _, d := range s.reg.Domains() {
		if gap := d.MinItems - st.Coverage[d.Tag]; gap > 0 {
			deficient[d.Tag] = true
			totalDeficit += gap
		}
	}
	if totalDeficit == 0 {
		return nil
	}
	if remaining := s.cfg.MaxItems - st.ItemsGiven; remaining < totalDeficit {
		return nil
	}
	return restrictTo(candidates, deficient)
}

// softBalance applies once every domain meets its minimum. Domains whose
// actual share trails the target by more than the tolerance restrict the
// pool. Returns nil when no domain is underweight or restriction would empty
// the pool.
func (s *Selector) softBalance(candidates []itembank.Item, st State) []itembank.Item {
	if st.ItemsGiven == 0 {
		return nil
	}
	for _, d := range s.reg.Domains() {
		if st.Coverage[d.Tag] < d.MinItems {
			return nil
		}
	}

	// Every underweight domain joins the restriction; information ranking
	// arbitrates among them downstream.
	allowed := make(map[string]bool)
	for _, d := range s.reg.Domains() {
		share := float64(st.Coverage[d.Tag]) / float64(st.ItemsGiven)
		if d.TargetShare-share > s.cfg.SoftTolerance {
			allowed[d.Tag] = true
		}
	}
	if len(allowed) == 0 {
		return nil
	}
	return restrictTo(candidates, allowed)
}

// restrictTo filters candidates to the allowed domains. Returns nil when the
// restriction would leave nothing, so the caller falls through.
func restrictTo(candidates []itembank.Item, allowed map[string]bool) []itembank.Item {
	var out []itembank.Item
	for _, it := range candidates {
		if allowed[it.Domain()] {
			out = append(out, it)
		}
	}
	return out
}

// rankByInformation sorts candidates by Fisher information at theta,
// descending, with item id as a deterministic tiebreaker.
func rankByInformation(candidates []itembank.Item, theta float64) []itembank.Item {
	type scored struct {
		item itembank.Item
		info float64
	}
	ranked := make([]scored, len(candidates))
	for i, it := range candidates {
		ranked[i] = scored{item: it, info: irt.Information(theta, it.Discrimination(), it.Difficulty())}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].info != ranked[j].info {
			return ranked[i].info > ranked[j].info
		}
		return ranked[i].item.ID() < ranked[j].item.ID()
	})

	out := make([]itembank.Item, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}
