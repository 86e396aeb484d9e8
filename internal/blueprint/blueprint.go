// Package blueprint defines the content blueprint for a test form: the fixed
// set of cognitive domains with their target proportions and per-domain
// minimum item counts. Selection and stopping both consult the blueprint to
// keep every administered form content-balanced.
package blueprint

import (
	"fmt"
	"slices"
	"sort"
)

// WeightTolerance is how far the domain target shares may deviate from
// summing to exactly 1.0.
const WeightTolerance = 0.001

// Domain describes one content domain of the blueprint.
type Domain struct {
	Tag         string
	Name        string
	TargetShare float64
	MinItems    int
}

// Registry is an explicitly owned, immutable-after-construction set of
// domains. Callers construct one and pass it by reference; there is no
// package-level singleton to mutate.
type Registry struct {
	domains []Domain
	byTag   map[string]*Domain
}

// UnknownDomainError reports a domain tag outside the configured set.
// It signals a data-integrity problem upstream and is never auto-corrected.
type UnknownDomainError struct {
	Tag string
}

func (e *UnknownDomainError) Error() string {
	return fmt.Sprintf("unknown domain %q", e.Tag)
}

// New builds a Registry from the given domains, validating tags, shares, and
// minimums. Domains are kept in tag order for deterministic iteration.
func New(domains []Domain) (*Registry, error) {
	if err := validateDomains(domains); err != nil {
		return nil, err
	}

	sorted := slices.Clone(domains)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })

	r := &Registry{
		domains: sorted,
		byTag:   make(map[string]*Domain, len(sorted)),
	}
	for i := range r.domains {
		r.byTag[r.domains[i].Tag] = &r.domains[i]
	}
	return r, nil
}

// Get returns the domain for tag, or an *UnknownDomainError.
func (r *Registry) Get(tag string) (Domain, error) {
	d, ok := r.byTag[tag]
	if !ok {
		return Domain{}, &UnknownDomainError{Tag: tag}
	}
	return *d, nil
}

// Has reports whether tag belongs to the blueprint.
func (r *Registry) Has(tag string) bool {
	_, ok := r.byTag[tag]
	return ok
}

// Domains returns all domains in tag order.
func (r *Registry) Domains() []Domain {
	return slices.Clone(r.domains)
}

// Tags returns all domain tags in tag order.
func (r *Registry) Tags() []string {
	tags := make([]string, len(r.domains))
	for i, d := range r.domains {
		tags[i] = d.Tag
	}
	return tags
}

// Len returns the number of domains.
func (r *Registry) Len() int {
	return len(r.domains)
}

// MinItemsTotal returns the sum of per-domain minimum counts.
func (r *Registry) MinItemsTotal() int {
	total := 0
	for _, d := range r.domains {
		total += d.MinItems
	}
	return total
}

// ZeroCoverage returns a coverage map with every domain at zero.
func (r *Registry) ZeroCoverage() map[string]int {
	cov := make(map[string]int, len(r.domains))
	for _, d := range r.domains {
		cov[d.Tag] = 0
	}
	return cov
}
