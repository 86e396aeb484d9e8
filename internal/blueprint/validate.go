package blueprint

import (
	"fmt"
	"math"
	"strings"
)

// validateDomains performs all structural checks on the given domain set.
// Returns a combined error describing all problems found, or nil if valid.
func validateDomains(domains []Domain) error {
	var errs []string

	if len(domains) == 0 {
		errs = append(errs, "no domains configured (at least one is required)")
	}

	tagSet := make(map[string]bool, len(domains))
	shareSum := 0.0

	for _, d := range domains {
		if d.Tag == "" {
			errs = append(errs, "domain with empty tag")
			continue
		}
		if tagSet[d.Tag] {
			errs = append(errs, fmt.Sprintf("duplicate domain tag: %q", d.Tag))
		}
		tagSet[d.Tag] = true

		if d.TargetShare < 0 {
			errs = append(errs, fmt.Sprintf("domain %q: TargetShare must be >= 0, got %f", d.Tag, d.TargetShare))
		}
		if d.MinItems < 0 {
			errs = append(errs, fmt.Sprintf("domain %q: MinItems must be >= 0, got %d", d.Tag, d.MinItems))
		}
		shareSum += d.TargetShare
	}

	if len(domains) > 0 && math.Abs(shareSum-1.0) > WeightTolerance {
		errs = append(errs, fmt.Sprintf("target shares must sum to 1.0 within %g, got %f", WeightTolerance, shareSum))
	}

	if len(errs) > 0 {
		return fmt.Errorf("blueprint validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
