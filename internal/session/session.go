// Package session orchestrates one adaptive test: initialize, process
// responses with re-estimation and stop evaluation, and finalize to a
// reported score.
package session

import (
	"time"

	"github.com/gioe/quotient/internal/irt"
	"github.com/gioe/quotient/internal/scoring"
	"github.com/gioe/quotient/internal/stopping"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusInitialized Status = "initialized"
	StatusActive      Status = "active"
	StatusComplete    Status = "complete"
)

// ItemResponse records one administered item with its IRT parameters
// snapshotted at administration time, so later recalibration never changes
// history.
type ItemResponse struct {
	ItemID         string  `json:"item_id"`
	Discrimination float64 `json:"discrimination"`
	Difficulty     float64 `json:"difficulty"`
	Domain         string  `json:"domain"`
	Correct        bool    `json:"correct"`
}

// Session is the full per-examinee state. It is a plain value: the caller
// stores it between calls and supplies it back unchanged; sessions never
// alias each other, so concurrent examinees need no locking.
type Session struct {
	ExamineeID string `json:"examinee_id"`
	SessionID  string `json:"session_id"`
	Status     Status `json:"status"`

	Prior irt.Prior `json:"prior"`
	Theta float64   `json:"theta"`
	SE    float64   `json:"se"`

	// Administered holds item ids in administration order; ids are unique
	// per session.
	Administered []string       `json:"administered"`
	Responses    []ItemResponse `json:"responses"`
	// Coverage maps domain tag to items administered; counts sum to
	// len(Administered).
	Coverage map[string]int `json:"coverage"`
	// Trajectory holds theta after each response, used for stabilization
	// checks. Its length equals len(Administered).
	Trajectory []float64 `json:"trajectory"`
	// SETrajectory holds the standard error after each response, parallel
	// to Trajectory.
	SETrajectory []float64 `json:"se_trajectory"`

	CorrectCount int             `json:"correct_count"`
	StartedAt    time.Time       `json:"started_at"`
	StopReason   stopping.Reason `json:"stop_reason,omitempty"`
}

// AdministeredSet returns the administered ids as a lookup set.
func (s *Session) AdministeredSet() map[string]bool {
	set := make(map[string]bool, len(s.Administered))
	for _, id := range s.Administered {
		set[id] = true
	}
	return set
}

// DeltaTheta returns |change| between the last two trajectory entries, and
// whether two entries exist yet.
func (s *Session) DeltaTheta() (float64, bool) {
	n := len(s.Trajectory)
	if n < 2 {
		return 0, false
	}
	d := s.Trajectory[n-1] - s.Trajectory[n-2]
	if d < 0 {
		d = -d
	}
	return d, true
}

// estimationHistory converts the response log into estimator input.
func (s *Session) estimationHistory() []irt.Response {
	rs := make([]irt.Response, len(s.Responses))
	for i, r := range s.Responses {
		rs[i] = irt.Response{
			ItemID:         r.ItemID,
			Discrimination: r.Discrimination,
			Difficulty:     r.Difficulty,
			Correct:        r.Correct,
		}
	}
	return rs
}

// StepResult is returned for every processed response.
type StepResult struct {
	Theta        float64
	SE           float64
	CorrectCount int
	ItemsGiven   int
	Decision     stopping.Decision
}

// DomainScore is the per-domain accuracy breakdown in a final result.
type DomainScore struct {
	Administered int
	Correct      int
	Accuracy     float64
}

// FinalResult is produced by Finalize.
type FinalResult struct {
	Theta        float64
	SE           float64
	Score        scoring.Result
	CorrectCount int
	ItemsGiven   int
	Domains      map[string]DomainScore
	StopReason   stopping.Reason
}
