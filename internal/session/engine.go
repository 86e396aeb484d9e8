package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gioe/quotient/internal/blueprint"
	"github.com/gioe/quotient/internal/irt"
	"github.com/gioe/quotient/internal/itembank"
	"github.com/gioe/quotient/internal/scoring"
	"github.com/gioe/quotient/internal/selection"
	"github.com/gioe/quotient/internal/stopping"
)

// Engine composes the estimator, selector, and stopping evaluator into the
// per-examinee test loop. It holds no cross-session state; every method is a
// function of the explicit session value. Callers running sessions on
// multiple goroutines supply each its own random source.
type Engine struct {
	reg       *blueprint.Registry
	selector  *selection.Selector
	evaluator *stopping.Evaluator
	rng       *rand.Rand
}

// New creates an Engine over the given blueprint and configs. A nil rng gets
// a fresh time-seeded source; simulations pass a seeded one for
// reproducibility.
func New(reg *blueprint.Registry, selCfg selection.Config, stopCfg stopping.Config, rng *rand.Rand) (*Engine, error) {
	if reg == nil {
		return nil, errors.New("nil blueprint registry")
	}
	evaluator, err := stopping.New(reg, stopCfg)
	if err != nil {
		return nil, fmt.Errorf("stopping config: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		reg:       reg,
		selector:  selection.New(reg, selCfg),
		evaluator: evaluator,
		rng:       rng,
	}, nil
}

// Initialize creates a new session, seeding theta from the prior or the
// population default N(0,1).
func (e *Engine) Initialize(examineeID, sessionID string, p *irt.Prior) (*Session, error) {
	pr := irt.DefaultPrior()
	if p != nil {
		if p.SD <= 0 {
			return nil, fmt.Errorf("prior sd must be > 0, got %g", p.SD)
		}
		pr = *p
	}
	return &Session{
		ExamineeID: examineeID,
		SessionID:  sessionID,
		Status:     StatusInitialized,
		Prior:      pr,
		Theta:      pr.Mean,
		SE:         pr.SD,
		Coverage:   e.reg.ZeroCoverage(),
		StartedAt:  time.Now().UTC(),
	}, nil
}

// NextItem picks the next item from pool for the session. seenBefore holds
// items exposed to this examinee in prior sessions. Returns
// selection.ErrNoEligibleItems when the pool is exhausted; the caller treats
// that as a forced stop, not a failure.
func (e *Engine) NextItem(sess *Session, pool []itembank.Item, seenBefore map[string]bool) (itembank.Item, error) {
	if sess.Status == StatusComplete {
		return nil, errors.New("session already complete")
	}
	return e.selector.Select(pool, selection.State{
		Theta:        sess.Theta,
		Administered: sess.AdministeredSet(),
		SeenBefore:   seenBefore,
		Coverage:     sess.Coverage,
		ItemsGiven:   len(sess.Administered),
	}, e.rng)
}

// ProcessResponse appends the graded response, re-estimates ability,
// extends the theta trajectory, and evaluates the stopping rules. The
// session mutates in place and stays active; the caller stops administering
// items once the step result reports ShouldStop.
func (e *Engine) ProcessResponse(sess *Session, item itembank.Item, correct bool) (StepResult, error) {
	if sess.Status == StatusComplete {
		return StepResult{}, errors.New("session already complete")
	}
	if item == nil {
		return StepResult{}, errors.New("nil item")
	}
	if item.Discrimination() <= 0 {
		return StepResult{}, &irt.InvalidParameterError{
			Field:  "discrimination",
			Value:  item.Discrimination(),
			ItemID: item.ID(),
		}
	}
	if !e.reg.Has(item.Domain()) {
		return StepResult{}, &blueprint.UnknownDomainError{Tag: item.Domain()}
	}
	if sess.AdministeredSet()[item.ID()] {
		return StepResult{}, fmt.Errorf("item %q already administered this session", item.ID())
	}

	sess.Status = StatusActive
	sess.Administered = append(sess.Administered, item.ID())
	sess.Responses = append(sess.Responses, ItemResponse{
		ItemID:         item.ID(),
		Discrimination: item.Discrimination(),
		Difficulty:     item.Difficulty(),
		Domain:         item.Domain(),
		Correct:        correct,
	})
	sess.Coverage[item.Domain()]++
	if correct {
		sess.CorrectCount++
	}

	est, err := irt.EAP(sess.estimationHistory(), sess.Prior)
	if err != nil {
		return StepResult{}, fmt.Errorf("re-estimate ability: %w", err)
	}
	sess.Theta = est.Theta
	sess.SE = est.SE
	sess.Trajectory = append(sess.Trajectory, est.Theta)
	sess.SETrajectory = append(sess.SETrajectory, est.SE)

	delta, hasDelta := sess.DeltaTheta()
	decision, err := e.evaluator.Evaluate(stopping.Input{
		SE:         sess.SE,
		ItemsGiven: len(sess.Administered),
		Coverage:   sess.Coverage,
		DeltaTheta: delta,
		HasDelta:   hasDelta,
	})
	if err != nil {
		return StepResult{}, fmt.Errorf("evaluate stopping: %w", err)
	}

	return StepResult{
		Theta:        sess.Theta,
		SE:           sess.SE,
		CorrectCount: sess.CorrectCount,
		ItemsGiven:   len(sess.Administered),
		Decision:     decision,
	}, nil
}

// Finalize completes the session: converts theta to the reporting scale and
// computes the per-domain accuracy breakdown from the full history. Terminal
// and idempotent: finalizing an already-complete session keeps its recorded
// stop reason and reproduces the same result.
func (e *Engine) Finalize(sess *Session, reason stopping.Reason) (FinalResult, error) {
	if sess.Status == StatusComplete {
		reason = sess.StopReason
	} else {
		sess.Status = StatusComplete
		sess.StopReason = reason
	}

	score, err := scoring.Convert(sess.Theta, sess.SE)
	if err != nil {
		return FinalResult{}, fmt.Errorf("convert score: %w", err)
	}

	domains := make(map[string]DomainScore, e.reg.Len())
	for _, d := range e.reg.Domains() {
		domains[d.Tag] = DomainScore{}
	}
	for _, r := range sess.Responses {
		ds := domains[r.Domain]
		ds.Administered++
		if r.Correct {
			ds.Correct++
		}
		domains[r.Domain] = ds
	}
	for tag, ds := range domains {
		if ds.Administered > 0 {
			ds.Accuracy = float64(ds.Correct) / float64(ds.Administered)
			domains[tag] = ds
		}
	}

	return FinalResult{
		Theta:        sess.Theta,
		SE:           sess.SE,
		Score:        score,
		CorrectCount: sess.CorrectCount,
		ItemsGiven:   len(sess.Administered),
		Domains:      domains,
		StopReason:   reason,
	}, nil
}
