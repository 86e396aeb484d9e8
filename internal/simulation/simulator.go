// Package simulation runs seeded batches of synthetic examinees through the
// engine to validate estimator bias, test length, and item exposure.
package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/gioe/quotient/internal/blueprint"
	"github.com/gioe/quotient/internal/irt"
	"github.com/gioe/quotient/internal/itembank"
	"github.com/gioe/quotient/internal/selection"
	"github.com/gioe/quotient/internal/session"
	"github.com/gioe/quotient/internal/stopping"
)

// Config controls a simulation batch.
type Config struct {
	// Examinees is the number of synthetic test-takers.
	Examinees int
	// Seed drives all randomness: true abilities, response draws, and
	// exposure-control picks. The same seed reproduces the same batch
	// statistics.
	Seed int64
	// TrueMean and TrueSD define the population the true abilities are
	// drawn from.
	TrueMean float64
	TrueSD   float64
}

// DefaultConfig returns a batch of 500 examinees from the standard
// population.
func DefaultConfig() Config {
	return Config{Examinees: 500, Seed: 1, TrueMean: 0, TrueSD: 1}
}

// Run is one synthetic examinee's outcome.
type Run struct {
	ExamineeID string
	SessionID  string
	TrueTheta  float64
	Final      session.FinalResult
	Session    *session.Session
}

// Report aggregates a batch.
type Report struct {
	Examinees int
	Bias      float64
	RMSE      float64
	MeanItems float64
	MeanSE    float64
	// StopReasons counts sessions by final stop reason.
	StopReasons map[stopping.Reason]int
	// MaxExposure is the highest item exposure rate (administrations / N).
	MaxExposure float64
	// MaxExposureItem is the most exposed item's id.
	MaxExposureItem string
	Runs            []Run
}

// Simulator drives the engine over a fixed bank.
type Simulator struct {
	reg     *blueprint.Registry
	pool    []itembank.Item
	selCfg  selection.Config
	stopCfg stopping.Config
}

// New creates a Simulator over the given bank and configs.
func New(reg *blueprint.Registry, bank *itembank.Bank, selCfg selection.Config, stopCfg stopping.Config) (*Simulator, error) {
	if bank == nil || len(bank.Items) == 0 {
		return nil, errors.New("empty item bank")
	}
	return &Simulator{reg: reg, pool: bank.Pool(), selCfg: selCfg, stopCfg: stopCfg}, nil
}

// Run executes the batch. A single random source seeded from cfg.Seed feeds
// ability draws, response draws, and the engine's exposure control, so batch
// statistics are reproducible.
func (s *Simulator) Run(cfg Config) (*Report, error) {
	if cfg.Examinees <= 0 {
		return nil, fmt.Errorf("examinees must be > 0, got %d", cfg.Examinees)
	}
	if cfg.TrueSD < 0 {
		return nil, fmt.Errorf("true sd must be >= 0, got %g", cfg.TrueSD)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	engine, err := session.New(s.reg, s.selCfg, s.stopCfg, rng)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	report := &Report{
		Examinees:   cfg.Examinees,
		StopReasons: make(map[stopping.Reason]int),
	}
	exposure := make(map[string]int)

	sumErr := 0.0
	sumSqErr := 0.0
	sumItems := 0
	sumSE := 0.0

	for i := 0; i < cfg.Examinees; i++ {
		trueTheta := cfg.TrueMean + cfg.TrueSD*rng.NormFloat64()
		examineeID := fmt.Sprintf("sim-%04d", i+1)

		run, err := s.runOne(engine, rng, examineeID, trueTheta, exposure)
		if err != nil {
			return nil, fmt.Errorf("examinee %s: %w", examineeID, err)
		}

		diff := run.Final.Theta - trueTheta
		sumErr += diff
		sumSqErr += diff * diff
		sumItems += run.Final.ItemsGiven
		sumSE += run.Final.SE
		report.StopReasons[run.Final.StopReason]++
		report.Runs = append(report.Runs, run)
	}

	n := float64(cfg.Examinees)
	report.Bias = sumErr / n
	report.RMSE = math.Sqrt(sumSqErr / n)
	report.MeanItems = float64(sumItems) / n
	report.MeanSE = sumSE / n

	for id, count := range exposure {
		rate := float64(count) / n
		if rate > report.MaxExposure ||
			(rate == report.MaxExposure && id < report.MaxExposureItem) {
			report.MaxExposure = rate
			report.MaxExposureItem = id
		}
	}
	return report, nil
}

// runOne administers a full adaptive test to one synthetic examinee.
func (s *Simulator) runOne(engine *session.Engine, rng *rand.Rand, examineeID string, trueTheta float64, exposure map[string]int) (Run, error) {
	sess, err := engine.Initialize(examineeID, uuid.NewString(), nil)
	if err != nil {
		return Run{}, err
	}

	reason := stopping.ReasonMaxItems
	for {
		item, err := engine.NextItem(sess, s.pool, nil)
		if errors.Is(err, selection.ErrNoEligibleItems) {
			reason = stopping.ReasonAllItemsExhausted
			break
		}
		if err != nil {
			return Run{}, err
		}

		correct := rng.Float64() < irt.Probability(trueTheta, item.Discrimination(), item.Difficulty())
		step, err := engine.ProcessResponse(sess, item, correct)
		if err != nil {
			return Run{}, err
		}
		exposure[item.ID()]++

		if step.Decision.ShouldStop {
			reason = step.Decision.Reason
			break
		}
	}

	final, err := engine.Finalize(sess, reason)
	if err != nil {
		return Run{}, err
	}
	return Run{
		ExamineeID: examineeID,
		SessionID:  sess.SessionID,
		TrueTheta:  trueTheta,
		Final:      final,
		Session:    sess,
	}, nil
}

// TopExposures returns the n highest item exposure rates from the report's
// runs, recomputed per item, highest first.
func (r *Report) TopExposures(n int) []ItemExposure {
	counts := make(map[string]int)
	for _, run := range r.Runs {
		for _, id := range run.Session.Administered {
			counts[id]++
		}
	}
	out := make([]ItemExposure, 0, len(counts))
	for id, c := range counts {
		out = append(out, ItemExposure{ItemID: id, Rate: float64(c) / float64(r.Examinees)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		return out[i].ItemID < out[j].ItemID
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// ItemExposure is one item's administration rate across a batch.
type ItemExposure struct {
	ItemID string
	Rate   float64
}
