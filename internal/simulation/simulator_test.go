package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gioe/quotient/internal/blueprint"
	"github.com/gioe/quotient/internal/itembank"
	"github.com/gioe/quotient/internal/selection"
	"github.com/gioe/quotient/internal/stopping"
)

func testSimulator(t *testing.T) *Simulator {
	t.Helper()
	reg := blueprint.MustDefault()
	bank := itembank.DemoBank(reg, 10)
	sim, err := New(reg, bank, selection.DefaultConfig(), stopping.DefaultConfig())
	require.NoError(t, err)
	return sim
}

func TestRun_BatchStatistics(t *testing.T) {
	sim := testSimulator(t)
	report, err := sim.Run(Config{Examinees: 300, Seed: 42, TrueMean: 0, TrueSD: 1})
	require.NoError(t, err)

	assert.Equal(t, 300, report.Examinees)
	assert.Len(t, report.Runs, 300)

	// The EAP estimator should be close to unbiased over a population
	// centered on the prior mean.
	assert.InDelta(t, 0, report.Bias, 0.15, "bias")
	assert.Less(t, report.RMSE, 0.75, "rmse")

	stop := stopping.DefaultConfig()
	assert.GreaterOrEqual(t, report.MeanItems, float64(stop.MinItems))
	assert.LessOrEqual(t, report.MeanItems, float64(stop.MaxItems))
	assert.Greater(t, report.MeanSE, 0.0)

	total := 0
	for reason, n := range report.StopReasons {
		assert.Contains(t, []stopping.Reason{
			stopping.ReasonSEThreshold,
			stopping.ReasonMaxItems,
			stopping.ReasonThetaStable,
			stopping.ReasonAllItemsExhausted,
		}, reason)
		total += n
	}
	assert.Equal(t, 300, total, "every session needs a stop reason")
}

func TestRun_PerRunInvariants(t *testing.T) {
	sim := testSimulator(t)
	report, err := sim.Run(Config{Examinees: 50, Seed: 7, TrueMean: 0, TrueSD: 1})
	require.NoError(t, err)

	for _, run := range report.Runs {
		require.NotEmpty(t, run.SessionID)
		assert.Greater(t, run.Final.SE, 0.0, "examinee %s", run.ExamineeID)
		assert.GreaterOrEqual(t, run.Final.Theta, -4.0)
		assert.LessOrEqual(t, run.Final.Theta, 4.0)
		assert.Equal(t, len(run.Session.Administered), run.Final.ItemsGiven)
		assert.Equal(t, len(run.Session.Trajectory), run.Final.ItemsGiven)
		assert.Equal(t, len(run.Session.SETrajectory), run.Final.ItemsGiven)
		for i, se := range run.Session.SETrajectory {
			assert.Greater(t, se, 0.0, "se after response %d", i)
		}

		covSum := 0
		for _, n := range run.Session.Coverage {
			covSum += n
		}
		assert.Equal(t, run.Final.ItemsGiven, covSum, "coverage must sum to items administered")

		seen := make(map[string]bool)
		for _, id := range run.Session.Administered {
			assert.False(t, seen[id], "item %s administered twice", id)
			seen[id] = true
		}
	}
}

func TestRun_SeedReproducesStatistics(t *testing.T) {
	sim := testSimulator(t)

	a, err := sim.Run(Config{Examinees: 100, Seed: 123, TrueMean: 0, TrueSD: 1})
	require.NoError(t, err)
	b, err := sim.Run(Config{Examinees: 100, Seed: 123, TrueMean: 0, TrueSD: 1})
	require.NoError(t, err)

	assert.Equal(t, a.Bias, b.Bias)
	assert.Equal(t, a.RMSE, b.RMSE)
	assert.Equal(t, a.MeanItems, b.MeanItems)
	assert.Equal(t, a.StopReasons, b.StopReasons)

	c, err := sim.Run(Config{Examinees: 100, Seed: 124, TrueMean: 0, TrueSD: 1})
	require.NoError(t, err)
	assert.NotEqual(t, a.RMSE, c.RMSE, "different seeds should differ")
}

func TestRun_HighAbilityPopulation(t *testing.T) {
	sim := testSimulator(t)
	report, err := sim.Run(Config{Examinees: 100, Seed: 5, TrueMean: 1.5, TrueSD: 0.2})
	require.NoError(t, err)

	meanTheta := 0.0
	for _, run := range report.Runs {
		meanTheta += run.Final.Theta
	}
	meanTheta /= float64(len(report.Runs))
	// Shrinkage toward the default prior pulls estimates down a little,
	// but the population should still clearly separate from average.
	assert.Greater(t, meanTheta, 1.0)
	assert.False(t, math.IsNaN(report.RMSE))
}

func TestRun_ExposureReporting(t *testing.T) {
	sim := testSimulator(t)
	report, err := sim.Run(Config{Examinees: 60, Seed: 9, TrueMean: 0, TrueSD: 1})
	require.NoError(t, err)

	require.NotEmpty(t, report.MaxExposureItem)
	assert.Greater(t, report.MaxExposure, 0.0)
	assert.LessOrEqual(t, report.MaxExposure, 1.0)

	top := report.TopExposures(5)
	require.Len(t, top, 5)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Rate, top[i].Rate, "exposures must sort descending")
	}
	assert.Equal(t, report.MaxExposureItem, top[0].ItemID)
}

func TestRun_RejectsBadConfig(t *testing.T) {
	sim := testSimulator(t)
	_, err := sim.Run(Config{Examinees: 0, Seed: 1})
	assert.Error(t, err)
	_, err = sim.Run(Config{Examinees: 10, Seed: 1, TrueSD: -1})
	assert.Error(t, err)
}

func TestNew_RejectsEmptyBank(t *testing.T) {
	reg := blueprint.MustDefault()
	_, err := New(reg, &itembank.Bank{}, selection.DefaultConfig(), stopping.DefaultConfig())
	assert.Error(t, err)
}
