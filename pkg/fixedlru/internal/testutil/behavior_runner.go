package testutil

import (
	"testing"

	"github.com/calvinalkan/fixedlru/pkg/fixedlru"
)

// BehaviorRunConfig configures a model-vs-real behavior test run.
type BehaviorRunConfig struct {
	// Capacity is the cache capacity. It must fit index type I.
	Capacity int

	// MaxOps caps the run length.
	MaxOps int

	// LightCompareEveryN is the cadence of length, flag and recency checks.
	// Zero turns them off.
	LightCompareEveryN int

	// HeavyCompareEveryN is the cadence of CompareState. Zero leaves only
	// the final comparison and, if CompareOnReset is set, the ones after
	// Clear and Clone.
	HeavyCompareEveryN int

	// CompareOnReset runs CompareState after every Clear and Clone.
	CompareOnReset bool
}

// DefaultBehaviorRunConfig returns the cadence used by fuzz targets: a light
// comparison after every operation and a full one every 16.
func DefaultBehaviorRunConfig(capacity int) BehaviorRunConfig {
	return BehaviorRunConfig{
		Capacity:           capacity,
		MaxOps:             DefaultMaxFuzzOperations,
		LightCompareEveryN: 1,
		HeavyCompareEveryN: 16,
		CompareOnReset:     true,
	}
}

// OpSource produces operations for RunBehavior.
type OpSource interface {
	HasMore() bool
	NextOp() Operation
}

// RunBehavior feeds the same operations to the model and to a real cache
// with index type I and fails tb on the first divergence. The run ends after
// cfg.MaxOps operations or when src runs dry.
func RunBehavior[I fixedlru.Index](tb testing.TB, src OpSource, cfg BehaviorRunConfig) {
	tb.Helper()

	if cfg.MaxOps <= 0 {
		tb.Fatalf("MaxOps must be positive, got %d", cfg.MaxOps)
	}

	harness := NewHarness[I](tb, cfg.Capacity)

	for step := 1; step <= cfg.MaxOps && src.HasMore(); step++ {
		op := src.NextOp()

		modelResult := harness.ApplyModel(op)
		realResult := harness.ApplyReal(op)

		AssertOpMatch(tb, op, modelResult, realResult)

		if heavyDue(op, step, cfg) {
			CompareState(tb, harness)

			continue
		}

		if lightDue(step, cfg) {
			compareStateLight(tb, harness)
		}
	}

	CompareState(tb, harness)
}

func heavyDue(op Operation, step int, cfg BehaviorRunConfig) bool {
	if cfg.HeavyCompareEveryN > 0 && step%cfg.HeavyCompareEveryN == 0 {
		return true
	}

	switch op.(type) {
	case OpClear, OpClone:
		return cfg.CompareOnReset
	}

	return false
}

func lightDue(step int, cfg BehaviorRunConfig) bool {
	return cfg.LightCompareEveryN > 0 && step%cfg.LightCompareEveryN == 0
}
