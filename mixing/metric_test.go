package mixing_test

import (
	"errors"
	"math"
	"testing"

	"github.com/dshills/plughook/mixing"
)

// dotVec carries its own inner-product reduction.
type dotVec []float64

func (v dotVec) Dot(other any) (float64, error) {
	o, ok := other.(dotVec)
	if !ok || len(o) != len(v) {
		return 0, errors.New("dot: incompatible operand")
	}
	var sum float64
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum, nil
}

// TestMetricDefaultIdentity verifies the default metric computes
// sum(a * b).
func TestMetricDefaultIdentity(t *testing.T) {
	m := mixing.NewMetric(nil)

	got, err := m.Inner([]float64{1, 2, 3}, []float64{4, 5, 6})
	if err != nil {
		t.Fatalf("Inner: %v", err)
	}
	if got != 32 {
		t.Errorf("expected 32, got %v", got)
	}
}

// TestMetricTransform verifies a custom transform yields sum(a * M(b)).
func TestMetricTransform(t *testing.T) {
	double := func(v any) any {
		b := v.([]float64)
		out := make([]float64, len(b))
		for i, x := range b {
			out[i] = 2 * x
		}
		return out
	}
	m := mixing.NewMetric(double)

	got, err := m.Inner([]float64{1, 2}, []float64{3, 4})
	if err != nil {
		t.Fatalf("Inner: %v", err)
	}
	if got != 22 {
		t.Errorf("expected 22, got %v", got)
	}
}

// TestMetricNativeDot verifies a value's own reduction is preferred.
func TestMetricNativeDot(t *testing.T) {
	m := mixing.NewMetric(nil)

	got, err := m.Inner(dotVec{1, 2}, dotVec{3, 4})
	if err != nil {
		t.Fatalf("Inner: %v", err)
	}
	if got != 11 {
		t.Errorf("expected 11, got %v", got)
	}
}

// TestMetricDotFallback verifies a failing native reduction falls back
// to the elementwise product.
func TestMetricDotFallback(t *testing.T) {
	// dotVec against []float64 fails its own Dot, but both sides view
	// as float vectors.
	m := mixing.NewMetric(func(v any) any {
		return []float64(v.(dotVec))
	})

	got, err := m.Inner(dotVec{2, 3}, dotVec{4, 5})
	if err != nil {
		t.Fatalf("Inner: %v", err)
	}
	if got != 23 {
		t.Errorf("expected 23, got %v", got)
	}
}

// TestMetricScalars verifies plain float64 operands work through the
// fallback.
func TestMetricScalars(t *testing.T) {
	m := mixing.NewMetric(nil)
	got, err := m.Inner(3.0, 4.0)
	if err != nil {
		t.Fatalf("Inner: %v", err)
	}
	if math.Abs(got-12) > 1e-12 {
		t.Errorf("expected 12, got %v", got)
	}
}

// TestMetricIncompatible verifies unusable operands fail with the
// sentinel error.
func TestMetricIncompatible(t *testing.T) {
	m := mixing.NewMetric(nil)
	if _, err := m.Inner("a", []float64{1}); !errors.Is(err, mixing.ErrIncompatible) {
		t.Errorf("expected ErrIncompatible, got %v", err)
	}
	if _, err := m.Inner([]float64{1, 2}, []float64{1}); !errors.Is(err, mixing.ErrIncompatible) {
		t.Errorf("expected ErrIncompatible on length mismatch, got %v", err)
	}
}
