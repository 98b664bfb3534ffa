package mixing

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrIncompatible is returned when two values support neither a native
// dot reduction nor the elementwise fallback.
var ErrIncompatible = errors.New("values do not support an inner product")

// Dotter is implemented by values with a native inner-product
// reduction.
type Dotter interface {
	Dot(other any) (float64, error)
}

// Metric performs inner products through a transform applied to the
// right-hand operand:
//
//	s = <a, M(b)>
//
// The default transform is the identity. A Metric holds no other
// state.
type Metric struct {
	transform func(any) any
}

// NewMetric creates a metric with the given transform. A nil transform
// means identity.
func NewMetric(transform func(any) any) *Metric {
	if transform == nil {
		transform = func(v any) any { return v }
	}
	return &Metric{transform: transform}
}

// Inner computes the inner product of a with the transformed b. The
// value's own Dot reduction is preferred; on any failure the product
// falls back to elementwise multiply-then-sum over float64 slices.
func (m *Metric) Inner(a, b any) (float64, error) {
	mb := m.transform(b)

	if d, ok := a.(Dotter); ok {
		if s, err := d.Dot(mb); err == nil {
			return s, nil
		}
	}

	av, aok := asFloats(a)
	bv, bok := asFloats(mb)
	if !aok || !bok || len(av) != len(bv) {
		return 0, fmt.Errorf("%w: %T and %T", ErrIncompatible, a, b)
	}
	var sum float64
	for i := range av {
		sum += av[i] * bv[i]
	}
	return sum, nil
}

// asFloats views a value as a float64 vector for the fallback path.
// Named slice types with float64 elements are accepted too.
func asFloats(v any) ([]float64, bool) {
	switch x := v.(type) {
	case []float64:
		return x, true
	case float64:
		return []float64{x}, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Float64 {
		out := make([]float64, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Float()
		}
		return out, true
	}
	return nil, false
}
