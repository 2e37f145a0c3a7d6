package aifml_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"i4.energy/across/fmlgw/aifml"
)

// recorder builds buckets whose actions append their name to calls.
type recorder struct {
	calls []string
}

func (r *recorder) bucket(name string, low, high float64) aifml.Bucket {
	return aifml.Bucket{
		Name:   name,
		Low:    low,
		High:   high,
		Action: func() { r.calls = append(r.calls, name) },
	}
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected []string
	}{
		{name: "Just below a boundary", value: 34.9, expected: []string{"f1"}},
		{name: "Lower bound is inclusive", value: 35.0, expected: []string{"f2"}},
		{name: "Upper bound is exclusive", value: 100.0, expected: nil},
		{name: "Below every range", value: -1, expected: nil},
		{name: "NaN matches nothing", value: math.NaN(), expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			buckets := []aifml.Bucket{
				r.bucket("f1", 0, 35),
				r.bucket("f2", 35, 65),
				r.bucket("f3", 65, 100),
			}

			fired := aifml.Dispatch(tt.value, buckets)
			assert.Equal(t, tt.expected, r.calls)
			assert.Equal(t, tt.expected, fired)
		})
	}
}

func TestDispatch_AllMatchesFire(t *testing.T) {
	r := &recorder{}
	buckets := []aifml.Bucket{
		r.bucket("f1", 0, 50),
		r.bucket("f2", 40, 100),
	}

	aifml.Dispatch(45, buckets)
	assert.Equal(t, []string{"f1", "f2"}, r.calls, "overlapping buckets fire in listed order")
}

func TestDispatch_EmptyBucketFiresNothing(t *testing.T) {
	r := &recorder{}
	aifml.Dispatch(10, []aifml.Bucket{r.bucket("empty", 10, 10)})
	assert.Empty(t, r.calls)
}

func TestValidateBuckets(t *testing.T) {
	r := &recorder{}

	assert.NoError(t, aifml.ValidateBuckets([]aifml.Bucket{r.bucket("ok", 0, 1), r.bucket("point", 2, 2)}))
	assert.ErrorIs(t, aifml.ValidateBuckets([]aifml.Bucket{r.bucket("reversed", 5, 1)}), aifml.ErrInvalidBucket)
	assert.ErrorIs(t, aifml.ValidateBuckets([]aifml.Bucket{{Name: "no action", Low: 0, High: 1}}), aifml.ErrInvalidBucket)
	assert.ErrorIs(t, aifml.ValidateBuckets([]aifml.Bucket{r.bucket("nan", math.NaN(), 1)}), aifml.ErrInvalidBucket)
}
