package aifml

import (
	"fmt"
	"math"
)

// Action is a zero-argument hardware action.
type Action func()

// Bucket maps the half-open interval [Low, High) to an Action.
type Bucket struct {
	Name   string
	Low    float64
	High   float64
	Action Action
}

// Contains reports whether Low <= v < High.
func (b Bucket) Contains(v float64) bool {
	return b.Low <= v && v < b.High
}

// ValidateBuckets checks every bucket has Low <= High and an action.
// Overlap and coverage are left to the caller.
func ValidateBuckets(buckets []Bucket) error {
	for i, b := range buckets {
		if math.IsNaN(b.Low) || math.IsNaN(b.High) || b.Low > b.High {
			return fmt.Errorf("%w: bucket %d (%s) has range [%v, %v)", ErrInvalidBucket, i, b.Name, b.Low, b.High)
		}
		if b.Action == nil {
			return fmt.Errorf("%w: bucket %d (%s) has no action", ErrInvalidBucket, i, b.Name)
		}
	}
	return nil
}

// Dispatch invokes, in order, the action of every bucket containing value.
// All matching buckets fire, not just the first. It returns the names of the
// buckets that fired.
func Dispatch(value float64, buckets []Bucket) []string {
	var fired []string
	for _, b := range buckets {
		if !b.Contains(value) {
			continue
		}
		b.Action()
		fired = append(fired, b.Name)
		bucketFired(b.Name)
	}
	return fired
}
