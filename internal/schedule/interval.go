package schedule

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End) of UTC instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an Interval with validation.
// Both instants are normalized to UTC.
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start.UTC(), End: end.UTC()}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate returns ErrInvalidInterval unless Start is strictly before End.
func (iv Interval) Validate() error {
	if !iv.Start.Before(iv.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps returns true if two half-open intervals intersect.
// Two intervals overlap if: a.Start < b.End AND b.Start < a.End.
// Touching endpoints do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return other.Start.Before(iv.End) && iv.Start.Before(other.End)
}

// Clamp returns the portion of iv that falls inside bounds.
// The second return value is false if the two intervals are disjoint.
func (iv Interval) Clamp(bounds Interval) (Interval, bool) {
	start := iv.Start
	if bounds.Start.After(start) {
		start = bounds.Start
	}
	end := iv.End
	if bounds.End.Before(end) {
		end = bounds.End
	}
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Hours returns the length of the interval in fractional hours.
func (iv Interval) Hours() float64 {
	return iv.Duration().Hours()
}

// String formats the interval for error messages and logs.
func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}
