package probe

import "time"

// Detector decides whether a latency discontinuity ("jump") occurred between
// two adjacent working-set sizes at the same stride. Jumps mark the exhaustion
// of a cache level's capacity or associativity.
type Detector interface {
	// Detect reports whether current is a jump relative to prev.
	Detect(current, prev time.Duration) bool
}

// NopDetector never flags a jump. It is the default detector: jump marking
// stays dormant until a caller opts into a real strategy.
type NopDetector struct{}

var _ Detector = NopDetector{}

func (NopDetector) Detect(_, _ time.Duration) bool {
	return false
}

// ThresholdDetector flags a jump when the latency grows by more than
// Fraction relative to the previous cell, e.g. 0.3 flags a 30% increase.
type ThresholdDetector struct {
	Fraction float64
}

var _ Detector = ThresholdDetector{}

func (d ThresholdDetector) Detect(current, prev time.Duration) bool {
	if prev <= 0 || current <= prev {
		return false
	}
	delta := current - prev

	return float64(delta)/float64(prev) > d.Fraction
}
