package inspector

import "math"

const (
	// MinWeight is the weight of reports at or beyond DecayDays
	MinWeight = 0.5
	DecayDays = 30.0
)

// TimeWeight is linear decay from 1.0 at age 0 to MinWeight at DecayDays,
// flat afterwards. Negative ages (clock skew) count as fresh.
func TimeWeight(ageDays float64) float64 {
	if ageDays <= 0 || math.IsNaN(ageDays) {
		return 1.0
	}
	w := 1.0 - (1.0-MinWeight)*ageDays/DecayDays
	return math.Max(MinWeight, w)
}

// Confidence combines sample size, time span and how extreme the statistic
// is into a 0-100 value
func Confidence(sampleSize int, spanDays, extremity float64) int {
	sample := clamp01(float64(sampleSize) / 10)
	span := clamp01(spanDays / 14)
	c := 100 * (0.4*sample + 0.2*span + 0.4*clamp01(extremity))
	return int(math.Round(c))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
