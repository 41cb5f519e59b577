package analysis

// Numeric is any value that can be averaged.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean[T Numeric](values []T) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// Variance returns the population variance around mean (divides by n).
func Variance[T Numeric](values []T, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}

	variance := 0.0
	for _, v := range values {
		diff := float64(v) - mean
		variance += diff * diff
	}
	return variance / float64(len(values))
}

// varianceWithMean computes the mean and the population variance together.
// A single value has zero variance but still reports its mean.
func varianceWithMean[T Numeric](values []T) (variance float64, mean float64) {
	mean = Mean(values)
	return Variance(values, mean), mean
}
