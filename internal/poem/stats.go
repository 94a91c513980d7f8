package poem

import "math"

// mode returns the most frequent value and its frequency. Ties go to the
// smaller value.
func mode(values []int) (value, count int) {
	freq := make(map[int]int, len(values))
	for _, v := range values {
		freq[v]++
	}

	for v, n := range freq {
		if n > count || (n == count && v < value) {
			value, count = v, n
		}
	}
	return value, count
}

// stdDev is the population standard deviation; 0 for no values.
func stdDev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	avg := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := float64(v) - avg
		sq += d * d
	}

	return math.Sqrt(sq / float64(len(values)))
}
