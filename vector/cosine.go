package vector

import "math"

// Normalize returns a unit-length copy of v. The index normalizes every
// chunk embedding once at load time, so cosine similarity at query time
// reduces to a plain dot product. Zero vectors are returned as-is; they
// score 0 against everything.
func Normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}

	norm := math.Sqrt(sum)
	unit := make([]float64, len(v))
	for i, x := range v {
		unit[i] = x / norm
	}
	return unit
}

// Dot returns the inner product of a and b. For unit vectors this is their
// cosine similarity, in [-1, 1]. Mismatched lengths score 0.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
