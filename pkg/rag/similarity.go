package rag

import "math"

// CosineSimilarity returns the normalized dot product of two vectors.
// Empty vectors, length mismatches (different embedding models) and
// zero-magnitude vectors all score 0 so a model mismatch degrades to
// "irrelevant" instead of crashing the retrieval path.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
