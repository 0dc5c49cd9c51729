// Package vector provides the numeric primitives shared by the retrieval
// and profiling layers: cosine similarity, L2 normalization, and weighted
// averaging over embedding vectors.
//
// All functions degrade gracefully on malformed input. Mismatched lengths
// and zero-magnitude vectors produce a similarity of 0.0; nothing in this
// package returns an error or panics.
package vector

import "math"

// DefaultDimensions is the embedding size assumed when a batch carries no
// vectors. It matches the all-MiniLM-L6-v2 output used by the callers that
// supply embeddings.
const DefaultDimensions = 384

// CosineSimilarity returns dot(a,b) / (|a|*|b|).
//
// Returns 0.0 when the lengths differ or either vector has zero magnitude.
// The result is not clamped; callers comparing profiles clamp to [-1,1]
// themselves.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// NormalizeL2 returns v scaled to unit length. A zero-magnitude vector is
// returned unchanged.
func NormalizeL2(v []float32) []float32 {
	var norm float32
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v
	}

	mag := float32(math.Sqrt(float64(norm)))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / mag
	}
	return out
}

// WeightedAverage computes the elementwise sum(v_i*w_i) / sum(w_i) over the
// batch. The output dimension is taken from the first vector, falling back
// to DefaultDimensions for an empty batch. When the weights sum to zero the
// zero-filled vector of that dimension is returned.
func WeightedAverage(vectors [][]float32, weights []float32) []float32 {
	dim := DefaultDimensions
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	acc := make([]float32, dim)

	n := len(vectors)
	if len(weights) < n {
		n = len(weights)
	}

	var totalWeight float32
	for i := 0; i < n; i++ {
		for j, x := range vectors[i] {
			if j >= dim {
				break
			}
			acc[j] += x * weights[i]
		}
		totalWeight += weights[i]
	}

	if totalWeight == 0 {
		return acc
	}
	for j := range acc {
		acc[j] /= totalWeight
	}
	return acc
}
