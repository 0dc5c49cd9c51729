package vector

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"identical direction", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"zero vector", []float32{0, 0, 0}, []float32{1, 2, 3}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
		{"both empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("CosineSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCosineSimilarity_Symmetry(t *testing.T) {
	a := []float32{0.3, -0.7, 0.2, 0.9}
	b := []float32{-0.1, 0.4, 0.8, 0.5}

	if CosineSimilarity(a, b) != CosineSimilarity(b, a) {
		t.Errorf("similarity is not symmetric")
	}
}

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	a := []float32{0.3, -0.7, 0.2, 0.9}

	got := CosineSimilarity(a, a)
	if math.Abs(float64(got)-1.0) > 1e-5 {
		t.Errorf("CosineSimilarity(a, a) = %v, want ~1.0", got)
	}
}

func TestNormalizeL2(t *testing.T) {
	v := NormalizeL2([]float32{3, 4})
	if math.Abs(float64(v[0])-0.6) > 1e-5 || math.Abs(float64(v[1])-0.8) > 1e-5 {
		t.Errorf("NormalizeL2([3 4]) = %v, want [0.6 0.8]", v)
	}
}

func TestNormalizeL2_ZeroVectorUnchanged(t *testing.T) {
	v := NormalizeL2([]float32{0, 0, 0})
	for i, x := range v {
		if x != 0 {
			t.Errorf("element %d = %v, want 0", i, x)
		}
	}
}

func TestWeightedAverage(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0, 1}}
	weights := []float32{3, 1}

	got := WeightedAverage(vectors, weights)
	if math.Abs(float64(got[0])-0.75) > 1e-5 || math.Abs(float64(got[1])-0.25) > 1e-5 {
		t.Errorf("WeightedAverage = %v, want [0.75 0.25]", got)
	}
}

func TestWeightedAverage_ZeroWeights(t *testing.T) {
	got := WeightedAverage([][]float32{{1, 2}, {3, 4}}, []float32{0, 0})
	if len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Errorf("zero weights should yield the zero vector, got %v", got)
	}
}

func TestWeightedAverage_EmptyBatch(t *testing.T) {
	got := WeightedAverage(nil, nil)
	if len(got) != DefaultDimensions {
		t.Errorf("empty batch dimension = %d, want %d", len(got), DefaultDimensions)
	}
}
