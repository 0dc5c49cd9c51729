package profile

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyzeBigFive_EmptyInputIsNeutral(t *testing.T) {
	for _, texts := range [][]string{nil, {}, {""}, {"", ""}} {
		traits := AnalyzeBigFive(texts)
		for name, score := range map[string]float32{
			"openness":          traits.Openness,
			"conscientiousness": traits.Conscientiousness,
			"extraversion":      traits.Extraversion,
			"agreeableness":     traits.Agreeableness,
			"neuroticism":       traits.Neuroticism,
		} {
			if score != 0.5 {
				t.Errorf("empty input: %s = %v, want 0.5", name, score)
			}
		}
	}
}

func TestAnalyzeBigFive_MarkerDensityRaisesScore(t *testing.T) {
	// One openness marker in 250 words: raw density 0.4, score 0.9.
	text := "curious " + strings.Repeat("zzz ", 249)

	traits := AnalyzeBigFive([]string{text})
	if math.Abs(float64(traits.Openness)-0.9) > 1e-4 {
		t.Errorf("Openness = %v, want 0.9", traits.Openness)
	}
	if traits.Neuroticism != 0.5 {
		t.Errorf("Neuroticism = %v, want the 0.5 baseline", traits.Neuroticism)
	}
}

func TestAnalyzeBigFive_ScoreCapsAtOne(t *testing.T) {
	traits := AnalyzeBigFive([]string{"curious curious curious"})
	if traits.Openness != 1.0 {
		t.Errorf("Openness = %v, want saturation at 1.0", traits.Openness)
	}
}

func TestAnalyzeBigFive_SubstringMatching(t *testing.T) {
	// "party" carries "art" inside it: both the extraversion and the
	// openness lexicons hit. Word boundaries are deliberately ignored.
	traits := AnalyzeBigFive([]string{"party"})
	if traits.Extraversion != 1.0 {
		t.Errorf("Extraversion = %v, want 1.0", traits.Extraversion)
	}
	if traits.Openness != 1.0 {
		t.Errorf("Openness = %v, want 1.0 from the embedded marker", traits.Openness)
	}
}

func TestAnalyzeBigFive_CaseFolding(t *testing.T) {
	lower := AnalyzeBigFive([]string{"CURIOUS " + strings.Repeat("zzz ", 249)})
	if math.Abs(float64(lower.Openness)-0.9) > 1e-4 {
		t.Errorf("uppercase marker not counted: Openness = %v", lower.Openness)
	}
}
