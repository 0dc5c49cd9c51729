// Package profile derives longitudinal user profiles from stored
// conversation chunks: Big-Five-style trait scores, per-topic interest
// statistics, and a time-decayed aggregated embedding.
package profile

import "strings"

// BigFiveTraits holds the five heuristic trait scores, each in [0,1] with a
// neutral baseline of 0.5.
type BigFiveTraits struct {
	Openness          float32
	Conscientiousness float32
	Extraversion      float32
	Agreeableness     float32
	Neuroticism       float32
}

// Marker lexicons for the five traits. Matching is case-folded raw substring
// counting - no word boundaries, so "art" inside "party" counts. The lists
// are fixed lookup tables, deliberately not regular expressions.
var (
	opennessMarkers = []string{
		"curious", "imagine", "creative", "art", "explore", "wonder",
		"dream", "abstract", "novel", "philosophy", "idea", "possibilit",
	}
	conscientiousnessMarkers = []string{
		"plan", "organize", "schedule", "goal", "discipline", "careful",
		"detail", "finish", "deadline", "routine", "responsib", "thorough",
	}
	extraversionMarkers = []string{
		"party", "friends", "social", "excited", "talk", "people",
		"fun", "energy", "outgoing", "together", "hang out", "crowd",
	}
	agreeablenessMarkers = []string{
		"thanks", "appreciate", "help", "kind", "agree", "sure",
		"sorry", "please", "care", "support", "welcome", "understand",
	}
	neuroticismMarkers = []string{
		"worried", "anxious", "stress", "nervous", "afraid", "upset",
		"overwhelm", "scared", "panic", "doubt", "frustrat", "insecure",
	}
)

// AnalyzeBigFive scores the lowercased concatenation of the given texts
// against the five marker lexicons. Each trait score is the marker density
// per hundred words clamped to [0,1], plus the 0.5 baseline, capped at 1.0.
// Empty input yields the neutral 0.5 on every trait.
func AnalyzeBigFive(texts []string) BigFiveTraits {
	joined := strings.ToLower(strings.Join(texts, " "))
	wordCount := len(strings.Fields(joined))
	if wordCount == 0 {
		return BigFiveTraits{
			Openness:          0.5,
			Conscientiousness: 0.5,
			Extraversion:      0.5,
			Agreeableness:     0.5,
			Neuroticism:       0.5,
		}
	}

	return BigFiveTraits{
		Openness:          traitScore(joined, opennessMarkers, wordCount),
		Conscientiousness: traitScore(joined, conscientiousnessMarkers, wordCount),
		Extraversion:      traitScore(joined, extraversionMarkers, wordCount),
		Agreeableness:     traitScore(joined, agreeablenessMarkers, wordCount),
		Neuroticism:       traitScore(joined, neuroticismMarkers, wordCount),
	}
}

func traitScore(text string, markers []string, wordCount int) float32 {
	occurrences := 0
	for _, marker := range markers {
		occurrences += strings.Count(text, marker)
	}

	raw := float32(occurrences) / float32(wordCount) * 100
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}

	score := raw + 0.5
	if score > 1 {
		score = 1
	}
	return score
}
