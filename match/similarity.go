// Package match ranks user profiles by multi-factor similarity to produce
// friendship compatibility scores and recommendations.
package match

import (
	"strings"

	"github.com/laincorp/memex/memory"
	"github.com/laincorp/memex/profile"
	"github.com/laincorp/memex/vector"
)

// Weights of the five similarity factors. They sum to 1.0; the combined
// score is clamped to [0,1] once at the end.
const (
	weightSemantic    = 0.35
	weightPersonality = 0.25
	weightInterests   = 0.20
	weightStyle       = 0.15
	weightInteraction = 0.05
)

// conversationStyle holds the heuristic style dimensions derived from a
// user's stored conversation text, each in [0,1].
type conversationStyle struct {
	formality   float32
	emotiveness float32
	verbosity   float32
	politeness  float32
}

// interactionPatterns holds heuristic interaction ratios, each in [0,1].
type interactionPatterns struct {
	responseTime   float32
	initiation     float32
	topicSwitching float32
	questionAsking float32
}

// Style and politeness marker lists. Matched as case-folded substrings,
// same semantics as the trait lexicons.
var (
	formalMarkers   = []string{"please", "thank you", "would you", "could you", "i would appreciate"}
	informalMarkers = []string{"hey", "yeah", "yep", "nah", "gonna", "wanna", "lol"}

	emotionalMarkers = []string{"feel", "emotion", "love", "hate", "excited", "sad", "happy", "angry", "!"}
	logicalMarkers   = []string{"analyze", "logic", "reason", "evidence", "data", "fact", "conclude"}

	politeMarkers   = []string{"please", "thank", "sorry", "excuse me", "pardon"}
	impoliteMarkers = []string{"shut up", "stupid", "idiot", "whatever"}
)

// semanticSimilarity compares aggregated embeddings, clamped to [-1,1].
func semanticSimilarity(p1, p2 profile.UserProfile) float32 {
	sim := vector.CosineSimilarity(p1.AggregatedEmbedding, p2.AggregatedEmbedding)
	if sim > 1 {
		sim = 1
	}
	if sim < -1 {
		sim = -1
	}
	return sim
}

// personalitySimilarity is one minus the mean absolute difference across the
// five trait dimensions.
func personalitySimilarity(t1, t2 profile.BigFiveTraits) float32 {
	sum := abs(t1.Openness-t2.Openness) +
		abs(t1.Conscientiousness-t2.Conscientiousness) +
		abs(t1.Extraversion-t2.Extraversion) +
		abs(t1.Agreeableness-t2.Agreeableness) +
		abs(t1.Neuroticism-t2.Neuroticism)
	return 1 - sum/5
}

// interestOverlap compares engagement on topics both users share, weighting
// each match by the pair's mean engagement. No overlap, or either list
// empty, scores 0.
func interestOverlap(interests1, interests2 []profile.TopicInterest) float32 {
	if len(interests1) == 0 || len(interests2) == 0 {
		return 0
	}

	var total float32
	matches := 0
	for _, a := range interests1 {
		for _, b := range interests2 {
			if a.Topic != b.Topic {
				continue
			}
			engagementSim := 1 - abs(a.EngagementScore-b.EngagementScore)
			total += engagementSim * (a.EngagementScore + b.EngagementScore) / 2
			matches++
		}
	}

	if matches == 0 {
		return 0
	}
	return total / float32(matches)
}

// styleSimilarity averages the difference-complements of the four style
// dimensions.
func styleSimilarity(convs1, convs2 []memory.ConversationChunk) float32 {
	s1 := analyzeStyle(convs1)
	s2 := analyzeStyle(convs2)

	return ((1 - abs(s1.formality-s2.formality)) +
		(1 - abs(s1.emotiveness-s2.emotiveness)) +
		(1 - abs(s1.verbosity-s2.verbosity)) +
		(1 - abs(s1.politeness-s2.politeness))) / 4
}

func analyzeStyle(convs []memory.ConversationChunk) conversationStyle {
	if len(convs) == 0 {
		return conversationStyle{formality: 0.5, emotiveness: 0.5, verbosity: 0.5, politeness: 0.5}
	}
	return conversationStyle{
		formality:   markerRatio(convs, formalMarkers, informalMarkers, 0.5),
		emotiveness: markerRatio(convs, emotionalMarkers, logicalMarkers, 0.5),
		verbosity:   analyzeVerbosity(convs),
		politeness:  markerRatio(convs, politeMarkers, impoliteMarkers, 0.7),
	}
}

// markerRatio counts positive vs negative marker occurrences across all
// conversation text and returns positive/(positive+negative), or the given
// neutral default when neither side matched.
func markerRatio(convs []memory.ConversationChunk, positive, negative []string, neutral float32) float32 {
	posCount, negCount := 0, 0
	for _, conv := range convs {
		text := strings.ToLower(conv.ConversationText)
		for _, m := range positive {
			posCount += strings.Count(text, m)
		}
		for _, m := range negative {
			negCount += strings.Count(text, m)
		}
	}

	total := posCount + negCount
	if total == 0 {
		return neutral
	}
	return float32(posCount) / float32(total)
}

// analyzeVerbosity scales average conversation length against 500 chars.
func analyzeVerbosity(convs []memory.ConversationChunk) float32 {
	totalLen := 0
	for _, conv := range convs {
		totalLen += len(conv.ConversationText)
	}
	avg := float32(totalLen) / float32(len(convs))

	v := avg / 500
	if v > 1 {
		v = 1
	}
	return v
}

// interactionSimilarity averages the difference-complements of the four
// interaction ratios.
func interactionSimilarity(convs1, convs2 []memory.ConversationChunk) float32 {
	p1 := analyzeInteraction(convs1)
	p2 := analyzeInteraction(convs2)

	return ((1 - abs(p1.responseTime-p2.responseTime)) +
		(1 - abs(p1.initiation-p2.initiation)) +
		(1 - abs(p1.topicSwitching-p2.topicSwitching)) +
		(1 - abs(p1.questionAsking-p2.questionAsking))) / 4
}

func analyzeInteraction(convs []memory.ConversationChunk) interactionPatterns {
	if len(convs) == 0 {
		return interactionPatterns{responseTime: 0.5, initiation: 0.5, topicSwitching: 0.5, questionAsking: 0.5}
	}

	totalLen := 0
	questions := 0
	totalMessages := 0
	for _, conv := range convs {
		totalLen += len(conv.ConversationText)
		questions += strings.Count(conv.ConversationText, "?")
		totalMessages += conv.MessageCount
	}
	avgLen := float32(totalLen) / float32(len(convs))

	questionAsking := float32(0)
	if totalMessages > 0 {
		questionAsking = float32(questions) / float32(totalMessages)
	}

	return interactionPatterns{
		// Fixed placeholder; computing this needs timestamp analysis the
		// chunks don't carry.
		responseTime:   0.5,
		initiation:     capAt1(float32(len(convs)) / 10),
		topicSwitching: capAt1(avgLen / 100),
		questionAsking: capAt1(questionAsking),
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func capAt1(x float32) float32 {
	if x > 1 {
		return 1
	}
	return x
}
