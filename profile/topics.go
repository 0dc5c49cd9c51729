package profile

import (
	"sort"
	"strings"
	"time"

	"github.com/laincorp/memex/memory"
)

// TopicInterest holds one user's engagement statistics for a single topic.
// Only topics whose engagement cleared the minimum threshold appear in a
// profile.
type TopicInterest struct {
	Topic           string
	EngagementScore float32
	MessageCount    int
	ExpertiseLevel  float32
	FirstMentioned  time.Time
	LastMentioned   time.Time
}

// topicKeywords is the fixed topic table: ten topics, each with 7-8 keywords
// matched as case-folded substrings.
var topicKeywords = map[string][]string{
	"technology":    {"programming", "software", "computer", "code", "tech", "algorithm", "internet", "hardware"},
	"art":           {"art", "drawing", "painting", "design", "creative", "artist", "sketch", "gallery"},
	"music":         {"music", "song", "album", "band", "concert", "melody", "guitar", "playlist"},
	"philosophy":    {"philosophy", "meaning", "existence", "consciousness", "ethics", "truth", "reality"},
	"science":       {"science", "physics", "chemistry", "biology", "research", "experiment", "theory", "quantum"},
	"relationships": {"friend", "relationship", "family", "love", "partner", "dating", "trust"},
	"gaming":        {"game", "gaming", "player", "console", "quest", "multiplayer", "rpg", "esports"},
	"books":         {"book", "novel", "reading", "author", "story", "chapter", "fiction", "literature"},
	"movies":        {"movie", "film", "cinema", "actor", "director", "series", "scene", "trailer"},
	"food":          {"food", "cooking", "recipe", "restaurant", "meal", "delicious", "taste", "dinner"},
}

// Each keyword hit contributes this much engagement before the per-chunk
// average is taken.
const engagementPerHit = 0.1

// Topics with a final engagement at or below this are dropped.
const minEngagement = 0.01

// Expertise saturates at this many keyword mentions.
const expertiseSaturation = 20

type topicAccumulator struct {
	engagement float32
	mentions   int
	first      time.Time
	last       time.Time
}

// AnalyzeTopicInterests scans each chunk against the topic table and
// aggregates per-topic engagement across all chunks. The result is ordered
// by engagement score descending, topic name ascending on ties.
func AnalyzeTopicInterests(chunks []memory.ConversationChunk) []TopicInterest {
	if len(chunks) == 0 {
		return nil
	}

	acc := make(map[string]*topicAccumulator)
	for _, chunk := range chunks {
		text := strings.ToLower(chunk.ConversationText)
		for topic, keywords := range topicKeywords {
			occurrences := 0
			for _, kw := range keywords {
				occurrences += strings.Count(text, kw)
			}
			if occurrences == 0 {
				continue
			}

			a := acc[topic]
			if a == nil {
				a = &topicAccumulator{first: chunk.CreatedAt, last: chunk.CreatedAt}
				acc[topic] = a
			}
			a.engagement += float32(occurrences) * engagementPerHit
			a.mentions += occurrences
			if chunk.CreatedAt.Before(a.first) {
				a.first = chunk.CreatedAt
			}
			if chunk.CreatedAt.After(a.last) {
				a.last = chunk.CreatedAt
			}
		}
	}

	var out []TopicInterest
	for topic, a := range acc {
		engagement := a.engagement / float32(len(chunks))
		if engagement > 1 {
			engagement = 1
		}
		if engagement <= minEngagement {
			continue
		}

		expertise := float32(a.mentions) / expertiseSaturation
		if expertise > 1 {
			expertise = 1
		}

		out = append(out, TopicInterest{
			Topic:           topic,
			EngagementScore: engagement,
			MessageCount:    a.mentions,
			ExpertiseLevel:  expertise,
			FirstMentioned:  a.first,
			LastMentioned:   a.last,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].EngagementScore != out[j].EngagementScore {
			return out[i].EngagementScore > out[j].EngagementScore
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}
