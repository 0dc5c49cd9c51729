package memory

import (
	"sort"
	"strings"

	"github.com/laincorp/memex/vector"
)

// SearchResult is the transient projection produced by the unified knowledge
// search. It is never persisted.
//
// Similarity carries the combined relevance score (cosine x importance) the
// ranking used, so callers can display or threshold on the same value.
type SearchResult struct {
	Text        string
	Similarity  float32
	Category    string
	Importance  float32
	SourceInfo  string
	ContentType string
}

// SearchPersonality ranks a channel's personality records by cosine
// similarity against the query embedding and returns the top-k texts.
// Ties keep their insertion order.
func (s *Store) SearchPersonality(channelID string, query []float32, topK int) []string {
	candidates := s.PersonalityByChannel(channelID)

	scores := make([]float32, len(candidates))
	for i, m := range candidates {
		scores[i] = vector.CosineSimilarity(query, m.Embedding)
	}
	order := rankDescending(scores)

	out := make([]string, 0, topK)
	for _, i := range order {
		if len(out) == topK {
			break
		}
		out = append(out, candidates[i].Text)
	}
	return out
}

// TopByImportance returns a channel's highest-importance personality texts.
// Used when no query embedding is available.
func (s *Store) TopByImportance(channelID string, topK int) []string {
	candidates := s.PersonalityByChannel(channelID)

	scores := make([]float32, len(candidates))
	for i, m := range candidates {
		scores[i] = m.Importance
	}
	order := rankDescending(scores)

	out := make([]string, 0, topK)
	for _, i := range order {
		if len(out) == topK {
			break
		}
		out = append(out, candidates[i].Text)
	}
	return out
}

// SearchUserMemories ranks one user's memories by cosine similarity and
// returns the top-k texts.
func (s *Store) SearchUserMemories(userID string, query []float32, topK int) []string {
	candidates := s.UserMemoriesFor(userID)

	scores := make([]float32, len(candidates))
	for i, m := range candidates {
		scores[i] = vector.CosineSimilarity(query, m.Embedding)
	}
	order := rankDescending(scores)

	out := make([]string, 0, topK)
	for _, i := range order {
		if len(out) == topK {
			break
		}
		out = append(out, candidates[i].Text)
	}
	return out
}

// SearchConversations ranks a user's conversation chunks by cosine
// similarity and returns the top-k display texts (summary when present,
// raw text otherwise). An empty channelID covers all channels.
func (s *Store) SearchConversations(userID, channelID string, query []float32, topK int) []string {
	candidates := s.ConversationsFor(userID, channelID)

	scores := make([]float32, len(candidates))
	for i, c := range candidates {
		scores[i] = vector.CosineSimilarity(query, c.Embedding)
	}
	order := rankDescending(scores)

	out := make([]string, 0, topK)
	for _, i := range order {
		if len(out) == topK {
			break
		}
		out = append(out, candidates[i].DisplayText())
	}
	return out
}

// RecentConversations returns the display texts of a user's most recent n
// chunks, newest first by chunk index.
func (s *Store) RecentConversations(userID, channelID string, n int) []string {
	candidates := s.ConversationsFor(userID, channelID)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ChunkIndex > candidates[j].ChunkIndex
	})

	out := make([]string, 0, n)
	for _, c := range candidates {
		if len(out) == n {
			break
		}
		out = append(out, c.DisplayText())
	}
	return out
}

// SearchUnified scans the whole personality collection - persona and
// knowledge records alike - and ranks by cosine similarity weighted by
// stored importance. An optional category filter keeps records whose
// category equals, or is prefixed by, any filter string, so older callers
// may still pass "wiki_" prefixes.
func (s *Store) SearchUnified(query []float32, categories []string, limit int) []SearchResult {
	candidates := s.AllPersonality()

	var matched []PersonalityMemory
	for _, m := range candidates {
		if matchesCategories(m.Category, categories) {
			matched = append(matched, m)
		}
	}

	return rankResults(matched, query, limit)
}

// SearchWiki ranks knowledge-base records only, optionally restricted to a
// single content type (the category with its wiki_ prefix stripped).
func (s *Store) SearchWiki(query []float32, contentType string, limit int) []SearchResult {
	candidates := s.AllPersonality()

	var matched []PersonalityMemory
	for _, m := range candidates {
		if m.Kind != KindKnowledge {
			continue
		}
		if contentType != "" && m.ContentType != contentType {
			continue
		}
		matched = append(matched, m)
	}

	return rankResults(matched, query, limit)
}

func rankResults(candidates []PersonalityMemory, query []float32, limit int) []SearchResult {
	scores := make([]float32, len(candidates))
	for i, m := range candidates {
		scores[i] = vector.CosineSimilarity(query, m.Embedding) * m.Importance
	}
	order := rankDescending(scores)

	out := make([]SearchResult, 0, limit)
	for _, i := range order {
		if len(out) == limit {
			break
		}
		m := candidates[i]
		out = append(out, SearchResult{
			Text:        m.Text,
			Similarity:  scores[i],
			Category:    m.Category,
			Importance:  m.Importance,
			SourceInfo:  m.SourceInfo,
			ContentType: m.ContentType,
		})
	}
	return out
}

// matchesCategories reports whether category passes the filter. An empty
// filter matches everything.
func matchesCategories(category string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if category == f || strings.HasPrefix(category, f) {
			return true
		}
	}
	return false
}

// rankDescending returns candidate indices ordered by score, highest first.
// The sort is stable so equal scores keep their insertion order.
func rankDescending(scores []float32) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	return order
}
