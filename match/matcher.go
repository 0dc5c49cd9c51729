package match

import (
	"fmt"
	"log"
	"sort"

	"github.com/dgraph-io/ristretto"

	"github.com/laincorp/memex/memory"
	"github.com/laincorp/memex/profile"
)

// Recommendation pairs a candidate user with their compatibility score.
type Recommendation struct {
	UserID string
	Score  float32
}

// Matcher computes weighted multi-factor similarity between user profiles
// and ranks recommendations. Pair scores are cached; cache keys include both
// profiles' UpdatedAt and the store's conversation revision, so a rebuilt
// profile or a newly appended chunk naturally misses the stale entry.
type Matcher struct {
	store    *memory.Store
	registry *profile.Registry
	cache    *ristretto.Cache
}

// NewMatcher creates a Matcher over the given store and registry.
func NewMatcher(store *memory.Store, registry *profile.Registry) (*Matcher, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create similarity cache: %w", err)
	}

	return &Matcher{store: store, registry: registry, cache: cache}, nil
}

// ProfileSimilarity returns the weighted similarity of two profiles in
// [0,1]: semantic 35%, personality 25%, interests 20%, conversation style
// 15%, interaction patterns 5%.
func (m *Matcher) ProfileSimilarity(p1, p2 profile.UserProfile) float32 {
	// The style and interaction factors read live conversation chunks, so
	// the key must change when conversations do, not only on rebuilds.
	key := fmt.Sprintf("%s@%d|%s@%d|r%d",
		p1.UserID, p1.UpdatedAt.UnixNano(),
		p2.UserID, p2.UpdatedAt.UnixNano(),
		m.store.Revision())
	if cached, ok := m.cache.Get(key); ok {
		if score, ok := cached.(float32); ok {
			return score
		}
	}

	semantic := semanticSimilarity(p1, p2)
	personality := personalitySimilarity(p1.PersonalityTraits, p2.PersonalityTraits)
	interests := interestOverlap(p1.Interests, p2.Interests)

	// Style and interaction read the raw conversation text, not the
	// profiles.
	convs1 := m.store.ConversationsFor(p1.UserID, "")
	convs2 := m.store.ConversationsFor(p2.UserID, "")
	style := styleSimilarity(convs1, convs2)
	interaction := interactionSimilarity(convs1, convs2)

	score := semantic*weightSemantic +
		personality*weightPersonality +
		interests*weightInterests +
		style*weightStyle +
		interaction*weightInteraction
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}

	m.cache.Set(key, score, 1)
	return score
}

// Recommend scores every other stored profile against the user's and returns
// up to limit candidates, best first. Equal scores keep registry order. An
// unknown user yields an empty result.
func (m *Matcher) Recommend(userID string, limit int) []Recommendation {
	if limit < 0 {
		limit = 0
	}
	target, ok := m.registry.Get(userID)
	if !ok {
		log.Printf("[MATCH] No profile for %s, nothing to recommend", userID)
		return nil
	}

	var recs []Recommendation
	for _, candidate := range m.registry.All() {
		if candidate.UserID == userID {
			continue
		}
		recs = append(recs, Recommendation{
			UserID: candidate.UserID,
			Score:  m.ProfileSimilarity(target, candidate),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
