package profile

import (
	"log"
	"math"
	"time"

	"github.com/laincorp/memex/memory"
	"github.com/laincorp/memex/vector"
)

// MinChunks is the minimum number of stored conversation chunks before a
// profile can be generated.
const MinChunks = 3

// decayWindowDays controls the exponential time decay of chunk embeddings:
// weight = exp(-age_in_days / decayWindowDays).
const decayWindowDays = 30

// UserProfile is the persisted profile derived from one user's conversation
// history. It is a cache over the store, never a source of truth: a rebuild
// recomputes every field from the full chunk set.
type UserProfile struct {
	UserID              string
	PersonalityTraits   BigFiveTraits
	Interests           []TopicInterest
	AggregatedEmbedding []float32
	ConversationCount   int
	TotalMessages       int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Builder turns stored conversation chunks into user profiles.
type Builder struct {
	store    *memory.Store
	registry *Registry

	// now is swappable so decay weighting is testable.
	now func() time.Time
}

// NewBuilder creates a Builder over the given store and registry.
func NewBuilder(store *memory.Store, registry *Registry) *Builder {
	return &Builder{store: store, registry: registry, now: time.Now}
}

// SetClock overrides the time source used for decay weighting and profile
// timestamps.
func (b *Builder) SetClock(now func() time.Time) {
	b.now = now
}

// Generate rebuilds the profile for userID from every stored chunk across
// all channels. It returns nil when fewer than MinChunks chunks exist -
// an expected outcome the caller branches on, not an error.
//
// A rebuild replaces any prior profile atomically; only CreatedAt survives
// from the previous record.
func (b *Builder) Generate(userID string) *UserProfile {
	chunks := b.store.ConversationsFor(userID, "")
	if len(chunks) < MinChunks {
		log.Printf("[PROFILE] Not enough data for %s: %d chunks (need %d)", userID, len(chunks), MinChunks)
		return nil
	}

	texts := make([]string, len(chunks))
	totalMessages := 0
	for i, c := range chunks {
		texts[i] = c.ConversationText
		totalMessages += c.MessageCount
	}

	now := b.now()
	p := UserProfile{
		UserID:              userID,
		PersonalityTraits:   AnalyzeBigFive(texts),
		Interests:           AnalyzeTopicInterests(chunks),
		AggregatedEmbedding: b.aggregateEmbedding(chunks, now),
		ConversationCount:   len(chunks),
		TotalMessages:       totalMessages,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if prev, ok := b.registry.Get(userID); ok {
		p.CreatedAt = prev.CreatedAt
	}

	b.registry.Put(p)
	log.Printf("[PROFILE] Built profile for %s: %d chunks, %d messages, %d interests",
		userID, p.ConversationCount, p.TotalMessages, len(p.Interests))
	return &p
}

// aggregateEmbedding combines chunk embeddings into one L2-normalized
// vector, weighting each chunk by exponential recency decay. A zero total
// weight leaves the zero vector in place.
func (b *Builder) aggregateEmbedding(chunks []memory.ConversationChunk, now time.Time) []float32 {
	if len(chunks) == 0 {
		return make([]float32, vector.DefaultDimensions)
	}

	vectors := make([][]float32, len(chunks))
	weights := make([]float32, len(chunks))
	for i, c := range chunks {
		ageDays := now.Sub(c.CreatedAt).Hours() / 24
		vectors[i] = c.Embedding
		weights[i] = float32(math.Exp(-ageDays / decayWindowDays))
	}

	return vector.NormalizeL2(vector.WeightedAverage(vectors, weights))
}
