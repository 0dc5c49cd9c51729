// Package engine exposes the retrieval-and-profiling core behind one facade.
//
// The Engine owns the memory store and profile registry explicitly - no
// package-level state - and surfaces every operation the calling layer
// needs: appends, ranked searches, profile rebuilds, similarity scoring,
// recommendations, and the snapshot/restore pair consumed by the host's
// upgrade mechanism. All operations are synchronous and run to completion
// within one call.
package engine

import (
	"github.com/laincorp/memex/match"
	"github.com/laincorp/memex/memory"
	"github.com/laincorp/memex/profile"
)

// Engine wires the store, profile builder, and matcher together.
type Engine struct {
	store    *memory.Store
	registry *profile.Registry
	builder  *profile.Builder
	matcher  *match.Matcher
}

// New creates an empty engine.
func New() (*Engine, error) {
	store := memory.NewStore()
	registry := profile.NewRegistry()
	matcher, err := match.NewMatcher(store, registry)
	if err != nil {
		return nil, err
	}

	return &Engine{
		store:    store,
		registry: registry,
		builder:  profile.NewBuilder(store, registry),
		matcher:  matcher,
	}, nil
}

// Builder returns the profile builder, mainly so tests can pin its clock.
func (e *Engine) Builder() *profile.Builder {
	return e.builder
}

// --- Write operations ---

// StorePersonalityMemory appends one persona or knowledge record.
func (e *Engine) StorePersonalityMemory(m memory.PersonalityMemory) memory.PersonalityMemory {
	return e.store.AppendPersonality(m)
}

// StorePersonalityBatch appends several records in order and returns them
// with IDs, timestamps, and derived knowledge metadata filled in.
func (e *Engine) StorePersonalityBatch(ms []memory.PersonalityMemory) []memory.PersonalityMemory {
	out := make([]memory.PersonalityMemory, 0, len(ms))
	for _, m := range ms {
		out = append(out, e.store.AppendPersonality(m))
	}
	return out
}

// StoreUserMemory appends one user-scoped memory.
func (e *Engine) StoreUserMemory(m memory.UserMemory) memory.UserMemory {
	return e.store.AppendUserMemory(m)
}

// StoreConversationChunk appends one conversation window. Chunk index 0 is
// rejected; use NextChunkIndex to obtain a valid index.
func (e *Engine) StoreConversationChunk(c memory.ConversationChunk) (memory.ConversationChunk, error) {
	return e.store.AppendConversationChunk(c)
}

// RebuildProfile regenerates the user's profile from their full chunk set.
// Returns nil when the user has fewer than profile.MinChunks chunks stored.
func (e *Engine) RebuildProfile(userID string) *profile.UserProfile {
	return e.builder.Generate(userID)
}

// --- Context retrieval ---

// SearchPersonality returns a channel's top-k personality texts by cosine
// similarity against the query embedding.
func (e *Engine) SearchPersonality(channelID string, query []float32, topK int) []string {
	return e.store.SearchPersonality(channelID, query, topK)
}

// ChannelTop returns a channel's highest-importance personality texts, for
// callers with no query embedding at hand.
func (e *Engine) ChannelTop(channelID string, topK int) []string {
	return e.store.TopByImportance(channelID, topK)
}

// SearchUserMemory returns a user's top-k memory texts by similarity.
func (e *Engine) SearchUserMemory(userID string, query []float32, topK int) []string {
	return e.store.SearchUserMemories(userID, query, topK)
}

// SearchConversation returns a user's top-k conversation texts by
// similarity. An empty channelID covers all channels.
func (e *Engine) SearchConversation(userID, channelID string, query []float32, topK int) []string {
	return e.store.SearchConversations(userID, channelID, query, topK)
}

// RecentConversation returns the user's n most recent conversation texts,
// newest first by chunk index.
func (e *Engine) RecentConversation(userID, channelID string, n int) []string {
	return e.store.RecentConversations(userID, channelID, n)
}

// ConversationStats returns the chunk count and total message count for a
// user and channel.
func (e *Engine) ConversationStats(userID, channelID string) (chunks, totalMessages int) {
	return e.store.ConversationStats(userID, channelID)
}

// NextChunkIndex returns the next chunk index to assign for a user+channel.
// The first chunk of a conversation is index 1.
func (e *Engine) NextChunkIndex(userID, channelID string) int {
	return e.store.NextChunkIndex(userID, channelID)
}

// --- Unified knowledge base ---

// UnifiedSearch ranks persona and knowledge records together by similarity
// weighted by importance, optionally filtered by category (exact or prefix).
func (e *Engine) UnifiedSearch(query []float32, categories []string, limit int) []memory.SearchResult {
	return e.store.SearchUnified(query, categories, limit)
}

// WikiSearch ranks knowledge-base records only, optionally restricted to one
// content type.
func (e *Engine) WikiSearch(query []float32, contentType string, limit int) []memory.SearchResult {
	return e.store.SearchWiki(query, contentType, limit)
}

// CategoryCounts returns per-category record counts, name ascending.
func (e *Engine) CategoryCounts() []memory.CategoryInfo {
	return e.store.CategoryCounts()
}

// KnowledgeStats returns totals for the unified knowledge base.
func (e *Engine) KnowledgeStats() memory.KnowledgeStats {
	return e.store.Stats()
}

// --- Profiles and matching ---

// GetProfile returns the stored profile for a user, if any.
func (e *Engine) GetProfile(userID string) (profile.UserProfile, bool) {
	return e.registry.Get(userID)
}

// AllProfiles returns every stored profile.
func (e *Engine) AllProfiles() []profile.UserProfile {
	return e.registry.All()
}

// AnalyzeTraits runs Big-Five extraction over a user's stored conversations
// without touching their profile. The second return is false when the user
// has no conversations.
func (e *Engine) AnalyzeTraits(userID string) (profile.BigFiveTraits, bool) {
	chunks := e.store.ConversationsFor(userID, "")
	if len(chunks) == 0 {
		return profile.BigFiveTraits{}, false
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.ConversationText
	}
	return profile.AnalyzeBigFive(texts), true
}

// AnalyzeInterests runs topic-interest extraction over a user's stored
// conversations without touching their profile.
func (e *Engine) AnalyzeInterests(userID string) []profile.TopicInterest {
	return profile.AnalyzeTopicInterests(e.store.ConversationsFor(userID, ""))
}

// ProfileSimilarity scores two users' profiles in [0,1]. The second return
// is false when either profile is missing.
func (e *Engine) ProfileSimilarity(userA, userB string) (float32, bool) {
	p1, ok := e.registry.Get(userA)
	if !ok {
		return 0, false
	}
	p2, ok := e.registry.Get(userB)
	if !ok {
		return 0, false
	}
	return e.matcher.ProfileSimilarity(p1, p2), true
}

// Recommend returns up to limit candidate users ranked by compatibility
// with the given user, best first. Never includes the user themselves.
func (e *Engine) Recommend(userID string, limit int) []match.Recommendation {
	return e.matcher.Recommend(userID, limit)
}

// --- Lifecycle ---

// Snapshot is the engine's full persistable state: plain data whose
// serialization belongs to the calling layer.
type Snapshot struct {
	Memory   memory.Snapshot
	Profiles []profile.UserProfile
}

// SnapshotAll captures every collection and all profiles, order preserved.
func (e *Engine) SnapshotAll() Snapshot {
	return Snapshot{
		Memory:   e.store.Snapshot(),
		Profiles: e.registry.All(),
	}
}

// RestoreAll replaces the engine state wholesale from a snapshot.
func (e *Engine) RestoreAll(s Snapshot) {
	e.store.Restore(s.Memory)
	e.registry.Restore(s.Profiles)
}
