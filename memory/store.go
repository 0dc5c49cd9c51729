package memory

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns the three record collections. It is constructed once at process
// start and threaded explicitly through every component that needs it; there
// are no package-level collections.
//
// Appends are O(1) and do no dedup or embedding validation; a record stored
// with the wrong dimension simply scores 0.0 in every search. The lock only
// guards against concurrent calls from the host - each operation is a single
// synchronous step.
type Store struct {
	mu            sync.RWMutex
	revision      uint64
	personality   []PersonalityMemory
	userMemories  []UserMemory
	conversations []ConversationChunk
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// AppendPersonality stores a persona or knowledge record. The kind tag and
// knowledge metadata are derived here, once. A missing ID or CreatedAt is
// filled in.
func (s *Store) AppendPersonality(m PersonalityMemory) PersonalityMemory {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	classify(&m)

	s.mu.Lock()
	s.personality = append(s.personality, m)
	s.mu.Unlock()

	log.Printf("[STORE] Stored personality record: id=%s channel=%s category=%s", m.ID, m.ChannelID, m.Category)
	return m
}

// AppendUserMemory stores a fact about one user.
func (s *Store) AppendUserMemory(m UserMemory) UserMemory {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.userMemories = append(s.userMemories, m)
	s.mu.Unlock()

	log.Printf("[STORE] Stored user memory: id=%s user=%s type=%s", m.ID, m.UserID, m.MemoryType)
	return m
}

// AppendConversationChunk stores one conversation window. Chunk index 0 is
// reserved; the first valid index is 1 (NextChunkIndex hands them out).
func (s *Store) AppendConversationChunk(c ConversationChunk) (ConversationChunk, error) {
	if c.ChunkIndex == 0 {
		return ConversationChunk{}, fmt.Errorf("chunk index 0 is reserved; first valid index is 1")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.conversations = append(s.conversations, c)
	s.revision++
	s.mu.Unlock()

	log.Printf("[STORE] Stored conversation chunk: user=%s channel=%s index=%d messages=%d",
		c.UserID, c.ChannelID, c.ChunkIndex, c.MessageCount)
	return c, nil
}

// PersonalityByChannel returns the personality records for one channel, in
// insertion order.
func (s *Store) PersonalityByChannel(channelID string) []PersonalityMemory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []PersonalityMemory
	for _, m := range s.personality {
		if m.ChannelID == channelID {
			out = append(out, m)
		}
	}
	return out
}

// AllPersonality returns every personality record in insertion order.
func (s *Store) AllPersonality() []PersonalityMemory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]PersonalityMemory(nil), s.personality...)
}

// UserMemoriesFor returns every memory stored for one user, in insertion
// order.
func (s *Store) UserMemoriesFor(userID string) []UserMemory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []UserMemory
	for _, m := range s.userMemories {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out
}

// ConversationsFor returns one user's conversation chunks in insertion
// order. An empty channelID is the "all channels" sentinel.
func (s *Store) ConversationsFor(userID, channelID string) []ConversationChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ConversationChunk
	for _, c := range s.conversations {
		if c.UserID != userID {
			continue
		}
		if channelID != "" && c.ChannelID != channelID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// NextChunkIndex returns max(existing index)+1 for the user and channel, or
// 1 when no chunks exist yet.
func (s *Store) NextChunkIndex(userID, channelID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := 0
	for _, c := range s.conversations {
		if c.UserID == userID && c.ChannelID == channelID && c.ChunkIndex > max {
			max = c.ChunkIndex
		}
	}
	return max + 1
}

// Revision returns a counter that increments whenever conversation data
// changes (chunk appends and wholesale restores). Caches derived from the
// conversation collection fold it into their keys so a stale entry can
// never outlive the data it was computed from.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// ConversationStats returns the chunk count and summed message count for a
// user and channel. An empty channelID covers all channels.
func (s *Store) ConversationStats(userID, channelID string) (chunks, totalMessages int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.conversations {
		if c.UserID != userID {
			continue
		}
		if channelID != "" && c.ChannelID != channelID {
			continue
		}
		chunks++
		totalMessages += c.MessageCount
	}
	return chunks, totalMessages
}

// Snapshot returns a full, order-preserving copy of every collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Personality:   append([]PersonalityMemory(nil), s.personality...),
		UserMemories:  append([]UserMemory(nil), s.userMemories...),
		Conversations: append([]ConversationChunk(nil), s.conversations...),
	}
}

// Restore replaces all collections wholesale. Personality records are
// re-classified so snapshots produced by external tooling need not carry
// the derived fields.
func (s *Store) Restore(snap Snapshot) {
	personality := append([]PersonalityMemory(nil), snap.Personality...)
	for i := range personality {
		classify(&personality[i])
	}

	s.mu.Lock()
	s.personality = personality
	s.userMemories = append([]UserMemory(nil), snap.UserMemories...)
	s.conversations = append([]ConversationChunk(nil), snap.Conversations...)
	s.revision++
	s.mu.Unlock()

	log.Printf("[STORE] Restored %d personality records, %d user memories, %d conversation chunks",
		len(snap.Personality), len(snap.UserMemories), len(snap.Conversations))
}

// CategoryInfo summarizes one category of the personality collection.
type CategoryInfo struct {
	Category string
	Count    int
}

// CategoryCounts returns per-category record counts, sorted by category name
// ascending.
func (s *Store) CategoryCounts() []CategoryInfo {
	s.mu.RLock()
	counts := make(map[string]int)
	for _, m := range s.personality {
		counts[m.Category]++
	}
	s.mu.RUnlock()

	out := make([]CategoryInfo, 0, len(counts))
	for category, count := range counts {
		out = append(out, CategoryInfo{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// KnowledgeStats reports the shape of the unified knowledge base.
type KnowledgeStats struct {
	TotalRecords     int
	PersonaRecords   int
	KnowledgeRecords int
	Categories       int
}

// Stats computes knowledge-base statistics over the personality collection.
func (s *Store) Stats() KnowledgeStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := KnowledgeStats{TotalRecords: len(s.personality)}
	categories := make(map[string]struct{})
	for _, m := range s.personality {
		if m.Kind == KindKnowledge {
			stats.KnowledgeRecords++
		} else {
			stats.PersonaRecords++
		}
		categories[m.Category] = struct{}{}
	}
	stats.Categories = len(categories)
	return stats
}
