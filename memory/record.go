package memory

import (
	"strings"
	"time"
)

// Kind distinguishes the two logical record types sharing the personality
// collection. It is decided once when a record is appended; queries never
// re-derive it from the category string, though the query boundary still
// accepts wiki_-prefixed category filters for older callers.
type Kind int

const (
	KindPersona Kind = iota
	KindKnowledge
)

// KnowledgePrefix marks categories that hold knowledge-base content.
const KnowledgePrefix = "wiki_"

// PersonalityMemory is one stored persona fragment or knowledge-base chunk.
// Records are immutable once appended: never updated, never individually
// deleted.
type PersonalityMemory struct {
	ID         string
	Text       string
	Embedding  []float32
	ChannelID  string
	Category   string
	Importance float32
	CreatedAt  time.Time

	// Derived once at append (and on restore) from Category and Text.
	Kind        Kind
	ContentType string
	SourceInfo  string
}

// UserMemory is a fact learned about one user, scoped to that user.
type UserMemory struct {
	ID         string
	UserID     string
	Text       string
	Embedding  []float32
	ChannelID  string
	MemoryType string
	CreatedAt  time.Time
}

// ConversationChunk is a window of roughly ten messages from one user in one
// channel. ChunkIndex is assigned by the caller, increases monotonically per
// user+channel, and starts at 1; index 0 is reserved and rejected at append.
type ConversationChunk struct {
	ID               string
	UserID           string
	ChannelID        string
	ConversationText string
	Embedding        []float32
	MessageCount     int
	ChunkIndex       int
	CreatedAt        time.Time

	// Summary is optional; empty means "use ConversationText verbatim".
	Summary string
}

// DisplayText returns the chunk's summary, falling back to the raw
// conversation text when no summary was stored.
func (c ConversationChunk) DisplayText() string {
	if c.Summary == "" {
		return c.ConversationText
	}
	return c.Summary
}

// classify tags the record kind and precomputes the knowledge metadata.
func classify(m *PersonalityMemory) {
	if strings.HasPrefix(m.Category, KnowledgePrefix) {
		m.Kind = KindKnowledge
		m.ContentType = strings.TrimPrefix(m.Category, KnowledgePrefix)
		m.SourceInfo = sourceFromText(m.Text, m.ChannelID)
		return
	}
	m.Kind = KindPersona
	m.ContentType = m.Category
	m.SourceInfo = m.ChannelID
}

// sourceFromText extracts the source document tag from a knowledge chunk:
// the substring between the first "[" and the following "]". Falls back to
// the raw channel identifier when no tag is present.
func sourceFromText(text, channelID string) string {
	start := strings.Index(text, "[")
	if start >= 0 {
		if end := strings.Index(text[start+1:], "]"); end >= 0 {
			return text[start+1 : start+1+end]
		}
	}
	return channelID
}

// Snapshot is a full, order-preserving copy of every stored collection.
// It exists purely for the host's save/reload lifecycle; serialization is
// the caller's responsibility.
type Snapshot struct {
	Personality   []PersonalityMemory
	UserMemories  []UserMemory
	Conversations []ConversationChunk
}
