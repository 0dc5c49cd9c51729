package profile

import (
	"math"
	"testing"
	"time"

	"github.com/laincorp/memex/memory"
)

func topicChunk(text string, createdAt time.Time) memory.ConversationChunk {
	return memory.ConversationChunk{
		UserID:           "u1",
		ChannelID:        "#general",
		ConversationText: text,
		Embedding:        []float32{1, 0},
		MessageCount:     10,
		ChunkIndex:       1,
		CreatedAt:        createdAt,
	}
}

func TestAnalyzeTopicInterests_Empty(t *testing.T) {
	if got := AnalyzeTopicInterests(nil); got != nil {
		t.Errorf("no chunks should yield no interests, got %v", got)
	}
}

func TestAnalyzeTopicInterests_SingleTopic(t *testing.T) {
	now := time.Unix(1700000000, 0)
	interests := AnalyzeTopicInterests([]memory.ConversationChunk{
		topicChunk("we played a game last night", now),
	})

	if len(interests) != 1 {
		t.Fatalf("got %d interests, want 1: %v", len(interests), interests)
	}
	in := interests[0]
	if in.Topic != "gaming" {
		t.Errorf("Topic = %q, want gaming", in.Topic)
	}
	if math.Abs(float64(in.EngagementScore)-0.1) > 1e-5 {
		t.Errorf("EngagementScore = %v, want 0.1", in.EngagementScore)
	}
	if in.MessageCount != 1 {
		t.Errorf("MessageCount = %d, want 1", in.MessageCount)
	}
	if math.Abs(float64(in.ExpertiseLevel)-0.05) > 1e-5 {
		t.Errorf("ExpertiseLevel = %v, want 1/20", in.ExpertiseLevel)
	}
}

func TestAnalyzeTopicInterests_ThresholdDropsFaintTopics(t *testing.T) {
	now := time.Unix(1700000000, 0)
	chunks := []memory.ConversationChunk{topicChunk("game", now)}
	for i := 0; i < 9; i++ {
		chunks = append(chunks, topicChunk("zzz", now))
	}

	// One hit across ten chunks averages to exactly the 0.01 threshold.
	if got := AnalyzeTopicInterests(chunks); len(got) != 0 {
		t.Errorf("threshold-level topic should be dropped, got %v", got)
	}
}

func TestAnalyzeTopicInterests_OrderedByEngagement(t *testing.T) {
	now := time.Unix(1700000000, 0)
	interests := AnalyzeTopicInterests([]memory.ConversationChunk{
		topicChunk("music song book", now),
	})

	if len(interests) != 2 {
		t.Fatalf("got %d interests, want 2: %v", len(interests), interests)
	}
	if interests[0].Topic != "music" || interests[1].Topic != "books" {
		t.Errorf("order = [%s %s], want [music books]", interests[0].Topic, interests[1].Topic)
	}
}

func TestAnalyzeTopicInterests_TiesBreakAlphabetically(t *testing.T) {
	now := time.Unix(1700000000, 0)
	interests := AnalyzeTopicInterests([]memory.ConversationChunk{
		topicChunk("music book", now),
	})

	if len(interests) != 2 {
		t.Fatalf("got %d interests, want 2", len(interests))
	}
	if interests[0].Topic != "books" || interests[1].Topic != "music" {
		t.Errorf("tie order = [%s %s], want [books music]", interests[0].Topic, interests[1].Topic)
	}
}

func TestAnalyzeTopicInterests_MentionWindow(t *testing.T) {
	t1 := time.Unix(1700000000, 0)
	t2 := t1.Add(48 * time.Hour)
	interests := AnalyzeTopicInterests([]memory.ConversationChunk{
		topicChunk("music", t1),
		topicChunk("music music", t2),
	})

	if len(interests) != 1 {
		t.Fatalf("got %d interests, want 1", len(interests))
	}
	in := interests[0]
	if !in.FirstMentioned.Equal(t1) || !in.LastMentioned.Equal(t2) {
		t.Errorf("mention window = [%v, %v], want [%v, %v]", in.FirstMentioned, in.LastMentioned, t1, t2)
	}
	if in.MessageCount != 3 {
		t.Errorf("MessageCount = %d, want 3", in.MessageCount)
	}
}
