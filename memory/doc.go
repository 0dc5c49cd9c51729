// Package memory provides the in-memory record store and similarity search
// for the profiling engine.
//
// Three append-only collections live here, each insertion-ordered and owned
// exclusively by one Store instance:
//   - PersonalityMemory: persona fragments and wiki knowledge chunks,
//     distinguished by a kind tag decided at append time
//   - UserMemory: facts learned about individual users
//   - ConversationChunk: ~10-message conversation windows with embeddings
//
// Retrieval is a linear filter plus a stable descending sort, either by
// cosine similarity against a caller-supplied query embedding, by stored
// importance, or by similarity x importance for the unified knowledge base.
// Embedding generation happens outside this package; vectors arrive as
// plain []float32 and dimension mismatches score 0.0 rather than failing.
//
// Snapshot and Restore exist for the host's save/reload lifecycle and are
// full, order-preserving copies.
package memory
