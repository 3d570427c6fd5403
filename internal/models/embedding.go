// ABOUTME: Embedding vector associated with a memory entry
// ABOUTME: Stored as a BLOB in SQLite for semantic recall
package models

import "time"

// Embedding holds a vector for one memory entry
type Embedding struct {
	EntryID   string    `json:"entry_id"`
	Vector    []float64 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}
