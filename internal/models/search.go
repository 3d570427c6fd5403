// ABOUTME: Search result structures for memory retrieval operations
// ABOUTME: Used by the CLI and MCP tools to return ranked matches
package models

// SearchResult represents a ranked memory retrieval result
type SearchResult struct {
	Entry          Entry   `json:"entry"`
	RelevanceScore float64 `json:"relevance_score"`
}

// VectorSearchResult represents a cosine-similarity match for an entry
type VectorSearchResult struct {
	EntryID         string  `json:"entry_id"`
	SimilarityScore float64 `json:"similarity_score"`
}
