// ABOUTME: High-level memory store combining SQLite persistence with
// ABOUTME: keyword search and optional embedding-based semantic recall
package storage

import (
	"fmt"
	"log"
	"sort"

	"github.com/superlocal/memory/internal/models"
	"github.com/superlocal/memory/internal/storage/sqlite"
)

// Embedder generates embedding vectors for text. Satisfied by the OpenAI
// client; nil disables semantic recall.
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// Store manages all persistent data for the local memory system
type Store struct {
	db         *sqlite.DB
	entries    *sqlite.EntryStore
	embeddings *sqlite.EmbeddingStore
	embedder   Embedder
}

// Stats summarizes the contents of the store
type Stats struct {
	TotalEntries int            `json:"total_entries"`
	ByCategory   map[string]int `json:"by_category"`
	Sessions     int            `json:"sessions"`
	DBSizeBytes  int64          `json:"db_size_bytes"`
	DBPath       string         `json:"db_path"`
}

// SessionTagPrefix scopes chat-history entries; the full tag is
// SessionTagPrefix + session ID.
const SessionTagPrefix = "langchain:session:"

// SessionTag returns the isolation tag for a session
func SessionTag(sessionID string) string {
	return SessionTagPrefix + sessionID
}

// Open opens the store at the given database path. An empty path uses the
// default location under the user's home directory.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}

	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newStore(db), nil
}

// OpenInMemory creates a store backed by an in-memory database (for testing)
func OpenInMemory() (*Store, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, err
	}
	return newStore(db), nil
}

func newStore(db *sqlite.DB) *Store {
	return &Store{
		db:         db,
		entries:    sqlite.NewEntryStore(db),
		embeddings: sqlite.NewEmbeddingStore(db),
	}
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// SetEmbedder enables semantic recall using the given embedder
func (s *Store) SetEmbedder(embedder Embedder) {
	s.embedder = embedder
}

// DBPath returns the path of the backing database file
func (s *Store) DBPath() string {
	return s.db.Path()
}

// Remember persists an entry. When an embedder is configured the entry also
// gets a vector; embedding failures are logged, not fatal, since keyword
// search still covers the entry.
func (s *Store) Remember(entry *models.Entry) error {
	if err := s.entries.Save(entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	if s.embedder != nil {
		vector, err := s.embedder.GenerateEmbedding(entry.Content)
		if err != nil {
			log.Printf("Warning: failed to generate embedding for %s: %v", entry.ID, err)
			return nil
		}
		if err := s.embeddings.Save(entry.ID, vector); err != nil {
			log.Printf("Warning: failed to save embedding for %s: %v", entry.ID, err)
		}
	}

	return nil
}

// Get retrieves an entry by ID and bumps its access count
func (s *Store) Get(id string) (*models.Entry, error) {
	entry, err := s.entries.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	if err := s.entries.Touch(id); err != nil {
		log.Printf("Warning: failed to update access count for %s: %v", id, err)
	}
	return entry, nil
}

// Forget deletes an entry by ID
func (s *Store) Forget(id string) error {
	return s.entries.DeleteByID(id)
}

// Recall searches for relevant entries. Keyword matches always apply;
// when an embedder is configured, cosine similarity scores are merged,
// averaging the two scores for entries that appear in both result sets.
func (s *Store) Recall(query string, maxResults int) ([]models.SearchResult, error) {
	keywordResults, err := s.entries.Search(query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}

	if s.embedder == nil {
		return keywordResults, nil
	}

	semanticResults, err := s.semanticSearch(query, maxResults)
	if err != nil {
		// Keyword results still stand; semantic recall is best-effort
		log.Printf("Warning: semantic search failed: %v", err)
		return keywordResults, nil
	}

	return mergeResults(keywordResults, semanticResults, maxResults), nil
}

// semanticSearch embeds the query and scores entries by cosine similarity
func (s *Store) semanticSearch(query string, maxResults int) ([]models.SearchResult, error) {
	queryVector, err := s.embedder.GenerateEmbedding(query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	vectorResults, err := s.embeddings.SearchSimilar(queryVector, maxResults*3)
	if err != nil {
		return nil, fmt.Errorf("failed to search embeddings: %w", err)
	}

	var results []models.SearchResult
	for _, vr := range vectorResults {
		entry, err := s.entries.GetByID(vr.EntryID)
		if err != nil || entry == nil {
			continue
		}
		results = append(results, models.SearchResult{
			Entry:          *entry,
			RelevanceScore: vr.SimilarityScore * (0.5 + 0.5*entry.Importance),
		})
	}

	return results, nil
}

// mergeResults combines keyword and semantic results, averaging scores for
// entries present in both, then re-sorts and truncates
func mergeResults(keyword, semantic []models.SearchResult, maxResults int) []models.SearchResult {
	scores := make(map[string]float64)
	merged := make([]models.SearchResult, 0, len(keyword)+len(semantic))

	for _, r := range keyword {
		scores[r.Entry.ID] = r.RelevanceScore
		merged = append(merged, r)
	}
	for _, r := range semantic {
		if existing, ok := scores[r.Entry.ID]; ok {
			scores[r.Entry.ID] = (existing + r.RelevanceScore) / 2
		} else {
			scores[r.Entry.ID] = r.RelevanceScore
			merged = append(merged, r)
		}
	}

	for i := range merged {
		merged[i].RelevanceScore = scores[merged[i].Entry.ID]
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})

	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}

// SessionMessages returns the entries of one chat session in chronological
// order. Other sessions' entries never appear.
func (s *Store) SessionMessages(sessionID string) ([]models.Entry, error) {
	return s.entries.ListByTag(SessionTag(sessionID))
}

// AppendSessionEntry tags and stores a chat-history entry for a session
func (s *Store) AppendSessionEntry(sessionID string, entry *models.Entry) error {
	tag := SessionTag(sessionID)
	if !entry.HasTag(tag) {
		entry.Tags = append(entry.Tags, tag)
	}
	return s.Remember(entry)
}

// ClearSession removes exactly the entries tagged with the session and
// returns how many were deleted
func (s *Store) ClearSession(sessionID string) (int64, error) {
	return s.entries.DeleteByTag(SessionTag(sessionID))
}

// ListSessions enumerates known chat session IDs
func (s *Store) ListSessions() ([]string, error) {
	tags, err := s.entries.SessionTags(SessionTagPrefix)
	if err != nil {
		return nil, err
	}
	sessions := make([]string, 0, len(tags))
	for _, tag := range tags {
		sessions = append(sessions, tag[len(SessionTagPrefix):])
	}
	return sessions, nil
}

// Recent returns the most recently stored entries, newest first
func (s *Store) Recent(limit int) ([]models.Entry, error) {
	return s.entries.Recent(limit)
}

// Stats reports store contents and database size
func (s *Store) Stats() (*Stats, error) {
	total, err := s.entries.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}
	byCategory, err := s.entries.CountByCategory()
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	sessions, err := s.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &Stats{
		TotalEntries: total,
		ByCategory:   byCategory,
		Sessions:     len(sessions),
		DBSizeBytes:  s.db.FileSize(),
		DBPath:       s.db.Path(),
	}, nil
}
