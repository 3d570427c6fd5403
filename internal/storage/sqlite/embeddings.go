// ABOUTME: Embedding storage operations for SQLite
// ABOUTME: Implements vector storage as BLOB and cosine similarity search
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"math"
	"sort"
	"time"

	"github.com/superlocal/memory/internal/models"
)

// EmbeddingStore handles embedding persistence
type EmbeddingStore struct {
	db *DB
}

// NewEmbeddingStore creates a new EmbeddingStore
func NewEmbeddingStore(db *DB) *EmbeddingStore {
	return &EmbeddingStore{db: db}
}

// Save saves an embedding vector for an entry, replacing any existing one
func (s *EmbeddingStore) Save(entryID string, vector []float64) error {
	blob := vectorToBlob(vector)

	return s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO embeddings (memory_id, vector, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT(memory_id) DO UPDATE SET
				vector = excluded.vector
		`, entryID, blob, time.Now().UTC())
		return err
	})
}

// GetByEntryID retrieves an embedding by entry ID, nil if not found
func (s *EmbeddingStore) GetByEntryID(entryID string) (*models.Embedding, error) {
	var (
		emb  models.Embedding
		blob []byte
	)

	err := s.db.QueryRow(`
		SELECT memory_id, vector, created_at
		FROM embeddings
		WHERE memory_id = ?
	`, entryID).Scan(&emb.EntryID, &blob, &emb.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	emb.Vector = blobToVector(blob)
	return &emb, nil
}

// SearchSimilar performs cosine similarity search across all embeddings
func (s *EmbeddingStore) SearchSimilar(queryVector []float64, maxResults int) ([]models.VectorSearchResult, error) {
	rows, err := s.db.Query("SELECT memory_id, vector FROM embeddings")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []models.VectorSearchResult

	for rows.Next() {
		var (
			entryID string
			blob    []byte
		)
		if err := rows.Scan(&entryID, &blob); err != nil {
			return nil, err
		}

		results = append(results, models.VectorSearchResult{
			EntryID:         entryID,
			SimilarityScore: CosineSimilarity(queryVector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Sort by similarity descending
	sort.Slice(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return results, nil
}

// Delete removes an embedding by entry ID
func (s *EmbeddingStore) Delete(entryID string) error {
	return s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM embeddings WHERE memory_id = ?", entryID)
		return err
	})
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
