// ABOUTME: Memory entry storage operations for SQLite
// ABOUTME: Implements CRUD, tag scoping, and importance-weighted search
package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/superlocal/memory/internal/models"
)

// EntryStore handles memory entry persistence
type EntryStore struct {
	db *DB
}

// NewEntryStore creates a new EntryStore
func NewEntryStore(db *DB) *EntryStore {
	return &EntryStore{db: db}
}

// Save inserts or updates an entry together with its tags. The whole write
// runs in one transaction so concurrent writers never observe an entry
// without its tags.
func (s *EntryStore) Save(entry *models.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := entry.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	return s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO memories (id, content, category, importance, access_count, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				content = excluded.content,
				category = excluded.category,
				importance = excluded.importance,
				updated_at = excluded.updated_at
		`, entry.ID, entry.Content, entry.Category, entry.Importance,
			entry.AccessCount, createdAt, updatedAt)
		if err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		if _, err := tx.Exec("DELETE FROM memory_tags WHERE memory_id = ?", entry.ID); err != nil {
			return fmt.Errorf("failed to clear tags: %w", err)
		}
		for _, tag := range entry.Tags {
			if _, err := tx.Exec(`
				INSERT INTO memory_tags (memory_id, tag) VALUES (?, ?)
				ON CONFLICT(memory_id, tag) DO NOTHING
			`, entry.ID, tag); err != nil {
				return fmt.Errorf("failed to save tag %q: %w", tag, err)
			}
		}
		return nil
	})
}

// GetByID retrieves an entry by its ID, nil if not found
func (s *EntryStore) GetByID(id string) (*models.Entry, error) {
	var entry models.Entry

	err := s.db.QueryRow(`
		SELECT id, content, category, importance, access_count, created_at, updated_at
		FROM memories
		WHERE id = ?
	`, id).Scan(&entry.ID, &entry.Content, &entry.Category, &entry.Importance,
		&entry.AccessCount, &entry.CreatedAt, &entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tags, err := s.tagsFor(entry.ID)
	if err != nil {
		return nil, err
	}
	entry.Tags = tags

	return &entry, nil
}

// ListByTag retrieves all entries carrying the given tag in chronological
// order. Insert order (rowid) breaks ties between equal timestamps so
// rapid appends keep their ordering.
func (s *EntryStore) ListByTag(tag string) ([]models.Entry, error) {
	rows, err := s.db.Query(`
		SELECT m.id, m.content, m.category, m.importance, m.access_count, m.created_at, m.updated_at
		FROM memories m
		JOIN memory_tags t ON t.memory_id = m.id
		WHERE t.tag = ?
		ORDER BY m.created_at ASC, m.rowid ASC
	`, tag)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanEntries(rows)
}

// DeleteByTag removes all entries carrying the given tag and returns how
// many were deleted. Entries without the tag are untouched.
func (s *EntryStore) DeleteByTag(tag string) (int64, error) {
	var deleted int64

	err := s.db.WithTx(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			DELETE FROM memories
			WHERE id IN (SELECT memory_id FROM memory_tags WHERE tag = ?)
		`, tag)
		if err != nil {
			return fmt.Errorf("failed to delete entries by tag: %w", err)
		}
		deleted, err = result.RowsAffected()
		return err
	})

	return deleted, err
}

// DeleteByID deletes an entry by its ID
func (s *EntryStore) DeleteByID(id string) error {
	return s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec("DELETE FROM memories WHERE id = ?", id)
		return err
	})
}

// Touch increments an entry's access count
func (s *EntryStore) Touch(id string) error {
	return s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec("UPDATE memories SET access_count = access_count + 1 WHERE id = ?", id)
		return err
	})
}

// Count returns the total number of stored entries
func (s *EntryStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM memories").Scan(&count)
	return count, err
}

// CountByCategory returns entry counts keyed by category
func (s *EntryStore) CountByCategory() (map[string]int, error) {
	rows, err := s.db.Query("SELECT category, COUNT(*) FROM memories GROUP BY category")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// SessionTags returns the distinct tags with the given prefix, used to
// enumerate chat sessions
func (s *EntryStore) SessionTags(prefix string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT tag FROM memory_tags
		WHERE tag LIKE ?
		ORDER BY tag
	`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// Recent returns the most recently created entries, newest first
func (s *EntryStore) Recent(limit int) ([]models.Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, content, category, importance, access_count, created_at, updated_at
		FROM memories
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanEntries(rows)
}

// Search performs keyword search ranked by term overlap weighted with
// entry importance. Low-importance entries (chat history) sink below
// curated memories that match equally well.
func (s *EntryStore) Search(query string, maxResults int) ([]models.SearchResult, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	// Candidate rows: anything containing at least one term. Ranking
	// happens in Go over this reduced set.
	where := make([]string, 0, len(terms))
	args := make([]interface{}, 0, len(terms))
	for _, term := range terms {
		where = append(where, "content LIKE ?")
		args = append(args, "%"+term+"%")
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT id, content, category, importance, access_count, created_at, updated_at
		FROM memories
		WHERE %s
	`, strings.Join(where, " OR ")), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries, err := s.scanEntries(rows)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(entries))
	for _, entry := range entries {
		score := scoreEntry(&entry, terms)
		if score <= 0 {
			continue
		}
		results = append(results, models.SearchResult{
			Entry:          entry,
			RelevanceScore: score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		return results[i].Entry.CreatedAt.After(results[j].Entry.CreatedAt)
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return results, nil
}

// scoreEntry scores an entry against lowercased query terms. The match
// fraction is scaled by importance so that a full match on a 0.3-importance
// entry scores below a full match on a 1.0-importance one.
func scoreEntry(entry *models.Entry, terms []string) float64 {
	content := strings.ToLower(entry.Content)

	matched := 0
	for _, term := range terms {
		if strings.Contains(content, term) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}

	matchFraction := float64(matched) / float64(len(terms))
	weight := 0.5 + 0.5*entry.Importance
	return matchFraction * weight
}

// tagsFor loads the tags for a single entry
func (s *EntryStore) tagsFor(entryID string) ([]string, error) {
	rows, err := s.db.Query("SELECT tag FROM memory_tags WHERE memory_id = ? ORDER BY tag", entryID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// scanEntries scans rows into a slice of Entry and attaches tags
func (s *EntryStore) scanEntries(rows *sql.Rows) ([]models.Entry, error) {
	var entries []models.Entry

	for rows.Next() {
		var entry models.Entry
		err := rows.Scan(&entry.ID, &entry.Content, &entry.Category, &entry.Importance,
			&entry.AccessCount, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		tags, err := s.tagsFor(entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Tags = tags
	}

	return entries, nil
}
