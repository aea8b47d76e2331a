// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/frontdesk/internal/core/matching"
	"github.com/example/frontdesk/internal/ports/secondary"
)

// KnowledgeRepository implements secondary.KnowledgeRepository with SQLite.
type KnowledgeRepository struct {
	db *sql.DB
}

// NewKnowledgeRepository creates a new SQLite knowledge repository.
func NewKnowledgeRepository(db *sql.DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

// Append persists a new knowledge entry. The question is normalized before
// storage so every later lookup compares like with like.
func (r *KnowledgeRepository) Append(ctx context.Context, question, answer string) (*secondary.KnowledgeRecord, error) {
	normalized := matching.Normalize(question)
	if normalized == "" {
		return nil, fmt.Errorf("cannot append knowledge entry with empty question")
	}

	createdAt := time.Now()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO knowledge_base (question, answer, created_at) VALUES (?, ?, ?)",
		normalized, answer, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append knowledge entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge entry id: %w", err)
	}

	return &secondary.KnowledgeRecord{
		ID:        id,
		Question:  normalized,
		Answer:    answer,
		CreatedAt: createdAt,
	}, nil
}

// LookupAll returns every knowledge entry ordered by creation time then id,
// giving matching a stable snapshot.
func (r *KnowledgeRepository) LookupAll(ctx context.Context) ([]*secondary.KnowledgeRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, question, answer, created_at FROM knowledge_base ORDER BY created_at ASC, id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.KnowledgeRecord
	for rows.Next() {
		record := &secondary.KnowledgeRecord{}
		if err := rows.Scan(&record.ID, &record.Question, &record.Answer, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge entry: %w", err)
		}
		entries = append(entries, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read knowledge entries: %w", err)
	}

	return entries, nil
}

// Ensure KnowledgeRepository implements the interface
var _ secondary.KnowledgeRepository = (*KnowledgeRepository)(nil)
