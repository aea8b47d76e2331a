package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/frontdesk/internal/ports/primary"
	"github.com/example/frontdesk/internal/ports/secondary"
)

// KnowledgeServiceImpl implements the KnowledgeService interface.
type KnowledgeServiceImpl struct {
	knowledgeRepo secondary.KnowledgeRepository
}

// NewKnowledgeService creates a new KnowledgeService with injected
// dependencies.
func NewKnowledgeService(knowledgeRepo secondary.KnowledgeRepository) *KnowledgeServiceImpl {
	return &KnowledgeServiceImpl{knowledgeRepo: knowledgeRepo}
}

// List returns every knowledge base entry, oldest first.
func (s *KnowledgeServiceImpl) List(ctx context.Context) ([]*primary.KnowledgeEntry, error) {
	records, err := s.knowledgeRepo.LookupAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge entries: %w", err)
	}

	entries := make([]*primary.KnowledgeEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.KnowledgeEntry{
			ID:        r.ID,
			Question:  r.Question,
			Answer:    r.Answer,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		}
	}
	return entries, nil
}

// Add appends a question and answer pair to the knowledge base.
func (s *KnowledgeServiceImpl) Add(ctx context.Context, question, answer string) (*primary.KnowledgeEntry, error) {
	record, err := s.knowledgeRepo.Append(ctx, question, answer)
	if err != nil {
		return nil, err
	}
	return &primary.KnowledgeEntry{
		ID:        record.ID,
		Question:  record.Question,
		Answer:    record.Answer,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Ensure KnowledgeServiceImpl implements the interface
var _ primary.KnowledgeService = (*KnowledgeServiceImpl)(nil)
