package primary

import "context"

// KnowledgeService defines the primary port for knowledge base operations
// exposed to the supervisor dashboard and the CLI.
type KnowledgeService interface {
	// List returns every knowledge entry, earliest first.
	List(ctx context.Context) ([]*KnowledgeEntry, error)

	// Add appends a new entry. The question is normalized before storage.
	Add(ctx context.Context, question, answer string) (*KnowledgeEntry, error)
}

// KnowledgeEntry represents a knowledge base entry at the port boundary.
type KnowledgeEntry struct {
	ID        int64  `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	CreatedAt string `json:"created_at"`
}
