// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems: persistence, the voice transport, and the offline
// notification channel.
package secondary

import (
	"context"
	"time"
)

// KnowledgeRepository defines the secondary port for knowledge base
// persistence. Entries are immutable once written; learning only appends.
type KnowledgeRepository interface {
	// Append persists a new knowledge entry. Duplicate questions are
	// tolerated; matching prefers the earliest entry.
	Append(ctx context.Context, question, answer string) (*KnowledgeRecord, error)

	// LookupAll returns every knowledge entry, ordered by creation time
	// then id, so matching always sees a stable snapshot.
	LookupAll(ctx context.Context) ([]*KnowledgeRecord, error)
}

// KnowledgeRecord represents a knowledge base entry as stored in
// persistence. Question is stored normalized.
type KnowledgeRecord struct {
	ID        int64
	Question  string
	Answer    string
	CreatedAt time.Time
}

// EscalationRepository defines the secondary port for escalation persistence.
//
// Resolve and MarkDelivered are atomic check-and-set operations keyed by the
// record's current status: two concurrent calls for the same id can never
// both succeed. Implementations return escalation.ErrNotFound and
// escalation.ErrInvalidTransition (possibly wrapped) so callers can classify
// failures with errors.Is.
type EscalationRepository interface {
	// Create persists a new escalation in pending status.
	Create(ctx context.Context, record *EscalationRecord) error

	// GetByID retrieves an escalation by its ID.
	GetByID(ctx context.Context, id string) (*EscalationRecord, error)

	// List retrieves escalations matching the given filters, newest first.
	List(ctx context.Context, filters EscalationFilters) ([]*EscalationRecord, error)

	// PendingFor returns all non-delivered escalations for a session,
	// ordered by creation time ascending (earliest raised first).
	PendingFor(ctx context.Context, sessionID string) ([]*EscalationRecord, error)

	// Resolve transitions a pending escalation to resolved, setting the
	// supervisor answer and the resolution timestamp exactly once.
	Resolve(ctx context.Context, id, answer string, resolvedAt time.Time) error

	// MarkDelivered transitions a resolved escalation to delivered.
	MarkDelivered(ctx context.Context, id string) error
}

// EscalationRecord represents an escalation as stored in persistence.
type EscalationRecord struct {
	ID               string
	Question         string
	CallerID         string
	SessionID        string
	PhoneNumber      string
	Status           string
	SupervisorAnswer string
	CreatedAt        time.Time
	ResolvedAt       *time.Time
}

// EscalationFilters contains filter options for querying escalations.
type EscalationFilters struct {
	SessionID string
	Status    string
}

// CustomerRepository defines the secondary port for customer persistence.
type CustomerRepository interface {
	// GetOrCreate looks a customer up by phone number, creating the record
	// on first contact.
	GetOrCreate(ctx context.Context, phoneNumber, name string) (*CustomerRecord, error)
}

// CustomerRecord represents a caller as stored in persistence.
type CustomerRecord struct {
	ID          string
	PhoneNumber string
	Name        string
	CreatedAt   time.Time
}
