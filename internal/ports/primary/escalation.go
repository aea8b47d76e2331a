// Package primary defines the primary ports (driving adapters) for the
// application. These are the interfaces through which the CLI and the
// supervisor dashboard drive the core.
package primary

import "context"

// EscalationService defines the primary port for escalation operations.
type EscalationService interface {
	// Create records an unanswered question as a pending escalation.
	Create(ctx context.Context, req CreateEscalationRequest) (*Escalation, error)

	// Resolve records a supervisor answer: transitions the escalation from
	// pending to resolved, then appends the answer to the knowledge base
	// (best effort) and notifies the caller offline if their call already
	// ended.
	Resolve(ctx context.Context, escalationID, answer string) (*Escalation, error)

	// MarkDelivered transitions a resolved escalation to delivered after
	// its answer was spoken into the call.
	MarkDelivered(ctx context.Context, escalationID string) (*Escalation, error)

	// PendingFor returns all non-delivered escalations for a session,
	// earliest first.
	PendingFor(ctx context.Context, sessionID string) ([]*Escalation, error)

	// ListPending returns every pending escalation for the supervisor
	// queue, newest first.
	ListPending(ctx context.Context) ([]*Escalation, error)

	// List returns escalations matching the given filters, newest first.
	List(ctx context.Context, filters EscalationFilters) ([]*Escalation, error)

	// GetByID retrieves a single escalation.
	GetByID(ctx context.Context, escalationID string) (*Escalation, error)
}

// CreateEscalationRequest contains parameters for creating an escalation.
type CreateEscalationRequest struct {
	Question    string
	CallerID    string
	SessionID   string
	PhoneNumber string
}

// Escalation represents an escalation at the port boundary. Timestamps are
// RFC3339 strings.
type Escalation struct {
	ID               string `json:"id"`
	Question         string `json:"question"`
	CallerID         string `json:"caller_id"`
	SessionID        string `json:"session_id"`
	PhoneNumber      string `json:"phone_number"`
	Status           string `json:"status"`
	SupervisorAnswer string `json:"supervisor_answer,omitempty"`
	CreatedAt        string `json:"created_at"`
	ResolvedAt       string `json:"resolved_at,omitempty"`
}

// EscalationFilters contains filter options for listing escalations.
type EscalationFilters struct {
	SessionID string
	Status    string
}
