package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/frontdesk/internal/core/escalation"
	"github.com/example/frontdesk/internal/metrics"
	"github.com/example/frontdesk/internal/ports/primary"
	"github.com/example/frontdesk/internal/ports/secondary"
)

// EscalationServiceImpl implements the EscalationService interface. It is
// the sole writer of escalation status; the repository's compare-and-swap
// transitions serialize concurrent attempts on the same record.
type EscalationServiceImpl struct {
	escalationRepo secondary.EscalationRepository
	knowledgeRepo  secondary.KnowledgeRepository
	sessions       *SessionRegistry
	notifier       secondary.Notifier
	logger         *zap.Logger
}

// NewEscalationService creates a new EscalationService with injected
// dependencies.
func NewEscalationService(
	escalationRepo secondary.EscalationRepository,
	knowledgeRepo secondary.KnowledgeRepository,
	sessions *SessionRegistry,
	notifier secondary.Notifier,
	logger *zap.Logger,
) *EscalationServiceImpl {
	return &EscalationServiceImpl{
		escalationRepo: escalationRepo,
		knowledgeRepo:  knowledgeRepo,
		sessions:       sessions,
		notifier:       notifier,
		logger:         logger,
	}
}

// Create records an unanswered question as a pending escalation.
func (s *EscalationServiceImpl) Create(ctx context.Context, req primary.CreateEscalationRequest) (*primary.Escalation, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("escalation question cannot be empty")
	}

	record := &secondary.EscalationRecord{
		ID:          uuid.NewString(),
		Question:    req.Question,
		CallerID:    req.CallerID,
		SessionID:   req.SessionID,
		PhoneNumber: req.PhoneNumber,
		Status:      string(escalation.InitialStatus()),
		CreatedAt:   time.Now(),
	}

	if err := s.escalationRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create escalation: %w", err)
	}

	metrics.RecordEscalation("created")
	s.logger.Info("escalation created",
		zap.String("escalation_id", record.ID),
		zap.String("session_id", record.SessionID),
		zap.String("question", record.Question),
	)

	return s.recordToEscalation(record), nil
}

// Resolve records a supervisor answer. The status transition is the
// authoritative step; the knowledge base append that follows is best effort
// and its failure never rolls the resolution back. When the record's session
// already ended, the caller is notified offline instead.
func (s *EscalationServiceImpl) Resolve(ctx context.Context, escalationID, answer string) (*primary.Escalation, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, fmt.Errorf("supervisor answer cannot be empty")
	}

	record, err := s.escalationRepo.GetByID(ctx, escalationID)
	if err != nil {
		return nil, err
	}

	guard := escalation.CanResolve(escalation.ResolveContext{
		EscalationID: escalationID,
		Status:       escalation.Status(record.Status),
	})
	if err := guard.Err(); err != nil {
		return nil, err
	}

	// The conditional update re-checks the status, so a racing resolver
	// that slipped past the guard still loses here.
	if err := s.escalationRepo.Resolve(ctx, escalationID, answer, time.Now()); err != nil {
		return nil, err
	}

	metrics.RecordEscalation("resolved")

	// Learning step: future identical questions answer from the knowledge
	// base. Best effort - a failed append is logged, never surfaced.
	if _, err := s.knowledgeRepo.Append(ctx, record.Question, answer); err != nil {
		s.logger.Warn("failed to learn resolved answer",
			zap.String("escalation_id", escalationID),
			zap.Error(err),
		)
	}

	if !s.sessions.IsActive(record.SessionID) {
		if err := s.notifier.Notify(ctx, record.PhoneNumber, record.Question, answer); err != nil {
			s.logger.Warn("failed to notify caller offline",
				zap.String("escalation_id", escalationID),
				zap.String("phone_number", record.PhoneNumber),
				zap.Error(err),
			)
		}
	}

	return s.GetByID(ctx, escalationID)
}

// MarkDelivered transitions a resolved escalation to delivered.
func (s *EscalationServiceImpl) MarkDelivered(ctx context.Context, escalationID string) (*primary.Escalation, error) {
	record, err := s.escalationRepo.GetByID(ctx, escalationID)
	if err != nil {
		return nil, err
	}

	guard := escalation.CanMarkDelivered(escalation.DeliverContext{
		EscalationID: escalationID,
		Status:       escalation.Status(record.Status),
	})
	if err := guard.Err(); err != nil {
		return nil, err
	}

	if err := s.escalationRepo.MarkDelivered(ctx, escalationID); err != nil {
		return nil, err
	}

	metrics.RecordEscalation("delivered")

	return s.GetByID(ctx, escalationID)
}

// PendingFor returns all non-delivered escalations for a session, earliest
// first.
func (s *EscalationServiceImpl) PendingFor(ctx context.Context, sessionID string) ([]*primary.Escalation, error) {
	records, err := s.escalationRepo.PendingFor(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session escalations: %w", err)
	}
	return s.recordsToEscalations(records), nil
}

// ListPending returns every pending escalation for the supervisor queue.
func (s *EscalationServiceImpl) ListPending(ctx context.Context) ([]*primary.Escalation, error) {
	return s.List(ctx, primary.EscalationFilters{Status: string(escalation.StatusPending)})
}

// List returns escalations matching the given filters.
func (s *EscalationServiceImpl) List(ctx context.Context, filters primary.EscalationFilters) ([]*primary.Escalation, error) {
	records, err := s.escalationRepo.List(ctx, secondary.EscalationFilters{
		SessionID: filters.SessionID,
		Status:    filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}
	return s.recordsToEscalations(records), nil
}

// GetByID retrieves a single escalation.
func (s *EscalationServiceImpl) GetByID(ctx context.Context, escalationID string) (*primary.Escalation, error) {
	record, err := s.escalationRepo.GetByID(ctx, escalationID)
	if err != nil {
		return nil, err
	}
	return s.recordToEscalation(record), nil
}

// Helper methods

func (s *EscalationServiceImpl) recordsToEscalations(records []*secondary.EscalationRecord) []*primary.Escalation {
	escalations := make([]*primary.Escalation, len(records))
	for i, r := range records {
		escalations[i] = s.recordToEscalation(r)
	}
	return escalations
}

func (s *EscalationServiceImpl) recordToEscalation(r *secondary.EscalationRecord) *primary.Escalation {
	e := &primary.Escalation{
		ID:               r.ID,
		Question:         r.Question,
		CallerID:         r.CallerID,
		SessionID:        r.SessionID,
		PhoneNumber:      r.PhoneNumber,
		Status:           r.Status,
		SupervisorAnswer: r.SupervisorAnswer,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
	if r.ResolvedAt != nil {
		e.ResolvedAt = r.ResolvedAt.Format(time.RFC3339)
	}
	return e
}

// Ensure EscalationServiceImpl implements the interface
var _ primary.EscalationService = (*EscalationServiceImpl)(nil)
