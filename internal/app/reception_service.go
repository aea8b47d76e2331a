package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/frontdesk/internal/core/filter"
	"github.com/example/frontdesk/internal/core/matching"
	"github.com/example/frontdesk/internal/metrics"
	"github.com/example/frontdesk/internal/ports/primary"
	"github.com/example/frontdesk/internal/ports/secondary"
)

// Scripted receptionist lines. The delivery prefix is spoken by the poller
// in front of every supervisor answer.
const (
	greeting       = "Hey there! Welcome to Glamour Salon, this is Maya! How can I help you today?"
	holdReply      = "Hold on one sec - let me check that for you with my supervisor!"
	deliveryPrefix = "Great news! My supervisor says: "
)

// ReceptionServiceImpl implements the ReceptionService interface. It owns
// the per-call flow: greeting, routing utterances through the filter and
// the matcher, escalating misses, and running the delivery poller for the
// session's lifetime.
type ReceptionServiceImpl struct {
	escalations  primary.EscalationService
	knowledge    secondary.KnowledgeRepository
	customers    secondary.CustomerRepository
	transport    secondary.SessionTransport
	sessions     *SessionRegistry
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewReceptionService creates a new ReceptionService with injected
// dependencies.
func NewReceptionService(
	escalations primary.EscalationService,
	knowledge secondary.KnowledgeRepository,
	customers secondary.CustomerRepository,
	transport secondary.SessionTransport,
	sessions *SessionRegistry,
	logger *zap.Logger,
) *ReceptionServiceImpl {
	return &ReceptionServiceImpl{
		escalations:  escalations,
		knowledge:    knowledge,
		customers:    customers,
		transport:    transport,
		sessions:     sessions,
		pollInterval: defaultPollInterval,
		logger:       logger,
	}
}

// RunSession owns one live call from greeting to hang-up. It returns when
// the utterance stream closes, the context is cancelled, or delivery into
// the call fails.
func (s *ReceptionServiceImpl) RunSession(ctx context.Context, sessionID, phoneNumber string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.sessions.Register(sessionID)
	defer s.sessions.Unregister(sessionID)

	s.logger.Info("session started",
		zap.String("session_id", sessionID),
		zap.String("phone_number", phoneNumber),
	)

	if err := s.transport.Speak(ctx, sessionID, greeting); err != nil {
		return fmt.Errorf("failed to speak greeting: %w", err)
	}

	poller := NewSessionPoller(sessionID, s.escalations, s.transport, s.logger)
	poller.interval = s.pollInterval

	pollerDone := make(chan error, 1)
	go func() {
		pollerDone <- poller.Run(ctx)
	}()

	utterances := s.transport.Utterances(ctx, sessionID)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-pollerDone:
			// Delivery failure means the caller can no longer hear us.
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("session poller stopped: %w", err)
			}
			return nil
		case text, ok := <-utterances:
			if !ok {
				s.logger.Info("session ended", zap.String("session_id", sessionID))
				return nil
			}
			reply, err := s.HandleUtterance(ctx, primary.UtteranceRequest{
				SessionID:   sessionID,
				PhoneNumber: phoneNumber,
				Text:        text,
			})
			if err != nil {
				s.logger.Error("failed to handle utterance",
					zap.String("session_id", sessionID),
					zap.Error(err),
				)
				continue
			}
			if reply.Ignored {
				continue
			}
			if err := s.transport.Speak(ctx, sessionID, reply.Text); err != nil {
				return fmt.Errorf("failed to speak reply: %w", err)
			}
		}
	}
}

// HandleUtterance routes one transcribed utterance. Non-questions are
// ignored, matched questions answer from the knowledge base, and everything
// else escalates to a supervisor with an immediate hold reply.
func (s *ReceptionServiceImpl) HandleUtterance(ctx context.Context, req primary.UtteranceRequest) (*primary.UtteranceReply, error) {
	if !filter.ShouldConsider(req.Text) {
		return &primary.UtteranceReply{Ignored: true}, nil
	}

	records, err := s.knowledge.LookupAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}

	entries := make([]matching.Entry, len(records))
	for i, r := range records {
		entries[i] = matching.Entry{
			ID:        r.ID,
			Question:  r.Question,
			Answer:    r.Answer,
			CreatedAt: r.CreatedAt,
		}
	}

	if result, ok := matching.Match(req.Text, entries); ok {
		metrics.RecordMatch(string(result.Tier))
		s.logger.Info("question answered",
			zap.String("session_id", req.SessionID),
			zap.String("tier", string(result.Tier)),
			zap.Int64("entry_id", result.Entry.ID),
		)
		return &primary.UtteranceReply{
			Text: result.Answer,
			Tier: string(result.Tier),
		}, nil
	}

	metrics.RecordNoMatch()

	customer, err := s.customers.GetOrCreate(ctx, req.PhoneNumber, "")
	if err != nil {
		return nil, fmt.Errorf("failed to look up caller: %w", err)
	}

	created, err := s.escalations.Create(ctx, primary.CreateEscalationRequest{
		Question:    req.Text,
		CallerID:    customer.ID,
		SessionID:   req.SessionID,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to escalate question: %w", err)
	}

	return &primary.UtteranceReply{
		Text:         holdReply,
		Escalated:    true,
		EscalationID: created.ID,
	}, nil
}

// Ensure ReceptionServiceImpl implements the interface
var _ primary.ReceptionService = (*ReceptionServiceImpl)(nil)
