package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/frontdesk/internal/core/escalation"
	"github.com/example/frontdesk/internal/metrics"
	"github.com/example/frontdesk/internal/ports/primary"
	"github.com/example/frontdesk/internal/ports/secondary"
)

const (
	// defaultPollInterval is how often a live session checks for supervisor
	// answers.
	defaultPollInterval = 2 * time.Second

	// maxStorageFailures is how many consecutive storage errors the poller
	// tolerates before giving up on the session. Transient errors are
	// retried on the next tick; a persistently broken store is not worth
	// ticking against forever.
	maxStorageFailures = 15
)

// SessionPoller watches for resolved escalations belonging to one live
// session and speaks the answers back into the call. Records are delivered
// strictly in the order they were raised, one at a time.
type SessionPoller struct {
	sessionID   string
	escalations primary.EscalationService
	transport   secondary.SessionTransport
	interval    time.Duration
	logger      *zap.Logger
}

// NewSessionPoller creates a poller for the given session.
func NewSessionPoller(
	sessionID string,
	escalations primary.EscalationService,
	transport secondary.SessionTransport,
	logger *zap.Logger,
) *SessionPoller {
	return &SessionPoller{
		sessionID:   sessionID,
		escalations: escalations,
		transport:   transport,
		interval:    defaultPollInterval,
		logger:      logger,
	}
}

// Run polls until ctx is cancelled, delivery into the call fails, or storage
// fails too many ticks in a row. A delivery failure returns an error wrapping
// secondary.ErrDeliveryFailed and leaves the undelivered record resolved, so
// nothing is lost if the caller reconnects.
func (p *SessionPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := p.deliverResolved(ctx)
			if err == nil {
				failures = 0
				continue
			}
			if errors.Is(err, secondary.ErrDeliveryFailed) {
				metrics.RecordDeliveryFailed()
				p.logger.Warn("answer delivery failed, stopping poller",
					zap.String("session_id", p.sessionID),
					zap.Error(err),
				)
				return err
			}
			failures++
			p.logger.Warn("poll cycle failed",
				zap.String("session_id", p.sessionID),
				zap.Int("consecutive_failures", failures),
				zap.Error(err),
			)
			if failures >= maxStorageFailures {
				return fmt.Errorf("giving up after %d consecutive poll failures: %w", failures, err)
			}
		}
	}
}

// deliverResolved speaks every resolved answer for the session, earliest
// first, marking each delivered only after it was spoken. A record that fails
// to mark stays resolved and is retried next cycle; the caller may hear it
// twice rather than never.
func (p *SessionPoller) deliverResolved(ctx context.Context) error {
	pending, err := p.escalations.PendingFor(ctx, p.sessionID)
	if err != nil {
		return err
	}

	for _, e := range pending {
		if e.Status != string(escalation.StatusResolved) {
			continue
		}

		if err := p.transport.Speak(ctx, p.sessionID, deliveryPrefix+e.SupervisorAnswer); err != nil {
			if !errors.Is(err, secondary.ErrDeliveryFailed) {
				err = fmt.Errorf("%w: %v", secondary.ErrDeliveryFailed, err)
			}
			return err
		}

		if _, err := p.escalations.MarkDelivered(ctx, e.ID); err != nil {
			// A concurrent deliverer already marked it; fine, move on.
			if errors.Is(err, escalation.ErrInvalidTransition) {
				p.logger.Debug("escalation already delivered",
					zap.String("escalation_id", e.ID),
				)
				continue
			}
			return err
		}

		p.logger.Info("answer delivered",
			zap.String("session_id", p.sessionID),
			zap.String("escalation_id", e.ID),
		)
	}
	return nil
}
