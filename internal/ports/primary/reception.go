package primary

import "context"

// ReceptionService defines the primary port for the per-call reception flow:
// greeting, utterance handling, and the answer-delivery poller.
type ReceptionService interface {
	// RunSession owns one live call from greeting to hang-up. It consumes
	// the session's utterance stream, speaks replies, and runs the
	// delivery poller until ctx is cancelled or the stream closes.
	RunSession(ctx context.Context, sessionID, phoneNumber string) error

	// HandleUtterance routes one transcribed utterance through filtering
	// and matching, escalating when the knowledge base has no answer.
	HandleUtterance(ctx context.Context, req UtteranceRequest) (*UtteranceReply, error)
}

// UtteranceRequest contains one transcribed caller utterance.
type UtteranceRequest struct {
	SessionID   string
	PhoneNumber string
	Text        string
}

// UtteranceReply describes how the reception flow handled an utterance.
type UtteranceReply struct {
	// Text is what should be spoken back. Empty when Ignored.
	Text string
	// Ignored is set when the filter rejected the utterance.
	Ignored bool
	// Escalated is set when the question was handed to a supervisor.
	Escalated bool
	// Tier names the matching tier that produced the answer, when matched.
	Tier string
	// EscalationID identifies the created escalation, when escalated.
	EscalationID string
}
