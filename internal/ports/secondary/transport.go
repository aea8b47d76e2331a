package secondary

import (
	"context"
	"errors"
)

// ErrDeliveryFailed is returned by Speak when the session can no longer
// receive audio (caller hung up, transport torn down). The poller treats it
// as terminal for the session but never for the record.
var ErrDeliveryFailed = errors.New("delivery to session failed")

// SessionTransport defines the secondary port for the voice transport.
// Speech-to-text and text-to-speech happen behind this boundary; the core
// only ever sees text.
type SessionTransport interface {
	// Speak delivers text to the session's audio output. It returns
	// ErrDeliveryFailed (possibly wrapped) when the session is gone.
	Speak(ctx context.Context, sessionID, text string) error

	// Utterances returns the stream of transcribed caller utterances for a
	// session. The channel is closed when the session ends or ctx is
	// cancelled.
	Utterances(ctx context.Context, sessionID string) <-chan string
}
