// Package console implements the session transport on stdin and stdout,
// standing in for a real telephony integration. One console process is one
// call: each line typed is an utterance, and spoken replies are printed.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/example/frontdesk/internal/ports/secondary"
)

// Transport implements secondary.SessionTransport over an io.Reader and
// io.Writer, normally os.Stdin and os.Stdout.
type Transport struct {
	in  io.Reader
	out io.Writer

	mu sync.Mutex
}

// NewTransport creates a console transport reading utterances from in and
// printing speech to out.
func NewTransport(in io.Reader, out io.Writer) *Transport {
	return &Transport{in: in, out: out}
}

// Speak prints the receptionist's line.
func (t *Transport) Speak(_ context.Context, _ string, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := fmt.Fprintf(t.out, "%s %s\n", color.CyanString("[maya]"), text); err != nil {
		return fmt.Errorf("%w: %v", secondary.ErrDeliveryFailed, err)
	}
	return nil
}

// Utterances reads lines from the input until EOF or ctx is cancelled. The
// returned channel is closed when the caller hangs up (closes stdin).
func (t *Transport) Utterances(ctx context.Context, _ string) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			case ch <- scanner.Text():
			}
		}
	}()
	return ch
}

// Ensure Transport implements the interface
var _ secondary.SessionTransport = (*Transport)(nil)
