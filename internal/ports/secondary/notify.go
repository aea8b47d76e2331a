package secondary

import "context"

// Notifier defines the secondary port for reaching a caller who is no
// longer on the line. Invoked when an escalation resolves after its session
// ended, so the answer is not lost.
type Notifier interface {
	// Notify sends the supervisor's answer to the caller's phone number.
	Notify(ctx context.Context, phoneNumber, question, answer string) error
}
