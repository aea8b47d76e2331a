package escalation

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Err converts the guard result to an error if not allowed. The error wraps
// ErrInvalidTransition so callers can classify it with errors.Is.
func (r GuardResult) Err() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidTransition, r.Reason)
}

// ResolveContext provides context for resolution guards.
type ResolveContext struct {
	EscalationID string
	Status       Status
}

// DeliverContext provides context for delivery guards.
type DeliverContext struct {
	EscalationID string
	Status       Status
}

// CanResolve evaluates whether an escalation can be resolved.
// Rules:
//   - Status must be pending (no double-resolve, no resolve after delivery)
func CanResolve(ctx ResolveContext) GuardResult {
	if ctx.Status != StatusPending {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("escalation %s is %s, only pending escalations can be resolved", ctx.EscalationID, ctx.Status),
		}
	}

	return GuardResult{Allowed: true}
}

// CanMarkDelivered evaluates whether an escalation can be marked delivered.
// Rules:
//   - Status must be resolved (never deliver before a supervisor answered,
//     never re-deliver)
func CanMarkDelivered(ctx DeliverContext) GuardResult {
	if ctx.Status != StatusResolved {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("escalation %s is %s, only resolved escalations can be marked delivered", ctx.EscalationID, ctx.Status),
		}
	}

	return GuardResult{Allowed: true}
}
