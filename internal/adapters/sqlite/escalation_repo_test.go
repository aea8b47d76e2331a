package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/frontdesk/internal/core/escalation"
	"github.com/example/frontdesk/internal/ports/secondary"
)

func TestEscalationCreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := NewEscalationRepository(database)
	callerID := createTestCustomer(t, database, "+15550001111")

	created := createTestEscalation(t, repo, callerID, "sess-1", "Do you do keratin treatments?", time.Now())

	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Question != "Do you do keratin treatments?" {
		t.Errorf("unexpected question: %q", got.Question)
	}
	if got.Status != string(escalation.StatusPending) {
		t.Errorf("expected pending, got %s", got.Status)
	}
	if got.PhoneNumber != "+15550001111" {
		t.Errorf("unexpected phone number: %q", got.PhoneNumber)
	}
	if got.SupervisorAnswer != "" {
		t.Errorf("expected no answer yet, got %q", got.SupervisorAnswer)
	}
	if got.ResolvedAt != nil {
		t.Error("expected nil ResolvedAt")
	}
}

func TestEscalationGetByIDNotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := NewEscalationRepository(database)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, escalation.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEscalationResolve(t *testing.T) {
	database := setupTestDB(t)
	repo := NewEscalationRepository(database)
	callerID := createTestCustomer(t, database, "+15550001111")
	created := createTestEscalation(t, repo, callerID, "sess-1", "Question?", time.Now())

	resolvedAt := time.Now()
	if err := repo.Resolve(context.Background(), created.ID, "The answer.", resolvedAt); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != string(escalation.StatusResolved) {
		t.Errorf("expected resolved, got %s", got.Status)
	}
	if got.SupervisorAnswer != "The answer." {
		t.Errorf("unexpected answer: %q", got.SupervisorAnswer)
	}
	if got.ResolvedAt == nil {
		t.Fatal("expected ResolvedAt to be set")
	}
}

func TestEscalationResolveTwiceFails(t *testing.T) {
	database := setupTestDB(t)
	repo := NewEscalationRepository(database)
	callerID := createTestCustomer(t, database, "+15550001111")
	created := createTestEscalation(t, repo, callerID, "sess-1", "Question?", time.Now())

	if err := repo.Resolve(context.Background(), created.ID, "First.", time.Now()); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}

	err := repo.Resolve(context.Background(), created.ID, "Second.", time.Now())
	if !errors.Is(err, escalation.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// The winning answer must be untouched.
	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.SupervisorAnswer != "First." {
		t.Errorf("losing resolve overwrote the answer: %q", got.SupervisorAnswer)
	}
}

func TestEscalationResolveMissingRecord(t *testing.T) {
	database := setupTestDB(t)
	repo := NewEscalationRepository(database)

	err := repo.Resolve(context.Background(), "missing", "Answer.", time.Now())
	if !errors.Is(err, escalation.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEscalationMarkDelivered(t *testing.T) {
	database := setupTestDB(t)
	repo := NewEscalationRepository(database)
	callerID := createTestCustomer(t, database, "+15550001111")
	created := createTestEscalation(t, repo, callerID, "sess-1", "Question?", time.Now())

	// Cannot deliver before a supervisor answered.
	err := repo.MarkDelivered(context.Background(), created.ID)
	if !errors.Is(err, escalation.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending record, got %v", err)
	}

	if err := repo.Resolve(context.Background(), created.ID, "Answer.", time.Now()); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if err := repo.MarkDelivered(context.Background(), created.ID); err != nil {
		t.Fatalf("MarkDelivered failed: %v", err)
	}

	// Delivered is terminal.
	err = repo.MarkDelivered(context.Background(), created.ID)
	if !errors.Is(err, escalation.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for delivered record, got %v", err)
	}
	err = repo.Resolve(context.Background(), created.ID, "Late answer.", time.Now())
	if !errors.Is(err, escalation.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition resolving a delivered record, got %v", err)
	}
}

func TestEscalationPendingForOrderingAndExclusion(t *testing.T) {
	database := setupTestDB(t)
	repo := NewEscalationRepository(database)
	callerID := createTestCustomer(t, database, "+15550001111")

	base := time.Now()
	first := createTestEscalation(t, repo, callerID, "sess-1", "First?", base)
	second := createTestEscalation(t, repo, callerID, "sess-1", "Second?", base.Add(time.Second))
	third := createTestEscalation(t, repo, callerID, "sess-1", "Third?", base.Add(2*time.Second))
	createTestEscalation(t, repo, callerID, "sess-other", "Elsewhere?", base)

	// Deliver the second record; it must drop out of the pending view.
	if err := repo.Resolve(context.Background(), second.ID, "Answer.", time.Now()); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if err := repo.MarkDelivered(context.Background(), second.ID); err != nil {
		t.Fatalf("MarkDelivered failed: %v", err)
	}

	pending, err := repo.PendingFor(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("PendingFor failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 records, got %d", len(pending))
	}
	if pending[0].ID != first.ID || pending[1].ID != third.ID {
		t.Errorf("expected [%s %s], got [%s %s]", first.ID, third.ID, pending[0].ID, pending[1].ID)
	}
}

func TestEscalationListFilters(t *testing.T) {
	database := setupTestDB(t)
	repo := NewEscalationRepository(database)
	callerID := createTestCustomer(t, database, "+15550001111")

	base := time.Now()
	a := createTestEscalation(t, repo, callerID, "sess-1", "A?", base)
	b := createTestEscalation(t, repo, callerID, "sess-2", "B?", base.Add(time.Second))
	if err := repo.Resolve(context.Background(), a.ID, "Answer.", time.Now()); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	all, err := repo.List(context.Background(), secondary.EscalationFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	// Newest first.
	if all[0].ID != b.ID {
		t.Errorf("expected newest first, got %s", all[0].ID)
	}

	resolved, err := repo.List(context.Background(), secondary.EscalationFilters{Status: string(escalation.StatusResolved)})
	if err != nil {
		t.Fatalf("List by status failed: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != a.ID {
		t.Errorf("status filter returned %v", resolved)
	}

	bySession, err := repo.List(context.Background(), secondary.EscalationFilters{SessionID: "sess-2"})
	if err != nil {
		t.Fatalf("List by session failed: %v", err)
	}
	if len(bySession) != 1 || bySession[0].ID != b.ID {
		t.Errorf("session filter returned %v", bySession)
	}
}
