package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/example/frontdesk/internal/core/escalation"
	"github.com/example/frontdesk/internal/ports/primary"
	"github.com/example/frontdesk/internal/ports/secondary"
)

type pollerFixture struct {
	poller    *SessionPoller
	escSvc    *EscalationServiceImpl
	escRepo   *mockEscalationRepo
	transport *mockTransport
}

func newPollerFixture(sessionID string) *pollerFixture {
	f := &pollerFixture{
		escRepo:   newMockEscalationRepo(),
		transport: newMockTransport(),
	}
	f.escSvc = NewEscalationService(f.escRepo, newMockKnowledgeRepo(), NewSessionRegistry(), &mockNotifier{}, zap.NewNop())
	f.poller = NewSessionPoller(sessionID, f.escSvc, f.transport, zap.NewNop())
	f.poller.interval = 5 * time.Millisecond
	return f
}

func (f *pollerFixture) createResolved(t *testing.T, question, answer, sessionID string) *primary.Escalation {
	t.Helper()
	e, err := f.escSvc.Create(context.Background(), primary.CreateEscalationRequest{
		Question:    question,
		CallerID:    "cust-1",
		SessionID:   sessionID,
		PhoneNumber: "+15550001111",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := f.escSvc.Resolve(context.Background(), e.ID, answer); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return e
}

func TestPollerDeliversInCreationOrder(t *testing.T) {
	f := newPollerFixture("sess-1")

	// Created in order, resolved out of order. Delivery must follow
	// creation order regardless.
	first, err := f.escSvc.Create(context.Background(), primary.CreateEscalationRequest{
		Question: "First?", SessionID: "sess-1", PhoneNumber: "+15550001111",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	time.Sleep(time.Millisecond)
	second, err := f.escSvc.Create(context.Background(), primary.CreateEscalationRequest{
		Question: "Second?", SessionID: "sess-1", PhoneNumber: "+15550001111",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := f.escSvc.Resolve(context.Background(), second.ID, "Answer two."); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, err := f.escSvc.Resolve(context.Background(), first.ID, "Answer one."); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if err := f.poller.deliverResolved(context.Background()); err != nil {
		t.Fatalf("deliverResolved failed: %v", err)
	}

	spoken := f.transport.spokenFor("sess-1")
	if len(spoken) != 2 {
		t.Fatalf("expected 2 deliveries, got %v", spoken)
	}
	if spoken[0] != deliveryPrefix+"Answer one." {
		t.Errorf("first delivery out of order: %q", spoken[0])
	}
	if spoken[1] != deliveryPrefix+"Answer two." {
		t.Errorf("second delivery out of order: %q", spoken[1])
	}
}

func TestPollerSkipsPendingRecords(t *testing.T) {
	f := newPollerFixture("sess-1")

	if _, err := f.escSvc.Create(context.Background(), primary.CreateEscalationRequest{
		Question: "Still waiting?", SessionID: "sess-1", PhoneNumber: "+15550001111",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := f.poller.deliverResolved(context.Background()); err != nil {
		t.Fatalf("deliverResolved failed: %v", err)
	}

	if spoken := f.transport.spokenFor("sess-1"); len(spoken) != 0 {
		t.Errorf("pending record must not be spoken, got %v", spoken)
	}
}

func TestPollerMarksDelivered(t *testing.T) {
	f := newPollerFixture("sess-1")
	e := f.createResolved(t, "Question?", "Answer.", "sess-1")

	if err := f.poller.deliverResolved(context.Background()); err != nil {
		t.Fatalf("deliverResolved failed: %v", err)
	}

	got, err := f.escSvc.GetByID(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != string(escalation.StatusDelivered) {
		t.Errorf("expected delivered, got %s", got.Status)
	}

	// A second cycle must not re-speak it.
	if err := f.poller.deliverResolved(context.Background()); err != nil {
		t.Fatalf("second deliverResolved failed: %v", err)
	}
	if spoken := f.transport.spokenFor("sess-1"); len(spoken) != 1 {
		t.Errorf("delivered record spoken again: %v", spoken)
	}
}

func TestPollerDeliveryFailureLeavesRecordResolved(t *testing.T) {
	f := newPollerFixture("sess-1")
	e := f.createResolved(t, "Question?", "Answer.", "sess-1")
	f.transport.setFailSpeak(true)

	err := f.poller.deliverResolved(context.Background())
	if !errors.Is(err, secondary.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}

	got, err := f.escSvc.GetByID(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != string(escalation.StatusResolved) {
		t.Errorf("failed delivery must leave the record resolved, got %s", got.Status)
	}
}

func TestPollerRunStopsOnDeliveryFailure(t *testing.T) {
	f := newPollerFixture("sess-1")
	f.createResolved(t, "Question?", "Answer.", "sess-1")
	f.transport.setFailSpeak(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := f.poller.Run(ctx)
	if !errors.Is(err, secondary.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
}

func TestPollerRunStopsOnContextCancel(t *testing.T) {
	f := newPollerFixture("sess-1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.poller.Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on cancel")
	}
}

func TestPollerGivesUpAfterRepeatedStorageFailures(t *testing.T) {
	transport := newMockTransport()
	poller := NewSessionPoller("sess-1", &failingEscalationService{}, transport, zap.NewNop())
	poller.interval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := poller.Run(ctx)
	if err == nil || errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected the poller to give up on storage failures, got %v", err)
	}
}

// failingEscalationService fails every read, simulating broken storage.
type failingEscalationService struct{}

func (f *failingEscalationService) Create(context.Context, primary.CreateEscalationRequest) (*primary.Escalation, error) {
	return nil, errors.New("storage down")
}

func (f *failingEscalationService) Resolve(context.Context, string, string) (*primary.Escalation, error) {
	return nil, errors.New("storage down")
}

func (f *failingEscalationService) MarkDelivered(context.Context, string) (*primary.Escalation, error) {
	return nil, errors.New("storage down")
}

func (f *failingEscalationService) PendingFor(context.Context, string) ([]*primary.Escalation, error) {
	return nil, errors.New("storage down")
}

func (f *failingEscalationService) ListPending(context.Context) ([]*primary.Escalation, error) {
	return nil, errors.New("storage down")
}

func (f *failingEscalationService) List(context.Context, primary.EscalationFilters) ([]*primary.Escalation, error) {
	return nil, errors.New("storage down")
}

func (f *failingEscalationService) GetByID(context.Context, string) (*primary.Escalation, error) {
	return nil, errors.New("storage down")
}

var _ primary.EscalationService = (*failingEscalationService)(nil)
