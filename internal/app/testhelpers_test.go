package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/frontdesk/internal/core/escalation"
	"github.com/example/frontdesk/internal/ports/secondary"
)

// In-memory fakes for the secondary ports. The escalation fake keeps the
// same compare-and-swap semantics as the sqlite adapter so transition tests
// exercise the real contract.

type mockEscalationRepo struct {
	mu      sync.Mutex
	records map[string]*secondary.EscalationRecord
}

func newMockEscalationRepo() *mockEscalationRepo {
	return &mockEscalationRepo{records: make(map[string]*secondary.EscalationRecord)}
}

func (m *mockEscalationRepo) Create(_ context.Context, record *secondary.EscalationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	m.records[record.ID] = &cp
	return nil
}

func (m *mockEscalationRepo) GetByID(_ context.Context, id string) (*secondary.EscalationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", escalation.ErrNotFound, id)
	}
	cp := *r
	return &cp, nil
}

func (m *mockEscalationRepo) List(_ context.Context, filters secondary.EscalationFilters) ([]*secondary.EscalationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.EscalationRecord
	for _, r := range m.records {
		if filters.SessionID != "" && r.SessionID != filters.SessionID {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockEscalationRepo) PendingFor(_ context.Context, sessionID string) ([]*secondary.EscalationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.EscalationRecord
	for _, r := range m.records {
		if r.SessionID != sessionID || r.Status == string(escalation.StatusDelivered) {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockEscalationRepo) Resolve(_ context.Context, id, answer string, resolvedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", escalation.ErrNotFound, id)
	}
	if r.Status != string(escalation.StatusPending) {
		return fmt.Errorf("%w: %s is %s", escalation.ErrInvalidTransition, id, r.Status)
	}
	r.Status = string(escalation.StatusResolved)
	r.SupervisorAnswer = answer
	r.ResolvedAt = &resolvedAt
	return nil
}

func (m *mockEscalationRepo) MarkDelivered(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", escalation.ErrNotFound, id)
	}
	if r.Status != string(escalation.StatusResolved) {
		return fmt.Errorf("%w: %s is %s", escalation.ErrInvalidTransition, id, r.Status)
	}
	r.Status = string(escalation.StatusDelivered)
	return nil
}

type mockKnowledgeRepo struct {
	mu      sync.Mutex
	entries []*secondary.KnowledgeRecord
	nextID  int64
	failErr error
}

func newMockKnowledgeRepo() *mockKnowledgeRepo {
	return &mockKnowledgeRepo{nextID: 1}
}

func (m *mockKnowledgeRepo) Append(_ context.Context, question, answer string) (*secondary.KnowledgeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	rec := &secondary.KnowledgeRecord{
		ID:        m.nextID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().Add(time.Duration(m.nextID) * time.Millisecond),
	}
	m.nextID++
	m.entries = append(m.entries, rec)
	return rec, nil
}

func (m *mockKnowledgeRepo) LookupAll(_ context.Context) ([]*secondary.KnowledgeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*secondary.KnowledgeRecord, len(m.entries))
	for i, r := range m.entries {
		cp := *r
		out[i] = &cp
	}
	return out, nil
}

type mockCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*secondary.CustomerRecord
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: make(map[string]*secondary.CustomerRecord)}
}

func (m *mockCustomerRepo) GetOrCreate(_ context.Context, phoneNumber, name string) (*secondary.CustomerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.customers[phoneNumber]; ok {
		cp := *c
		return &cp, nil
	}
	c := &secondary.CustomerRecord{
		ID:          fmt.Sprintf("cust-%d", len(m.customers)+1),
		PhoneNumber: phoneNumber,
		Name:        name,
		CreatedAt:   time.Now(),
	}
	m.customers[phoneNumber] = c
	cp := *c
	return &cp, nil
}

// mockTransport records everything spoken per session. Setting failSpeak
// makes Speak return ErrDeliveryFailed, simulating a hang-up.
type mockTransport struct {
	mu        sync.Mutex
	spoken    map[string][]string
	failSpeak bool
	streams   map[string]chan string
}

func newMockTransport() *mockTransport {
	return &mockTransport{
		spoken:  make(map[string][]string),
		streams: make(map[string]chan string),
	}
}

func (m *mockTransport) Speak(_ context.Context, sessionID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSpeak {
		return secondary.ErrDeliveryFailed
	}
	m.spoken[sessionID] = append(m.spoken[sessionID], text)
	return nil
}

func (m *mockTransport) Utterances(_ context.Context, sessionID string) <-chan string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.streams[sessionID]
	if !ok {
		ch = make(chan string, 16)
		m.streams[sessionID] = ch
	}
	return ch
}

func (m *mockTransport) spokenFor(sessionID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.spoken[sessionID]))
	copy(out, m.spoken[sessionID])
	return out
}

func (m *mockTransport) setFailSpeak(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSpeak = fail
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []notification
	err   error
}

type notification struct {
	phoneNumber string
	question    string
	answer      string
}

func (m *mockNotifier) Notify(_ context.Context, phoneNumber, question, answer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.calls = append(m.calls, notification{phoneNumber: phoneNumber, question: question, answer: answer})
	return nil
}

func (m *mockNotifier) notifications() []notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification, len(m.calls))
	copy(out, m.calls)
	return out
}

var (
	_ secondary.EscalationRepository = (*mockEscalationRepo)(nil)
	_ secondary.KnowledgeRepository  = (*mockKnowledgeRepo)(nil)
	_ secondary.CustomerRepository   = (*mockCustomerRepo)(nil)
	_ secondary.SessionTransport     = (*mockTransport)(nil)
	_ secondary.Notifier             = (*mockNotifier)(nil)
)
