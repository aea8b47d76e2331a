package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/frontdesk/internal/core/escalation"
	"github.com/example/frontdesk/internal/ports/secondary"
)

// EscalationRepository implements secondary.EscalationRepository with SQLite.
//
// Status transitions use a conditional UPDATE keyed by (id, expected status),
// which makes each transition an atomic compare-and-swap on that record: of
// two racing resolvers exactly one sees a row change.
type EscalationRepository struct {
	db *sql.DB
}

// NewEscalationRepository creates a new SQLite escalation repository.
func NewEscalationRepository(db *sql.DB) *EscalationRepository {
	return &EscalationRepository{db: db}
}

const escalationColumns = "id, question, caller_id, session_id, phone_number, status, supervisor_answer, created_at, resolved_at"

// Create persists a new escalation in pending status.
func (r *EscalationRepository) Create(ctx context.Context, record *secondary.EscalationRecord) error {
	var phone sql.NullString
	if record.PhoneNumber != "" {
		phone = sql.NullString{String: record.PhoneNumber, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO escalations (id, question, caller_id, session_id, phone_number, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Question,
		record.CallerID,
		record.SessionID,
		phone,
		string(escalation.InitialStatus()),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create escalation: %w", err)
	}

	return nil
}

// GetByID retrieves an escalation by its ID.
func (r *EscalationRepository) GetByID(ctx context.Context, id string) (*secondary.EscalationRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+escalationColumns+" FROM escalations WHERE id = ?", id,
	)

	record, err := scanEscalation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("escalation %s: %w", id, escalation.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get escalation: %w", err)
	}

	return record, nil
}

// List retrieves escalations matching the given filters, newest first.
func (r *EscalationRepository) List(ctx context.Context, filters secondary.EscalationFilters) ([]*secondary.EscalationRecord, error) {
	query := "SELECT " + escalationColumns + " FROM escalations WHERE 1=1"
	args := []any{}

	if filters.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filters.SessionID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, id DESC"

	return r.queryEscalations(ctx, query, args...)
}

// PendingFor returns every non-delivered escalation for a session, oldest
// first, so the earliest-raised question is always delivered first.
func (r *EscalationRepository) PendingFor(ctx context.Context, sessionID string) ([]*secondary.EscalationRecord, error) {
	query := "SELECT " + escalationColumns + ` FROM escalations WHERE session_id = ? AND status != ? ORDER BY created_at ASC, id ASC`
	return r.queryEscalations(ctx, query, sessionID, string(escalation.StatusDelivered))
}

// Resolve transitions a pending escalation to resolved. The WHERE clause on
// the current status serializes concurrent attempts: a second resolve, or a
// resolve racing a delivery, affects zero rows and is rejected.
func (r *EscalationRepository) Resolve(ctx context.Context, id, answer string, resolvedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE escalations SET status = ?, supervisor_answer = ?, resolved_at = ? WHERE id = ? AND status = ?",
		string(escalation.StatusResolved), answer, resolvedAt, id, string(escalation.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("failed to resolve escalation: %w", err)
	}

	return r.checkTransition(ctx, res, id, escalation.StatusResolved)
}

// MarkDelivered transitions a resolved escalation to delivered.
func (r *EscalationRepository) MarkDelivered(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE escalations SET status = ? WHERE id = ? AND status = ?",
		string(escalation.StatusDelivered), id, string(escalation.StatusResolved),
	)
	if err != nil {
		return fmt.Errorf("failed to mark escalation delivered: %w", err)
	}

	return r.checkTransition(ctx, res, id, escalation.StatusDelivered)
}

// checkTransition classifies a zero-row conditional update as either an
// unknown record or an invalid transition from the record's actual status.
func (r *EscalationRepository) checkTransition(ctx context.Context, res sql.Result, id string, to escalation.Status) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check escalation update: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var current string
	err = r.db.QueryRowContext(ctx, "SELECT status FROM escalations WHERE id = ?", id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("escalation %s: %w", id, escalation.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check escalation status: %w", err)
	}

	return fmt.Errorf("%w: escalation %s is %s, cannot transition to %s", escalation.ErrInvalidTransition, id, current, to)
}

func (r *EscalationRepository) queryEscalations(ctx context.Context, query string, args ...any) ([]*secondary.EscalationRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}
	defer rows.Close()

	var records []*secondary.EscalationRecord
	for rows.Next() {
		record, err := scanEscalation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan escalation: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read escalations: %w", err)
	}

	return records, nil
}

func scanEscalation(scan func(dest ...any) error) (*secondary.EscalationRecord, error) {
	var (
		phone      sql.NullString
		answer     sql.NullString
		resolvedAt sql.NullTime
	)

	record := &secondary.EscalationRecord{}
	err := scan(
		&record.ID,
		&record.Question,
		&record.CallerID,
		&record.SessionID,
		&phone,
		&record.Status,
		&answer,
		&record.CreatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	record.PhoneNumber = phone.String
	record.SupervisorAnswer = answer.String
	if resolvedAt.Valid {
		t := resolvedAt.Time
		record.ResolvedAt = &t
	}

	return record, nil
}

// Ensure EscalationRepository implements the interface
var _ secondary.EscalationRepository = (*EscalationRepository)(nil)
