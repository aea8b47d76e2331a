package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/frontdesk/internal/ports/secondary"
)

// CustomerRepository implements secondary.CustomerRepository with SQLite.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new SQLite customer repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetOrCreate looks a customer up by phone number, creating the record on
// first contact. A concurrent insert of the same phone number loses the
// UNIQUE race and falls back to reading the winner's row.
func (r *CustomerRepository) GetOrCreate(ctx context.Context, phoneNumber, name string) (*secondary.CustomerRecord, error) {
	if record, err := r.getByPhone(ctx, phoneNumber); err == nil {
		return record, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	if name == "" {
		name = "Unknown"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (id, phone_number, name, created_at) VALUES (?, ?, ?, ?)",
		uuid.NewString(), phoneNumber, name, time.Now(),
	)
	if err != nil {
		// Lost the race to another session creating the same customer.
		if record, getErr := r.getByPhone(ctx, phoneNumber); getErr == nil {
			return record, nil
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	record, err := r.getByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created customer: %w", err)
	}
	return record, nil
}

func (r *CustomerRepository) getByPhone(ctx context.Context, phoneNumber string) (*secondary.CustomerRecord, error) {
	var name sql.NullString
	record := &secondary.CustomerRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, phone_number, name, created_at FROM customers WHERE phone_number = ?",
		phoneNumber,
	).Scan(&record.ID, &record.PhoneNumber, &name, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	record.Name = name.String
	return record, nil
}

// Ensure CustomerRepository implements the interface
var _ secondary.CustomerRepository = (*CustomerRepository)(nil)
