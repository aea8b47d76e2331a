package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/frontdesk/internal/core/escalation"
	"github.com/example/frontdesk/internal/db"
	"github.com/example/frontdesk/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the real schema so the
// repositories are tested against exactly what production runs.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	// One connection keeps every statement on the same in-memory store.
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := database.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return database
}

// createTestCustomer inserts a caller row and returns its id, satisfying the
// escalations foreign key.
func createTestCustomer(t *testing.T, database *sql.DB, phoneNumber string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := database.Exec(
		"INSERT INTO customers (id, phone_number, name, created_at) VALUES (?, ?, ?, ?)",
		id, phoneNumber, "Test Caller", time.Now(),
	)
	if err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}
	return id
}

// createTestEscalation inserts a pending escalation through the repository.
func createTestEscalation(t *testing.T, repo *EscalationRepository, callerID, sessionID, question string, createdAt time.Time) *secondary.EscalationRecord {
	t.Helper()

	record := &secondary.EscalationRecord{
		ID:          uuid.NewString(),
		Question:    question,
		CallerID:    callerID,
		SessionID:   sessionID,
		PhoneNumber: "+15550001111",
		Status:      string(escalation.InitialStatus()),
		CreatedAt:   createdAt,
	}
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("failed to create test escalation: %v", err)
	}
	return record
}
