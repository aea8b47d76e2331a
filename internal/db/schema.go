package db

// SchemaSQL is the complete schema for fresh frontdesk installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// it via GetSchemaSQL(): if repository code references a column that does
// not exist here, tests fail immediately with "no such column" instead of
// drifting against a hand-written test schema.
const SchemaSQL = `
-- Customers (callers, keyed by phone number)
CREATE TABLE IF NOT EXISTS customers (
	id TEXT PRIMARY KEY,
	phone_number TEXT NOT NULL UNIQUE,
	name TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Escalations (questions waiting on a supervisor)
-- status only ever moves forward: pending -> resolved -> delivered.
-- resolved_at is set exactly once, when the supervisor answers.
CREATE TABLE IF NOT EXISTS escalations (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	caller_id TEXT NOT NULL,
	session_id TEXT NOT NULL,
	phone_number TEXT,
	status TEXT NOT NULL CHECK(status IN ('pending', 'resolved', 'delivered')) DEFAULT 'pending',
	supervisor_answer TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	resolved_at DATETIME,
	FOREIGN KEY (caller_id) REFERENCES customers(id)
);

CREATE INDEX IF NOT EXISTS idx_escalations_session_status ON escalations(session_id, status);
CREATE INDEX IF NOT EXISTS idx_escalations_status ON escalations(status);

-- Knowledge base (normalized question -> answer, append only)
CREATE TABLE IF NOT EXISTS knowledge_base (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema. Tests must use this
// instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
