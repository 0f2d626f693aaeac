package db

// SchemaSQL is the complete schema for fresh installs. It is the single
// source of truth: tests build their databases from GetSchemaSQL(), so any
// drift between repository code and this schema fails immediately with
// "no such column".
//
// Keep in sync with the migrations list when adding columns or tables.
const SchemaSQL = `
-- Vehicle records (one per canonical plate, the authoritative copy)
CREATE TABLE IF NOT EXISTS vehicle_records (
	id INTEGER PRIMARY KEY,
	plate TEXT NOT NULL UNIQUE,
	owner_name TEXT NOT NULL DEFAULT '',
	contact TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL CHECK(status IN ('in_progress', 'done', 'delivered')) DEFAULT 'in_progress',
	mileage INTEGER,
	next_inspection TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vehicle_records_updated_at ON vehicle_records(updated_at);

-- Activity ledger (append-only, trimmed to the most recent entries on insert)
CREATE TABLE IF NOT EXISTS activity (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Migration bookkeeping
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema for tests and fresh installs.
func GetSchemaSQL() string {
	return SchemaSQL
}
