package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE ROSTER TABLES
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Students of the last stored roster, in roster order
CREATE TABLE IF NOT EXISTS registry_students (
    position INTEGER PRIMARY KEY,
    id VARCHAR(8) NOT NULL UNIQUE,
    name TEXT NOT NULL,
    mark1 DOUBLE PRECISION NOT NULL DEFAULT 0,
    mark2 DOUBLE PRECISION NOT NULL DEFAULT 0,
    mark3 DOUBLE PRECISION NOT NULL DEFAULT 0,

    CONSTRAINT valid_position CHECK (position >= 0)
);

-- One row per store operation
CREATE TABLE IF NOT EXISTS registry_snapshots (
    id UUID PRIMARY KEY,
    student_count INTEGER NOT NULL,
    saved_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_registry_snapshots_saved_at ON registry_snapshots(saved_at DESC);
`

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_registry",
			UpSQL:   migration001Up,
		},
	}
}
