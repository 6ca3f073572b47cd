package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/flatfile"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER STORE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

var studentColumns = []string{"position", "id", "name", "mark1", "mark2", "mark3"}

// studentRow is one row of registry_students.
type studentRow struct {
	Position int     `db:"position"`
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Mark1    float64 `db:"mark1"`
	Mark2    float64 `db:"mark2"`
	Mark3    float64 `db:"mark3"`
}

// Snapshot describes a single store operation.
type Snapshot struct {
	ID      uuid.UUID
	Count   int
	SavedAt time.Time
}

// RosterStore implements roster.Store for PostgreSQL.
type RosterStore struct {
	conn  *Connection
	newID func() uuid.UUID
}

// NewRosterStore creates a new RosterStore.
func NewRosterStore(conn *Connection) *RosterStore {
	return &RosterStore{conn: conn, newID: uuid.New}
}

// Name implements roster.Store.
func (s *RosterStore) Name() string {
	return "postgres"
}

// Save replaces the stored roster and records a snapshot, in one transaction.
func (s *RosterStore) Save(ctx context.Context, students []*student.Student) error {
	snapshot := Snapshot{ID: s.newID(), Count: len(students), SavedAt: time.Now().UTC()}

	err := s.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM registry_students`); err != nil {
			return fmt.Errorf("failed to clear students: %w", err)
		}

		if len(students) > 0 {
			if _, err := tx.CopyFrom(ctx,
				pgx.Identifier{"registry_students"},
				studentColumns,
				pgx.CopyFromRows(copyRows(students)),
			); err != nil {
				return fmt.Errorf("failed to copy students: %w", err)
			}
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO registry_snapshots (id, student_count, saved_at) VALUES ($1, $2, $3)`,
			snapshot.ID, snapshot.Count, snapshot.SavedAt,
		)
		return err
	})
	if err != nil {
		return shared.WrapError("store", "Save", shared.ErrIO, "error writing to database", err)
	}

	return nil
}

// Load reads the stored roster in position order.
// A database without any snapshot yields shared.ErrNoData.
func (s *RosterStore) Load(ctx context.Context) (*roster.Dump, error) {
	var rows []studentRow

	err := s.conn.WithTx(ctx, ReadOnlyTxOptions(), func(tx pgx.Tx) error {
		if _, err := lastSnapshot(ctx, tx); err != nil {
			return err
		}

		result, err := tx.Query(ctx, `
			SELECT position, id, name, mark1, mark2, mark3
			FROM registry_students
			ORDER BY position
		`)
		if err != nil {
			return err
		}
		rows, err = pgx.CollectRows(result, pgx.RowToStructByName[studentRow])
		return err
	})
	if IsNoRows(err) {
		return nil, shared.ErrNoData
	}
	if err != nil {
		return nil, shared.WrapError("store", "Load", shared.ErrIO, "error reading database", err)
	}

	return dumpFromRows(rows), nil
}

// LastSnapshot returns the most recent store operation.
func (s *RosterStore) LastSnapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.conn.WithTx(ctx, ReadOnlyTxOptions(), func(tx pgx.Tx) error {
		var err error
		snap, err = lastSnapshot(ctx, tx)
		return err
	})
	if IsNoRows(err) {
		return Snapshot{}, shared.ErrNoData
	}
	return snap, err
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func lastSnapshot(ctx context.Context, tx pgx.Tx) (Snapshot, error) {
	var snap Snapshot
	err := tx.QueryRow(ctx, `
		SELECT id, student_count, saved_at
		FROM registry_snapshots
		ORDER BY saved_at DESC
		LIMIT 1
	`).Scan(&snap.ID, &snap.Count, &snap.SavedAt)
	return snap, err
}

// copyRows converts students to CopyFrom input in studentColumns order.
func copyRows(students []*student.Student) [][]any {
	rows := make([][]any, len(students))
	for i, st := range students {
		rows[i] = []any{i, st.ID.String(), st.Name, st.Marks.Module1, st.Marks.Module2, st.Marks.Module3}
	}
	return rows
}

// dumpFromRows renders rows as raw records so they pass the same validation as
// any other backend.
func dumpFromRows(rows []studentRow) *roster.Dump {
	dump := &roster.Dump{Records: make([]roster.Record, 0, len(rows))}
	for _, r := range rows {
		dump.Records = append(dump.Records, roster.Record{
			ID:    r.ID,
			Name:  r.Name,
			Mark1: flatfile.FormatMark(r.Mark1),
			Mark2: flatfile.FormatMark(r.Mark2),
			Mark3: flatfile.FormatMark(r.Mark3),
		})
	}
	return dump
}
