package roster

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE INTERFACE
// This interface defines the persistence contract of the roster.
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Store saves and restores roster contents.
type Store interface {
	// Name returns a short backend name for logs and messages.
	Name() string

	// Save replaces the stored contents with students, in order.
	// Callers never pass an empty slice.
	Save(ctx context.Context, students []*student.Student) error

	// Load returns everything previously saved.
	// Returns shared.ErrNoData if nothing was ever saved.
	Load(ctx context.Context) (*Dump, error)
}

// Dump is the raw content read back from a store.
type Dump struct {
	// Records are well-formed tuples in stored order.
	Records []Record

	// Rejected are entries that could not be split into a record.
	Rejected []RejectedLine
}

// RejectedLine is a stored entry with the wrong shape.
type RejectedLine struct {
	// Line is the 1-based position of the entry.
	Line int

	// Text is the raw entry.
	Text string

	// Reason describes the problem.
	Reason string
}
