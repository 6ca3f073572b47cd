// Package command contains write operations (CQRS - Commands).
// Commands change the roster or move it to and from a store.
package command

import (
	"context"
	"log/slog"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER STUDENT COMMAND
// Takes a seat in the roster for a new student with zeroed marks.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterStudentCommand contains the data needed to register a student.
type RegisterStudentCommand struct {
	// StudentID must match the w + 7 digits format.
	StudentID string

	// Name is the display name; surrounding whitespace is trimmed.
	Name string
}

// RegisterStudentResult contains the result of a registration.
type RegisterStudentResult struct {
	// Student is a copy of the registered record.
	Student *student.Student

	// SeatsLeft is the number of seats still available.
	SeatsLeft int
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// RegisterStudentHandler handles the RegisterStudentCommand.
type RegisterStudentHandler struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewRegisterStudentHandler creates a new RegisterStudentHandler.
func NewRegisterStudentHandler(r *roster.Roster, logger *slog.Logger) *RegisterStudentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegisterStudentHandler{roster: r, logger: logger}
}

// CheckID reports whether id could be registered right now, without changing
// the roster. It returns the error Register would fail with before the name
// is examined.
func (h *RegisterStudentHandler) CheckID(id string) error {
	if h.roster.AvailableSeats() <= 0 {
		return shared.ErrRosterFull
	}
	if _, err := student.ParseID(id); err != nil {
		return err
	}
	if _, exists := h.roster.Find(id); exists {
		return shared.ErrDuplicateStudentID
	}
	return nil
}

// Handle executes the register student command. Validation order and errors
// are those of roster.Register.
func (h *RegisterStudentHandler) Handle(ctx context.Context, cmd RegisterStudentCommand) (*RegisterStudentResult, error) {
	if err := h.roster.Register(cmd.StudentID, cmd.Name); err != nil {
		h.logger.DebugContext(ctx, "registration rejected",
			"student_id", cmd.StudentID,
			"error", err,
		)
		return nil, err
	}

	registered, _ := h.roster.Find(cmd.StudentID)

	h.logger.InfoContext(ctx, "student registered",
		"student_id", cmd.StudentID,
		"count", h.roster.Count(),
	)

	return &RegisterStudentResult{
		Student:   registered,
		SeatsLeft: h.roster.AvailableSeats(),
	}, nil
}
