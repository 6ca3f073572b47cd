package command

import (
	"context"
	"log/slog"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE NAME COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateNameCommand renames a registered student.
type UpdateNameCommand struct {
	StudentID string
	Name      string
}

// UpdateNameHandler handles the UpdateNameCommand.
type UpdateNameHandler struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewUpdateNameHandler creates a new UpdateNameHandler.
func NewUpdateNameHandler(r *roster.Roster, logger *slog.Logger) *UpdateNameHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateNameHandler{roster: r, logger: logger}
}

// Handle executes the update name command and returns the updated record.
func (h *UpdateNameHandler) Handle(ctx context.Context, cmd UpdateNameCommand) (*student.Student, error) {
	if err := h.roster.UpdateName(cmd.StudentID, cmd.Name); err != nil {
		return nil, err
	}

	updated, _ := h.roster.Find(cmd.StudentID)
	h.logger.InfoContext(ctx, "student renamed", "student_id", cmd.StudentID)
	return updated, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE MARKS COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateMarksCommand replaces all three module marks of a student.
type UpdateMarksCommand struct {
	StudentID string
	Marks     [3]float64
}

// Validate validates the command.
func (c UpdateMarksCommand) Validate() error {
	_, err := student.NewMarks(c.Marks[0], c.Marks[1], c.Marks[2])
	return err
}

// UpdateMarksHandler handles the UpdateMarksCommand.
type UpdateMarksHandler struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewUpdateMarksHandler creates a new UpdateMarksHandler.
func NewUpdateMarksHandler(r *roster.Roster, logger *slog.Logger) *UpdateMarksHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateMarksHandler{roster: r, logger: logger}
}

// Handle executes the update marks command and returns the updated record.
// The student lookup happens first, so an unknown ID wins over bad marks.
func (h *UpdateMarksHandler) Handle(ctx context.Context, cmd UpdateMarksCommand) (*student.Student, error) {
	if _, ok := h.roster.Find(cmd.StudentID); !ok {
		return nil, shared.ErrStudentNotFound
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.roster.UpdateMarks(cmd.StudentID, cmd.Marks[0], cmd.Marks[1], cmd.Marks[2]); err != nil {
		return nil, err
	}

	updated, _ := h.roster.Find(cmd.StudentID)
	h.logger.InfoContext(ctx, "marks updated",
		"student_id", cmd.StudentID,
		"average", updated.Average(),
	)
	return updated, nil
}
