package command

import (
	"context"
	"log/slog"

	"github.com/alem-hub/student-registry/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE STUDENT COMMAND
// Removes a student and frees the seat; later students move up one position.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteStudentCommand identifies the student to remove.
type DeleteStudentCommand struct {
	StudentID string
}

// DeleteStudentResult contains the result of a deletion.
type DeleteStudentResult struct {
	StudentID string
	SeatsLeft int
}

// DeleteStudentHandler handles the DeleteStudentCommand.
type DeleteStudentHandler struct {
	roster *roster.Roster
	logger *slog.Logger
}

// NewDeleteStudentHandler creates a new DeleteStudentHandler.
func NewDeleteStudentHandler(r *roster.Roster, logger *slog.Logger) *DeleteStudentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteStudentHandler{roster: r, logger: logger}
}

// Handle executes the delete student command.
// An unknown ID yields shared.ErrStudentNotFound and leaves the roster unchanged.
func (h *DeleteStudentHandler) Handle(ctx context.Context, cmd DeleteStudentCommand) (*DeleteStudentResult, error) {
	if err := h.roster.Delete(cmd.StudentID); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "student deleted",
		"student_id", cmd.StudentID,
		"count", h.roster.Count(),
	)

	return &DeleteStudentResult{
		StudentID: cmd.StudentID,
		SeatsLeft: h.roster.AvailableSeats(),
	}, nil
}
