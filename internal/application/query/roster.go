// Package query contains read operations (CQRS - Queries).
// Queries never change the roster; results are detached copies.
package query

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SEATS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetSeatsQuery asks for roster occupancy.
type GetSeatsQuery struct{}

// SeatsDTO describes roster occupancy.
type SeatsDTO struct {
	Capacity  int `json:"capacity"`
	Occupied  int `json:"occupied"`
	Available int `json:"available"`
}

// GetSeatsHandler handles GetSeatsQuery.
type GetSeatsHandler struct {
	roster *roster.Roster
}

// NewGetSeatsHandler creates a new GetSeatsHandler.
func NewGetSeatsHandler(r *roster.Roster) *GetSeatsHandler {
	return &GetSeatsHandler{roster: r}
}

// Handle executes the query.
func (h *GetSeatsHandler) Handle(_ context.Context, _ GetSeatsQuery) (*SeatsDTO, error) {
	return &SeatsDTO{
		Capacity:  h.roster.Capacity(),
		Occupied:  h.roster.Count(),
		Available: h.roster.AvailableSeats(),
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// FIND STUDENT QUERY
// ══════════════════════════════════════════════════════════════════════════════

// FindStudentQuery looks a student up by exact, case-sensitive ID.
type FindStudentQuery struct {
	StudentID string
}

// FindStudentHandler handles FindStudentQuery.
type FindStudentHandler struct {
	roster *roster.Roster
}

// NewFindStudentHandler creates a new FindStudentHandler.
func NewFindStudentHandler(r *roster.Roster) *FindStudentHandler {
	return &FindStudentHandler{roster: r}
}

// Handle returns a copy of the student or shared.ErrStudentNotFound.
func (h *FindStudentHandler) Handle(_ context.Context, q FindStudentQuery) (*student.Student, error) {
	s, ok := h.roster.Find(q.StudentID)
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	return s, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsQuery asks for every student ordered by name, case-insensitively.
type ListStudentsQuery struct{}

// ListStudentsHandler handles ListStudentsQuery.
type ListStudentsHandler struct {
	roster *roster.Roster
}

// NewListStudentsHandler creates a new ListStudentsHandler.
func NewListStudentsHandler(r *roster.Roster) *ListStudentsHandler {
	return &ListStudentsHandler{roster: r}
}

// Handle executes the query. An empty roster yields an empty slice.
func (h *ListStudentsHandler) Handle(_ context.Context, _ ListStudentsQuery) ([]*student.Student, error) {
	return h.roster.ListSortedByName(), nil
}
