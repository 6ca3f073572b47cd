// Package presenter renders registry data as console text.
package presenter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alem-hub/student-registry/internal/application/command"
	"github.com/alem-hub/student-registry/internal/application/query"
	"github.com/alem-hub/student-registry/internal/domain/report"
	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

const (
	MsgInvalidNumber    = "Invalid input. Please enter a number."
	MsgInvalidMainRange = "Invalid choice. Please enter a value between 1 and 9."
	MsgInvalidSubChoice = "Invalid choice. Please try again."
	MsgInvalidMarkInput = "Invalid marks. Please enter valid numbers."
	MsgExit             = "Exiting the system."
	MsgRegistered       = "Student registered successfully."
	MsgDeleted          = "Student deleted successfully."
	MsgDeleteNotFound   = "Student with that ID not found."
	MsgNameUpdated      = "Student name updated successfully."
	MsgMarksUpdated     = "Module marks updated successfully."
	MsgStored           = "Student details stored successfully."
	MsgNothingToStore   = "No student details to store."
	MsgLoaded           = "Student details loaded successfully."
	MsgNoData           = "No data found to load."
	MsgNoStudents       = "No student information is currently available to display."
	MsgNoReportData     = "No student information available to display."
)

// ErrorMessage turns a domain error into the sentence shown to the user.
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, shared.ErrRosterFull):
		return "No available seats."
	case errors.Is(err, shared.ErrInvalidStudentID):
		return "Invalid ID format. The ID should start with 'w' followed by 7 digits."
	case errors.Is(err, shared.ErrDuplicateStudentID):
		return "Student ID already exists."
	case errors.Is(err, shared.ErrInvalidStudentName):
		return "Invalid student name. The name should not be empty or contain commas."
	case errors.Is(err, shared.ErrInvalidMarks):
		return "Invalid marks. Please enter marks between 0 and 100."
	case errors.Is(err, shared.ErrStudentNotFound):
		return "Student not found."
	}

	msg := shared.UserMessage(err)
	if msg == "" {
		return "Unexpected error."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

// FormatMark renders a mark like the persistence format does.
func FormatMark(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Seats writes the number of free seats.
func Seats(w io.Writer, seats *query.SeatsDTO) {
	fmt.Fprintf(w, "Available seats: %d\n", seats.Available)
}

// Details writes every field of a student, one per line.
func Details(w io.Writer, s *student.Student) {
	fmt.Fprintf(w, "Student ID: %s\n", s.ID)
	fmt.Fprintf(w, "    Student Name: %s\n", s.Name)
	fmt.Fprintf(w, "    Module 1 Marks: %s\n", FormatMark(s.Marks.Module1))
	fmt.Fprintf(w, "    Module 2 Marks: %s\n", FormatMark(s.Marks.Module2))
	fmt.Fprintf(w, "    Module 3 Marks: %s\n", FormatMark(s.Marks.Module3))
	fmt.Fprintf(w, "    Total: %s\n", FormatMark(s.Total()))
	fmt.Fprintf(w, "    Average: %.2f\n", s.Average())
	fmt.Fprintf(w, "    Grade: %s\n", s.Grade())
}

// ShortRow writes the one-line listing of a student.
func ShortRow(w io.Writer, s *student.Student) {
	fmt.Fprintf(w, "%-10s %-20s %-10.2f %-10c\n", s.ID, s.Name, s.Average(), byte(s.Grade()))
}

// List writes the short rows of students, or a notice when there are none.
func List(w io.Writer, students []*student.Student) {
	if len(students) == 0 {
		fmt.Fprintln(w, MsgNoStudents)
		return
	}
	for _, s := range students {
		ShortRow(w, s)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// REPORTS
// ══════════════════════════════════════════════════════════════════════════════

// Summary writes the summary report.
func Summary(w io.Writer, s report.Summary) {
	fmt.Fprintln(w, "Summary Report:")
	fmt.Fprintf(w, "Total student registrations: %d\n", s.Total)
	fmt.Fprintf(w, "Total students scoring more than 40 marks in Module 1: %d\n", s.PassedModule1)
	fmt.Fprintf(w, "Total students scoring more than 40 marks in Module 2: %d\n", s.PassedModule2)
	fmt.Fprintf(w, "Total students scoring more than 40 marks in Module 3: %d\n", s.PassedModule3)
	fmt.Fprintf(w, "Total students scoring more than 40 marks in all modules: %d\n", s.PassedAll)
}

const completeRule = "--------------------------------------------------------------------------------------------------------------"

// Complete writes the ranked report table.
func Complete(w io.Writer, c report.Complete) {
	if c.IsEmpty() {
		fmt.Fprintf(w, "\n%s\n", MsgNoReportData)
		return
	}

	fmt.Fprint(w, "\nDetailed Report:\n\n")
	fmt.Fprintf(w, "%-15s %-20s %-16s %-16s %-16s %-10s %-10s %-10s\n",
		"Student ID", "Student Name", "Module 1", "Module 2", "Module 3",
		"Total", "Average", "Grade")
	fmt.Fprintln(w, completeRule)

	for _, r := range c.Rows {
		fmt.Fprintf(w, "%-15s %-20s %-16.2f %-16.2f %-16.2f %-10.2f %-10.2f %-10c\n",
			r.ID, r.Name, r.Mark1, r.Mark2, r.Mark3, r.Total, r.Average, byte(r.Grade))
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// PERSISTENCE
// ══════════════════════════════════════════════════════════════════════════════

// Stored writes the outcome of a store operation.
func Stored(w io.Writer, res *command.StoreRosterResult) {
	if res.NothingToStore {
		fmt.Fprintln(w, MsgNothingToStore)
		return
	}
	fmt.Fprintln(w, MsgStored)
}

// Loaded writes one line per entry that was not loaded, then the outcome.
func Loaded(w io.Writer, res *command.LoadRosterResult) {
	if res.NoData {
		fmt.Fprintln(w, MsgNoData)
		return
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintln(w, Diagnostic(d))
	}
	if res.Ignored > 0 {
		fmt.Fprintf(w, "No available seats: %d remaining entries were not loaded.\n", res.Ignored)
	}
	fmt.Fprintln(w, MsgLoaded)
}

// Diagnostic describes an entry that was not loaded.
func Diagnostic(d command.Diagnostic) string {
	if d.Kind == command.DiagnosticMalformed {
		return fmt.Sprintf("Invalid data at entry %d (%s). Please check the file format.", d.Line, d.Reason)
	}

	switch roster.SkipReason(d.Reason) {
	case roster.SkipInvalidID:
		return fmt.Sprintf("Invalid ID format found: %s and skipped", d.StudentID)
	case roster.SkipInvalidMarks:
		return fmt.Sprintf("Invalid marks found for ID: %s and skipped", d.StudentID)
	case roster.SkipDuplicateID:
		return fmt.Sprintf("Duplicate ID found: %s and skipped", d.StudentID)
	case roster.SkipInvalidName:
		return fmt.Sprintf("Invalid student name found for ID: %s and skipped", d.StudentID)
	default:
		return fmt.Sprintf("Entry for ID %s skipped: %s", d.StudentID, d.Reason)
	}
}
