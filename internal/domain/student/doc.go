// Package student contains the domain model of a registered student.
//
// This is the core of the registry's business logic. The package defines:
//
//   - Value objects: ID, Marks, Grade
//   - The Student entity with its derived Total, Average and Grade
//   - Name normalization shared by registration, renaming and loading
//
// # Architectural principles
//
// The package has no external dependencies and knows nothing about storage or
// the console. Capacity, ordering and uniqueness are roster concerns and live in
// the roster package.
//
// # Identifiers
//
// A student ID is the lower-case letter 'w' followed by exactly seven ASCII
// digits. IDs are never trimmed or case-folded:
//
//	id, err := ParseID("w1234567")
//	if err != nil {
//	    return err // shared.ErrInvalidStudentID
//	}
//
// # Marks and grades
//
// Marks entered interactively must lie in [0, 100]. Marks read back from a store
// only need to be finite numbers. The grade is derived from the average:
//
//	marks, err := NewMarks(80, 65.5, 70)
//	if err != nil {
//	    return err // shared.ErrInvalidMarks
//	}
//	_ = GradeFor(marks.Average()) // GradeA
//
// # Students
//
// A new student starts with all marks at zero:
//
//	s, err := NewStudent(id, "  Ann Lee ")
//	// s.Name == "Ann Lee", s.Grade() == GradeF
//
//	if err := s.SetMarks(marks); err != nil {
//	    return err
//	}
package student
