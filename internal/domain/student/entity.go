package student

import (
	"fmt"
	"math"
	"strings"

	"github.com/alem-hub/student-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// IDLength is the exact length of a student ID.
const IDLength = 8

// IDPrefix is the mandatory first character of a student ID.
const IDPrefix = 'w'

// ID is a student identifier: the letter 'w' followed by exactly 7 digits.
type ID string

// IsValid reports whether the ID matches the w1234567 pattern.
func (id ID) IsValid() bool {
	s := string(id)
	if len(s) != IDLength || s[0] != IDPrefix {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// ParseID validates s and returns it as an ID.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if !id.IsValid() {
		return "", shared.ErrInvalidStudentID
	}
	return id, nil
}

// Mark bounds accepted through validated entry points.
const (
	MinMark = 0.0
	MaxMark = 100.0
)

// Marks holds the three module marks of one student.
type Marks struct {
	Module1 float64
	Module2 float64
	Module3 float64
}

// NewMarks validates all three marks together and returns them.
func NewMarks(m1, m2, m3 float64) (Marks, error) {
	m := Marks{Module1: m1, Module2: m2, Module3: m3}
	if !m.IsValid() {
		return Marks{}, shared.ErrInvalidMarks
	}
	return m, nil
}

// IsValid reports whether every mark lies in [MinMark, MaxMark].
func (m Marks) IsValid() bool {
	return validMark(m.Module1) && validMark(m.Module2) && validMark(m.Module3)
}

func validMark(v float64) bool {
	return !math.IsNaN(v) && v >= MinMark && v <= MaxMark
}

// Total returns the sum of the three marks.
func (m Marks) Total() float64 {
	return m.Module1 + m.Module2 + m.Module3
}

// Average returns the arithmetic mean of the three marks.
func (m Marks) Average() float64 {
	return m.Total() / 3
}

// ══════════════════════════════════════════════════════════════════════════════
// GRADES
// ══════════════════════════════════════════════════════════════════════════════

// Grade is the letter band derived from an average mark.
type Grade byte

const (
	GradeA Grade = 'A'
	GradeB Grade = 'B'
	GradeC Grade = 'C'
	GradeD Grade = 'D'
	GradeF Grade = 'F'
)

// GradeFor returns the band of the given average.
func GradeFor(average float64) Grade {
	switch {
	case average >= 70:
		return GradeA
	case average >= 60:
		return GradeB
	case average >= 50:
		return GradeC
	case average >= 40:
		return GradeD
	default:
		return GradeF
	}
}

// String returns the grade letter.
func (g Grade) String() string {
	return string(rune(g))
}

// MarshalText encodes the grade as its letter.
func (g Grade) MarshalText() ([]byte, error) {
	return []byte{byte(g)}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is a registered student with identity and module marks.
type Student struct {
	// ID is immutable after creation.
	ID ID

	// Name is the display name, never blank.
	Name string

	// Marks are zero until set.
	Marks Marks
}

// NormalizeName trims name and checks that it can be stored.
// Commas and line breaks are rejected because the flat file format has no escaping.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.ContainsAny(trimmed, ",\r\n") {
		return "", shared.ErrInvalidStudentName
	}
	return trimmed, nil
}

// NewStudent creates a student with zeroed marks.
func NewStudent(id ID, name string) (*Student, error) {
	if !id.IsValid() {
		return nil, shared.ErrInvalidStudentID
	}

	normalized, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	return &Student{
		ID:   id,
		Name: normalized,
	}, nil
}

// Rename changes the student's name.
func (s *Student) Rename(name string) error {
	normalized, err := NormalizeName(name)
	if err != nil {
		return err
	}
	s.Name = normalized
	return nil
}

// SetMarks replaces the marks atomically.
func (s *Student) SetMarks(m Marks) error {
	if !m.IsValid() {
		return shared.ErrInvalidMarks
	}
	s.Marks = m
	return nil
}

// Total returns the sum of the student's marks.
func (s *Student) Total() float64 {
	return s.Marks.Total()
}

// Average returns the student's average mark.
func (s *Student) Average() float64 {
	return s.Marks.Average()
}

// Grade returns the student's grade band.
func (s *Student) Grade() Grade {
	return GradeFor(s.Average())
}

// String returns a string representation of the student for logging.
func (s *Student) String() string {
	return fmt.Sprintf(
		"Student{ID: %s, Name: %s, Average: %.2f, Grade: %s}",
		s.ID, s.Name, s.Average(), s.Grade(),
	)
}

// Clone creates a deep copy of the student.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}

	clone := *s
	return &clone
}
