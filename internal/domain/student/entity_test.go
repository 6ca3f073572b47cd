package student

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/shared"
)

func TestID_IsValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"w1234567", true},
		{"w0000000", true},
		{"w9999999", true},
		{"x1234567", false},
		{"W1234567", false},
		{"w123456", false},
		{"w12345678", false},
		{"w12a4567", false},
		{"w123456 ", false},
		{" w123456", false},
		{"w١٢٣٤٥٦٧", false},
		{"", false},
		{"w", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ID(tt.id).IsValid())
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("w7654321")
	require.NoError(t, err)
	assert.Equal(t, ID("w7654321"), id)

	_, err = ParseID("w765432")
	assert.ErrorIs(t, err, shared.ErrInvalidStudentID)
	assert.True(t, shared.IsValidation(err))
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		average float64
		want    Grade
	}{
		{100, GradeA},
		{70.0, GradeA},
		{69.999, GradeB},
		{60, GradeB},
		{59.99, GradeC},
		{50, GradeC},
		{49.99, GradeD},
		{40.0, GradeD},
		{39.999, GradeF},
		{0, GradeF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.average), "average %v", tt.average)
	}
}

func TestGrade_String(t *testing.T) {
	assert.Equal(t, "A", GradeA.String())
	assert.Equal(t, "F", GradeF.String())
}

func TestNewMarks(t *testing.T) {
	m, err := NewMarks(0, 50.5, 100)
	require.NoError(t, err)
	assert.Equal(t, 150.5, m.Total())
	assert.InDelta(t, 50.1666, m.Average(), 0.001)

	for _, bad := range [][3]float64{
		{-0.01, 50, 50},
		{50, 100.01, 50},
		{50, 50, -1},
		{math.NaN(), 50, 50},
		{50, math.Inf(1), 50},
	} {
		_, err := NewMarks(bad[0], bad[1], bad[2])
		assert.ErrorIs(t, err, shared.ErrInvalidMarks, "marks %v", bad)
	}
}

func TestNewStudent(t *testing.T) {
	s, err := NewStudent("w1234567", "  Alice  ")
	require.NoError(t, err)
	assert.Equal(t, ID("w1234567"), s.ID)
	assert.Equal(t, "Alice", s.Name)
	assert.Equal(t, Marks{}, s.Marks)
	assert.Equal(t, GradeF, s.Grade())

	_, err = NewStudent("w123", "Alice")
	assert.ErrorIs(t, err, shared.ErrInvalidStudentID)

	for _, name := range []string{"", "   ", "\t\n", "Smith, John"} {
		_, err = NewStudent("w1234567", name)
		assert.ErrorIs(t, err, shared.ErrInvalidStudentName, "name %q", name)
	}
}

func TestStudent_SetMarksIsAtomic(t *testing.T) {
	s, err := NewStudent("w1234567", "Bob")
	require.NoError(t, err)

	require.NoError(t, s.SetMarks(Marks{Module1: 80, Module2: 70, Module3: 60}))
	assert.Equal(t, 210.0, s.Total())
	assert.Equal(t, 70.0, s.Average())
	assert.Equal(t, GradeA, s.Grade())

	err = s.SetMarks(Marks{Module1: 10, Module2: 101, Module3: 10})
	assert.ErrorIs(t, err, shared.ErrInvalidMarks)
	assert.Equal(t, Marks{Module1: 80, Module2: 70, Module3: 60}, s.Marks)
}

func TestStudent_Rename(t *testing.T) {
	s, err := NewStudent("w1234567", "Bob")
	require.NoError(t, err)

	require.NoError(t, s.Rename(" Robert "))
	assert.Equal(t, "Robert", s.Name)

	assert.ErrorIs(t, s.Rename("  "), shared.ErrInvalidStudentName)
	assert.Equal(t, "Robert", s.Name)
}

func TestStudent_Clone(t *testing.T) {
	s := &Student{ID: "w1234567", Name: "Bob", Marks: Marks{Module1: 1}}
	c := s.Clone()
	c.Marks.Module1 = 99
	c.Name = "Changed"

	assert.Equal(t, 1.0, s.Marks.Module1)
	assert.Equal(t, "Bob", s.Name)

	var nilStudent *Student
	assert.Nil(t, nilStudent.Clone())
}
