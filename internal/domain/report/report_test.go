package report

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

type staticSource []*student.Student

func (s staticSource) Snapshot() []*student.Student { return s }

func st(id, name string, m1, m2, m3 float64) *student.Student {
	return &student.Student{
		ID:    student.ID(id),
		Name:  name,
		Marks: student.Marks{Module1: m1, Module2: m2, Module3: m3},
	}
}

func TestSummarize_StrictPassMark(t *testing.T) {
	src := staticSource{
		st("w0000001", "exactly forty", 40, 40, 40),
		st("w0000002", "just above", 40.01, 41, 100),
		st("w0000003", "mixed", 90, 10, 40.5),
		st("w0000004", "zero", 0, 0, 0),
	}

	got := Summarize(src)
	assert.Equal(t, Summary{
		Total:         4,
		PassedModule1: 2,
		PassedModule2: 1,
		PassedModule3: 2,
		PassedAll:     1,
	}, got)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(staticSource{}))
}

func TestSummarize_GradeDStillFailsEveryModule(t *testing.T) {
	s := st("w0000001", "border", 40, 40, 40)
	assert.Equal(t, student.GradeD, s.Grade())

	got := Summarize(staticSource{s})
	assert.Equal(t, 0, got.PassedModule1)
	assert.Equal(t, 0, got.PassedAll)
}

func TestRank_OrdersByDescendingAverageWithStableTies(t *testing.T) {
	src := staticSource{
		st("w0000001", "fifty", 50, 50, 50),
		st("w0000002", "eighty first", 80, 80, 80),
		st("w0000003", "eighty second", 70, 80, 90),
		st("w0000004", "thirty", 30, 30, 30),
	}

	got := Rank(src)
	require.False(t, got.IsEmpty())

	order := make([]string, len(got.Rows))
	for i, row := range got.Rows {
		order[i] = row.ID
	}
	if diff := cmp.Diff([]string{"w0000002", "w0000003", "w0000001", "w0000004"}, order); diff != "" {
		t.Errorf("rank order (-want +got):\n%s", diff)
	}

	first := got.Rows[0]
	assert.Equal(t, Row{
		ID:      "w0000002",
		Name:    "eighty first",
		Mark1:   80,
		Mark2:   80,
		Mark3:   80,
		Total:   240,
		Average: 80,
		Grade:   student.GradeA,
	}, first)
	assert.Equal(t, student.GradeF, got.Rows[3].Grade)
}

func TestRank_Empty(t *testing.T) {
	got := Rank(staticSource{})
	assert.True(t, got.IsEmpty())
	assert.Nil(t, got.Rows)
}

func TestRank_DoesNotMutateRoster(t *testing.T) {
	r := roster.New(5)
	require.NoError(t, r.Register("w0000001", "Low"))
	require.NoError(t, r.Register("w0000002", "High"))
	require.NoError(t, r.UpdateMarks("w0000002", 90, 90, 90))

	got := Rank(r)
	assert.Equal(t, "w0000002", got.Rows[0].ID)

	snapshot := r.Snapshot()
	assert.Equal(t, "w0000001", snapshot[0].ID.String())
	assert.Equal(t, 2, Summarize(r).Total)
}

func TestRow_JSONGradeIsLetter(t *testing.T) {
	data, err := json.Marshal(Row{ID: "w0000001", Grade: student.GradeB})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"grade":"B"`)
}
