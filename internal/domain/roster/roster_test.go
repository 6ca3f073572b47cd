package roster

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

func ids(list []*student.Student) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID.String()
	}
	return out
}

func names(list []*student.Student) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Name
	}
	return out
}

func seqID(n int) string {
	return fmt.Sprintf("w%07d", n)
}

func mustRegister(t *testing.T, r *Roster, id, name string) {
	t.Helper()
	require.NoError(t, r.Register(id, name))
}

func TestNew_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Capacity())
	assert.Equal(t, DefaultCapacity, New(-5).Capacity())
	assert.Equal(t, 3, New(3).Capacity())
}

func TestRoster_AvailableSeats(t *testing.T) {
	r := New(5)
	assert.Equal(t, 5, r.AvailableSeats())

	mustRegister(t, r, "w0000001", "A")
	mustRegister(t, r, "w0000002", "B")
	assert.Equal(t, 3, r.AvailableSeats())
	assert.Equal(t, 2, r.Count())
}

func TestRoster_Register(t *testing.T) {
	r := New(10)
	mustRegister(t, r, "w1234567", "Alice")

	s, ok := r.Find("w1234567")
	require.True(t, ok)
	assert.Equal(t, "Alice", s.Name)
	assert.Equal(t, student.Marks{}, s.Marks)

	tests := []struct {
		name    string
		id      string
		stName  string
		wantErr error
	}{
		{"duplicate id", "w1234567", "Other", shared.ErrDuplicateStudentID},
		{"wrong prefix", "x1234567", "Bob", shared.ErrInvalidStudentID},
		{"too short", "w123456", "Bob", shared.ErrInvalidStudentID},
		{"non digit", "w12a4567", "Bob", shared.ErrInvalidStudentID},
		{"blank name", "w7654321", "   ", shared.ErrInvalidStudentName},
		{"empty name", "w7654321", "", shared.ErrInvalidStudentName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.id, tt.stName)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, r.Count(), "no partial record may be inserted")
		})
	}

	assert.True(t, shared.IsAlreadyExists(r.Register("w1234567", "Again")))
}

func TestRoster_RegisterUpToCapacity(t *testing.T) {
	r := New(DefaultCapacity)
	for i := 1; i <= DefaultCapacity; i++ {
		require.NoError(t, r.Register(seqID(i), "Student"))
	}
	assert.Equal(t, 0, r.AvailableSeats())

	err := r.Register(seqID(DefaultCapacity+1), "Late")
	assert.ErrorIs(t, err, shared.ErrRosterFull)
	assert.True(t, shared.IsCapacity(err))
	assert.Equal(t, DefaultCapacity, r.Count())
}

func TestRoster_RegisterFullCheckedBeforeID(t *testing.T) {
	r := New(1)
	mustRegister(t, r, "w0000001", "A")

	assert.ErrorIs(t, r.Register("bogus", "B"), shared.ErrRosterFull)
}

func TestRoster_Delete(t *testing.T) {
	r := New(10)
	for i := 1; i <= 5; i++ {
		mustRegister(t, r, seqID(i), fmt.Sprintf("S%d", i))
	}

	require.NoError(t, r.Delete(seqID(3)))
	assert.Equal(t, 4, r.Count())
	if diff := cmp.Diff([]string{seqID(1), seqID(2), seqID(4), seqID(5)}, ids(r.Snapshot())); diff != "" {
		t.Errorf("order after delete (-want +got):\n%s", diff)
	}

	// index stays consistent after the shift
	s, ok := r.Find(seqID(5))
	require.True(t, ok)
	assert.Equal(t, "S5", s.Name)
	require.NoError(t, r.UpdateName(seqID(4), "Four"))
	s, _ = r.Find(seqID(4))
	assert.Equal(t, "Four", s.Name)

	require.NoError(t, r.Delete(seqID(1)))
	require.NoError(t, r.Delete(seqID(5)))
	assert.Equal(t, []string{seqID(2), seqID(4)}, ids(r.Snapshot()))

	// freed seat is reusable
	mustRegister(t, r, seqID(3), "S3 again")
	assert.Equal(t, []string{seqID(2), seqID(4), seqID(3)}, ids(r.Snapshot()))
}

func TestRoster_DeleteNotFoundLeavesRosterUnchanged(t *testing.T) {
	r := New(10)
	mustRegister(t, r, "w0000001", "A")
	mustRegister(t, r, "w0000002", "B")
	before := ids(r.Snapshot())

	err := r.Delete("w9999999")
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)
	assert.True(t, shared.IsNotFound(err))
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, before, ids(r.Snapshot()))
}

func TestRoster_FindIsExactAndDetached(t *testing.T) {
	r := New(10)
	mustRegister(t, r, "w1234567", "Alice")

	_, ok := r.Find("W1234567")
	assert.False(t, ok)
	_, ok = r.Find("w1234567 ")
	assert.False(t, ok)

	s, ok := r.Find("w1234567")
	require.True(t, ok)
	s.Name = "Mallory"

	again, _ := r.Find("w1234567")
	assert.Equal(t, "Alice", again.Name)
}

func TestRoster_UpdateName(t *testing.T) {
	r := New(10)
	mustRegister(t, r, "w1234567", "Alice")

	assert.ErrorIs(t, r.UpdateName("w0000000", "Bob"), shared.ErrStudentNotFound)
	assert.ErrorIs(t, r.UpdateName("w1234567", " "), shared.ErrInvalidStudentName)

	require.NoError(t, r.UpdateName("w1234567", "Alicia"))
	s, _ := r.Find("w1234567")
	assert.Equal(t, "Alicia", s.Name)
}

func TestRoster_UpdateMarks(t *testing.T) {
	r := New(10)
	mustRegister(t, r, "w1234567", "Alice")

	require.NoError(t, r.UpdateMarks("w1234567", 0, 55.5, 100))
	s, _ := r.Find("w1234567")
	assert.Equal(t, student.Marks{Module1: 0, Module2: 55.5, Module3: 100}, s.Marks)

	err := r.UpdateMarks("w1234567", 90, 90, 100.5)
	assert.ErrorIs(t, err, shared.ErrInvalidMarks)
	s, _ = r.Find("w1234567")
	assert.Equal(t, student.Marks{Module1: 0, Module2: 55.5, Module3: 100}, s.Marks, "update must be all or nothing")

	assert.ErrorIs(t, r.UpdateMarks("w7777777", 1, 2, 3), shared.ErrStudentNotFound)
}

func TestRoster_ListSortedByName(t *testing.T) {
	r := New(10)
	mustRegister(t, r, "w0000001", "Bob")
	mustRegister(t, r, "w0000002", "alice")
	mustRegister(t, r, "w0000003", "Carol")

	assert.Equal(t, []string{"alice", "Bob", "Carol"}, names(r.ListSortedByName()))

	// roster order is untouched
	assert.Equal(t, []string{"Bob", "alice", "Carol"}, names(r.Snapshot()))
}

func TestRoster_ListSortedByNameIsStable(t *testing.T) {
	r := New(10)
	mustRegister(t, r, "w0000001", "sam")
	mustRegister(t, r, "w0000002", "Adam")
	mustRegister(t, r, "w0000003", "SAM")
	mustRegister(t, r, "w0000004", "Sam")

	want := []string{"w0000002", "w0000001", "w0000003", "w0000004"}
	if diff := cmp.Diff(want, ids(r.ListSortedByName())); diff != "" {
		t.Errorf("sorted ids (-want +got):\n%s", diff)
	}
}

func TestRoster_ListSortedByNameEmpty(t *testing.T) {
	assert.Empty(t, New(3).ListSortedByName())
}
