package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/flatfile"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// memStore is an in-memory roster.Store.
type memStore struct {
	dump    *roster.Dump
	saved   []*student.Student
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Name() string { return "mem" }

func (m *memStore) Save(_ context.Context, students []*student.Student) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = students
	return nil
}

func (m *memStore) Load(context.Context) (*roster.Dump, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.dump == nil {
		return nil, shared.ErrNoData
	}
	return m.dump, nil
}

func TestRegisterStudentHandler(t *testing.T) {
	ctx := context.Background()
	r := roster.New(2)
	h := NewRegisterStudentHandler(r, discard)

	res, err := h.Handle(ctx, RegisterStudentCommand{StudentID: "w0000001", Name: "  Ann  "})
	require.NoError(t, err)
	assert.Equal(t, "Ann", res.Student.Name)
	assert.Equal(t, 1, res.SeatsLeft)

	_, err = h.Handle(ctx, RegisterStudentCommand{StudentID: "w0000001", Name: "Again"})
	assert.ErrorIs(t, err, shared.ErrDuplicateStudentID)

	_, err = h.Handle(ctx, RegisterStudentCommand{StudentID: "W0000002", Name: "Ben"})
	assert.ErrorIs(t, err, shared.ErrInvalidStudentID)

	_, err = h.Handle(ctx, RegisterStudentCommand{StudentID: "w0000002", Name: "   "})
	assert.ErrorIs(t, err, shared.ErrInvalidStudentName)

	_, err = h.Handle(ctx, RegisterStudentCommand{StudentID: "w0000002", Name: "Ben"})
	require.NoError(t, err)

	_, err = h.Handle(ctx, RegisterStudentCommand{StudentID: "bad", Name: "Cid"})
	assert.ErrorIs(t, err, shared.ErrRosterFull, "capacity is checked before the ID")
}

func TestRegisterStudentHandler_CheckID(t *testing.T) {
	r := roster.New(1)
	h := NewRegisterStudentHandler(r, nil)

	assert.NoError(t, h.CheckID("w0000001"))
	assert.ErrorIs(t, h.CheckID("w000001"), shared.ErrInvalidStudentID)

	require.NoError(t, r.Register("w0000001", "Ann"))
	assert.ErrorIs(t, h.CheckID("w0000002"), shared.ErrRosterFull)

	r2 := roster.New(5)
	require.NoError(t, r2.Register("w0000004", "Dee"))
	assert.ErrorIs(t, NewRegisterStudentHandler(r2, nil).CheckID("w0000004"), shared.ErrDuplicateStudentID)
	assert.Equal(t, 1, r2.Count(), "CheckID must not change the roster")
}

func TestDeleteStudentHandler(t *testing.T) {
	ctx := context.Background()
	r := roster.New(5)
	require.NoError(t, r.Register("w0000001", "Ann"))
	require.NoError(t, r.Register("w0000002", "Ben"))
	h := NewDeleteStudentHandler(r, discard)

	res, err := h.Handle(ctx, DeleteStudentCommand{StudentID: "w0000001"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.SeatsLeft)

	_, err = h.Handle(ctx, DeleteStudentCommand{StudentID: "w0000001"})
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)
	assert.Equal(t, 1, r.Count())
}

func TestUpdateHandlers(t *testing.T) {
	ctx := context.Background()
	r := roster.New(5)
	require.NoError(t, r.Register("w0000001", "Ann"))

	renamed, err := NewUpdateNameHandler(r, discard).Handle(ctx, UpdateNameCommand{StudentID: "w0000001", Name: "Anna"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", renamed.Name)

	_, err = NewUpdateNameHandler(r, discard).Handle(ctx, UpdateNameCommand{StudentID: "w0000009", Name: "X"})
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)

	marks := NewUpdateMarksHandler(r, discard)
	updated, err := marks.Handle(ctx, UpdateMarksCommand{StudentID: "w0000001", Marks: [3]float64{70, 80, 90}})
	require.NoError(t, err)
	assert.InDelta(t, 80.0, updated.Average(), 1e-9)
	assert.Equal(t, student.GradeA, updated.Grade())

	_, err = marks.Handle(ctx, UpdateMarksCommand{StudentID: "w0000001", Marks: [3]float64{50, 101, 50}})
	assert.ErrorIs(t, err, shared.ErrInvalidMarks)
	current, _ := r.Find("w0000001")
	assert.Equal(t, student.Marks{Module1: 70, Module2: 80, Module3: 90}, current.Marks, "rejected marks change nothing")

	_, err = marks.Handle(ctx, UpdateMarksCommand{StudentID: "w0000009", Marks: [3]float64{500, 0, 0}})
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)
}

func TestStoreRosterHandler(t *testing.T) {
	ctx := context.Background()
	r := roster.New(5)
	store := &memStore{}
	h := NewStoreRosterHandler(r, store, discard)

	res, err := h.Handle(ctx, StoreRosterCommand{})
	require.NoError(t, err)
	assert.True(t, res.NothingToStore)
	assert.Zero(t, store.saves, "an empty roster never touches the store")

	require.NoError(t, r.Register("w0000001", "Ann"))
	require.NoError(t, r.Register("w0000002", "Ben"))
	res, err = h.Handle(ctx, StoreRosterCommand{})
	require.NoError(t, err)
	assert.False(t, res.NothingToStore)
	assert.Equal(t, 2, res.Stored)
	assert.Equal(t, "mem", res.Backend)
	require.Len(t, store.saved, 2)
	assert.Equal(t, student.ID("w0000001"), store.saved[0].ID)

	store.saveErr = shared.WrapError("store", "Save", shared.ErrIO, "error writing to file", errors.New("disk full"))
	_, err = h.Handle(ctx, StoreRosterCommand{})
	assert.True(t, shared.IsIO(err))
}

func TestLoadRosterHandler_NoData(t *testing.T) {
	r := roster.New(5)
	res, err := NewLoadRosterHandler(r, &memStore{}, discard).Handle(context.Background(), LoadRosterCommand{})
	require.NoError(t, err)
	assert.True(t, res.NoData)
	assert.Zero(t, r.Count())
}

func TestLoadRosterHandler_Diagnostics(t *testing.T) {
	store := &memStore{dump: &roster.Dump{
		Records: []roster.Record{
			{ID: "w0000001", Name: "Ann", Mark1: "50", Mark2: "60", Mark3: "70"},
			{ID: "x0000002", Name: "Ben", Mark1: "1", Mark2: "2", Mark3: "3"},
			{ID: "w0000003", Name: "Cid", Mark1: "1", Mark2: "two", Mark3: "3"},
			{ID: "w0000004", Name: "Dee", Mark1: "1", Mark2: "2", Mark3: "3"},
		},
		Rejected: []roster.RejectedLine{{Line: 3, Text: "w0000009,Eve,1", Reason: "expected 5 fields, got 3"}},
	}}
	r := roster.New(5)
	require.NoError(t, r.Register("w0000004", "Dee"))

	res, err := NewLoadRosterHandler(r, store, discard).Handle(context.Background(), LoadRosterCommand{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Loaded)
	assert.Equal(t, 2, r.Count())
	require.Len(t, res.Diagnostics, 4)
	assert.Equal(t, Diagnostic{Kind: DiagnosticMalformed, Line: 3, Reason: "expected 5 fields, got 3", Text: "w0000009,Eve,1"}, res.Diagnostics[0])
	assert.Equal(t, []string{"invalid_id", "invalid_marks", "duplicate_id"}, []string{
		res.Diagnostics[1].Reason, res.Diagnostics[2].Reason, res.Diagnostics[3].Reason,
	})
	assert.Equal(t, "w0000003", res.Diagnostics[2].StudentID)
}

func TestLoadRosterHandler_StoreFailure(t *testing.T) {
	boom := shared.WrapError("store", "Load", shared.ErrIO, "error occurred while loading file", errors.New("EIO"))
	_, err := NewLoadRosterHandler(roster.New(5), &memStore{loadErr: boom}, discard).
		Handle(context.Background(), LoadRosterCommand{})
	assert.True(t, shared.IsIO(err))
}

func TestStoreThenLoad_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := flatfile.NewStore(filepath.Join(t.TempDir(), "students.txt"))

	src := roster.New(10)
	for i := 1; i <= 3; i++ {
		require.NoError(t, src.Register(fmt.Sprintf("w%07d", i), fmt.Sprintf("Student %d", i)))
	}
	require.NoError(t, src.UpdateMarks("w0000002", 12.5, 99, 40))

	_, err := NewStoreRosterHandler(src, store, discard).Handle(ctx, StoreRosterCommand{})
	require.NoError(t, err)

	dst := roster.New(10)
	res, err := NewLoadRosterHandler(dst, store, discard).Handle(ctx, LoadRosterCommand{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Loaded)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}
