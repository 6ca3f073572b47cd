package redis

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-registry/internal/domain/student"
)

func TestKeys(t *testing.T) {
	k := NewKeys("")
	assert.Equal(t, "registry:roster", k.Roster())
	assert.Equal(t, "registry:meta", k.Meta())
	assert.Equal(t, "registry:lock:roster", k.Lock())

	k = NewKeys("test:")
	assert.Equal(t, "test:roster", k.Roster())
}

func TestEncodeLines(t *testing.T) {
	lines := encodeLines([]*student.Student{
		{ID: "w0000001", Name: "Ann", Marks: student.Marks{Module1: 1.5}},
		{ID: "w0000002", Name: "Ben"},
	})
	assert.Equal(t, []any{"w0000001,Ann,1.5,0,0", "w0000002,Ben,0,0,0"}, lines)
	assert.Empty(t, encodeLines(nil))
}

func TestMetaRoundTrip(t *testing.T) {
	snap := Snapshot{
		ID:      uuid.New(),
		Count:   7,
		SavedAt: time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC),
	}

	fields := make(map[string]string)
	for k, v := range metaFields(snap) {
		switch v := v.(type) {
		case string:
			fields[k] = v
		case int:
			fields[k] = strconv.Itoa(v)
		}
	}

	got, err := parseMeta(fields)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.Count, got.Count)
	assert.True(t, snap.SavedAt.Equal(got.SavedAt))
}

func TestParseMeta_Corrupt(t *testing.T) {
	_, err := parseMeta(map[string]string{fieldSnapshotID: "nope"})
	assert.Error(t, err)

	_, err = parseMeta(map[string]string{
		fieldSnapshotID: uuid.NewString(),
		fieldCount:      "many",
	})
	assert.Error(t, err)
}
