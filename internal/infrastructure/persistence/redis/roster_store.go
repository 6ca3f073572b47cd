package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/flatfile"
)

// Meta hash fields.
const (
	fieldSnapshotID = "snapshot_id"
	fieldCount      = "count"
	fieldSavedAt    = "saved_at"
)

// releaseLock deletes the lock only while it still holds our token.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Snapshot describes the last store operation.
type Snapshot struct {
	ID      uuid.UUID
	Count   int
	SavedAt time.Time
}

// RosterStore implements roster.Store on Redis.
type RosterStore struct {
	client redis.UniversalClient
	keys   Keys
}

// NewRosterStore creates a RosterStore writing under keyPrefix.
func NewRosterStore(client redis.UniversalClient, keyPrefix string) *RosterStore {
	return &RosterStore{client: client, keys: NewKeys(keyPrefix)}
}

// Name implements roster.Store.
func (s *RosterStore) Name() string {
	return "redis"
}

// Save replaces the stored list and metadata in one MULTI/EXEC block.
// Concurrent sessions are serialized by a short-lived lock.
func (s *RosterStore) Save(ctx context.Context, students []*student.Student) error {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, s.keys.Lock(), token, TTLLock).Result()
	if err != nil {
		return shared.WrapError("store", "Save", shared.ErrIO, "error writing to redis", err)
	}
	if !ok {
		return shared.WrapError("store", "Save", shared.ErrIO, "error writing to redis", ErrLocked)
	}
	defer releaseLock.Run(context.WithoutCancel(ctx), s.client, []string{s.keys.Lock()}, token)

	snapshot := Snapshot{ID: uuid.New(), Count: len(students), SavedAt: time.Now().UTC()}
	lines := encodeLines(students)

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.keys.Roster())
		if len(lines) > 0 {
			pipe.RPush(ctx, s.keys.Roster(), lines...)
		}
		pipe.HSet(ctx, s.keys.Meta(), metaFields(snapshot))
		return nil
	})
	if err != nil {
		return shared.WrapError("store", "Save", shared.ErrIO, "error writing to redis", err)
	}

	return nil
}

// Load reads the stored list back in order.
// Missing metadata means nothing was ever stored and yields shared.ErrNoData.
func (s *RosterStore) Load(ctx context.Context) (*roster.Dump, error) {
	if _, err := s.LastSnapshot(ctx); err != nil {
		return nil, err
	}

	lines, err := s.client.LRange(ctx, s.keys.Roster(), 0, -1).Result()
	if err != nil {
		return nil, shared.WrapError("store", "Load", shared.ErrIO, "error reading redis", err)
	}

	dump := &roster.Dump{}
	for i, line := range lines {
		flatfile.DecodeInto(dump, i+1, line)
	}
	return dump, nil
}

// LastSnapshot returns the metadata of the last store operation.
func (s *RosterStore) LastSnapshot(ctx context.Context) (Snapshot, error) {
	fields, err := s.client.HGetAll(ctx, s.keys.Meta()).Result()
	if err != nil {
		return Snapshot{}, shared.WrapError("store", "Load", shared.ErrIO, "error reading redis", err)
	}
	if len(fields) == 0 {
		return Snapshot{}, shared.ErrNoData
	}

	snap, err := parseMeta(fields)
	if err != nil {
		return Snapshot{}, shared.WrapError("store", "Load", shared.ErrIO, "corrupt roster metadata", err)
	}
	return snap, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func encodeLines(students []*student.Student) []any {
	lines := make([]any, len(students))
	for i, st := range students {
		lines[i] = flatfile.EncodeLine(st)
	}
	return lines
}

func metaFields(snap Snapshot) map[string]any {
	return map[string]any{
		fieldSnapshotID: snap.ID.String(),
		fieldCount:      snap.Count,
		fieldSavedAt:    snap.SavedAt.Format(time.RFC3339Nano),
	}
}

func parseMeta(fields map[string]string) (Snapshot, error) {
	id, err := uuid.Parse(fields[fieldSnapshotID])
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", fieldSnapshotID, err)
	}
	count, err := strconv.Atoi(fields[fieldCount])
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", fieldCount, err)
	}
	savedAt, err := time.Parse(time.RFC3339Nano, fields[fieldSavedAt])
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", fieldSavedAt, err)
	}
	return Snapshot{ID: id, Count: count, SavedAt: savedAt}, nil
}
