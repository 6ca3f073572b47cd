// Package boltdb stores the roster in an embedded bbolt database.
// Each student is kept as one encoded line under a big-endian sequence key, so
// a cursor walk returns students in roster order.
package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
	"github.com/alem-hub/student-registry/internal/infrastructure/persistence/flatfile"
)

const (
	bucketStudents = "students"
	bucketMeta     = "meta"
)

var keySavedAt = []byte("saved_at")

// DefaultPath is the database file used when none is configured.
const DefaultPath = "registry.db"

// Store implements roster.Store on a bbolt database file.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}

	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, shared.WrapError("store", "Open", shared.ErrIO, "cannot open database", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketStudents, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, shared.WrapError("store", "Open", shared.ErrIO, "cannot initialize database", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name implements roster.Store.
func (s *Store) Name() string {
	return "bolt"
}

// Save replaces the stored roster in a single transaction.
func (s *Store) Save(ctx context.Context, students []*student.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketStudents)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket([]byte(bucketStudents))
		if err != nil {
			return err
		}

		for _, st := range students {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			if err := b.Put(marshalSeq(seq), []byte(flatfile.EncodeLine(st))); err != nil {
				return err
			}
		}

		meta := tx.Bucket([]byte(bucketMeta))
		return meta.Put(keySavedAt, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		return shared.WrapError("store", "Save", shared.ErrIO, "error writing to database", err)
	}

	return nil
}

// Load reads the stored roster back in order.
// A database that was never saved to yields shared.ErrNoData.
func (s *Store) Load(ctx context.Context) (*roster.Dump, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dump *roster.Dump
	err := s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketMeta)).Get(keySavedAt) == nil {
			return shared.ErrNoData
		}

		dump = &roster.Dump{}
		b := tx.Bucket([]byte(bucketStudents))
		c := b.Cursor()
		line := 0
		for k, v := c.First(); k != nil; k, v = c.Next() {
			line++
			flatfile.DecodeInto(dump, line, string(v))
		}
		return nil
	})
	if err == shared.ErrNoData {
		return nil, err
	}
	if err != nil {
		return nil, shared.WrapError("store", "Load", shared.ErrIO, "error reading database", err)
	}

	return dump, nil
}

// SavedAt returns when the roster was last saved.
func (s *Store) SavedAt() (time.Time, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketMeta)).Get(keySavedAt); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	if raw == nil {
		return time.Time{}, shared.ErrNoData
	}

	t, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("boltdb: bad saved_at value %q: %w", raw, err)
	}
	return t, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}
