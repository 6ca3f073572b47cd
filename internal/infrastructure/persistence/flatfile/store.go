package flatfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// DefaultPath is the file name used when none is configured.
const DefaultPath = "student_details.txt"

// Store implements roster.Store on a single text file.
type Store struct {
	path string
}

// NewStore creates a Store writing to path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Name implements roster.Store.
func (s *Store) Name() string {
	return "file"
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Save overwrites the file with students, in order.
// The content is written to a temporary file first and renamed into place.
func (s *Store) Save(ctx context.Context, students []*student.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return shared.WrapError("store", "Save", shared.ErrIO, "error writing to file", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, students); err != nil {
		tmp.Close()
		return shared.WrapError("store", "Save", shared.ErrIO, "error writing to file", err)
	}
	if err := tmp.Close(); err != nil {
		return shared.WrapError("store", "Save", shared.ErrIO, "error writing to file", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return shared.WrapError("store", "Save", shared.ErrIO, "error writing to file", err)
	}

	return nil
}

// Load reads the file. A missing file yields shared.ErrNoData.
func (s *Store) Load(ctx context.Context) (*roster.Dump, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, shared.ErrNoData
		}
		return nil, shared.WrapError("store", "Load", shared.ErrIO, "error occurred while loading file", err)
	}
	defer f.Close()

	dump, err := Decode(f)
	if err != nil {
		return nil, shared.WrapError("store", "Load", shared.ErrIO, "error occurred while loading file", err)
	}
	return dump, nil
}
