// Package roster contains the capacity-bounded, ordered collection of registered
// students. It owns every validation and query rule of the registry.
package roster

import (
	"sort"
	"sync"

	"golang.org/x/text/cases"

	"github.com/alem-hub/student-registry/internal/domain/shared"
	"github.com/alem-hub/student-registry/internal/domain/student"
)

// DefaultCapacity is the number of seats of a roster created with capacity <= 0.
const DefaultCapacity = 100

// ══════════════════════════════════════════════════════════════════════════════
// AGGREGATE: ROSTER
// ══════════════════════════════════════════════════════════════════════════════

// Roster is an ordered sequence of students keyed by unique ID.
// Insertion order is kept; deletion shifts later students down by one.
//
// All methods are safe for concurrent use. Mutations are serialised against each
// other and against snapshot reads, so a report never observes a half-applied change.
type Roster struct {
	mu       sync.RWMutex
	capacity int
	students []*student.Student
	index    map[student.ID]int
}

// New creates an empty roster with the given capacity.
func New(capacity int) *Roster {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Roster{
		capacity: capacity,
		students: make([]*student.Student, 0, min(capacity, DefaultCapacity)),
		index:    make(map[student.ID]int),
	}
}

// Capacity returns the maximum number of students.
func (r *Roster) Capacity() int {
	return r.capacity
}

// Count returns the number of registered students.
func (r *Roster) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students)
}

// AvailableSeats returns capacity minus count.
func (r *Roster) AvailableSeats() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.capacity - len(r.students)
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutations
// ─────────────────────────────────────────────────────────────────────────────

// Register appends a new student with zeroed marks.
// Checks run in order: capacity, ID format, duplicate ID, name.
func (r *Roster) Register(id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.students) >= r.capacity {
		return shared.ErrRosterFull
	}

	sid, err := student.ParseID(id)
	if err != nil {
		return err
	}

	if _, exists := r.index[sid]; exists {
		return shared.ErrDuplicateStudentID
	}

	s, err := student.NewStudent(sid, name)
	if err != nil {
		return err
	}

	r.append(s)
	return nil
}

// Delete removes the student with the given ID and compacts the sequence.
func (r *Roster) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[student.ID(id)]
	if !ok {
		return shared.ErrStudentNotFound
	}

	copy(r.students[pos:], r.students[pos+1:])
	last := len(r.students) - 1
	r.students[last] = nil
	r.students = r.students[:last]

	delete(r.index, student.ID(id))
	for i := pos; i < len(r.students); i++ {
		r.index[r.students[i].ID] = i
	}

	return nil
}

// UpdateName renames the student with the given ID.
func (r *Roster) UpdateName(id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.lookup(id)
	if !ok {
		return shared.ErrStudentNotFound
	}
	return s.Rename(name)
}

// UpdateMarks validates the three marks together and sets all of them or none.
func (r *Roster) UpdateMarks(id string, m1, m2, m3 float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.lookup(id)
	if !ok {
		return shared.ErrStudentNotFound
	}

	marks, err := student.NewMarks(m1, m2, m3)
	if err != nil {
		return err
	}
	return s.SetMarks(marks)
}

// ─────────────────────────────────────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────────────────────────────────────

// Find returns a copy of the student with exactly the given ID.
func (r *Roster) Find(id string) (*student.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.lookup(id)
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Snapshot returns copies of all students in roster order.
func (r *Roster) Snapshot() []*student.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*student.Student, len(r.students))
	for i, s := range r.students {
		out[i] = s.Clone()
	}
	return out
}

// ListSortedByName returns a snapshot ordered by case-insensitive name.
// Students with equal names keep their roster order.
func (r *Roster) ListSortedByName() []*student.Student {
	list := r.Snapshot()

	fold := cases.Fold()
	keys := make(map[*student.Student]string, len(list))
	for _, s := range list {
		keys[s] = fold.String(s.Name)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return keys[list[i]] < keys[list[j]]
	})
	return list
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers (caller holds the lock)
// ─────────────────────────────────────────────────────────────────────────────

func (r *Roster) lookup(id string) (*student.Student, bool) {
	pos, ok := r.index[student.ID(id)]
	if !ok {
		return nil, false
	}
	return r.students[pos], true
}

func (r *Roster) append(s *student.Student) {
	r.index[s.ID] = len(r.students)
	r.students = append(r.students, s)
}
