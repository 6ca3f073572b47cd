package roster

import (
	"math"
	"strconv"
	"strings"

	"github.com/alem-hub/student-registry/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// BATCH LOAD
// ══════════════════════════════════════════════════════════════════════════════

// Record is one raw (id, name, mark1, mark2, mark3) tuple read from a store.
// Marks are kept as text so that parse failures can be reported per record.
type Record struct {
	ID    string
	Name  string
	Mark1 string
	Mark2 string
	Mark3 string
}

// SkipReason explains why a record was not loaded.
type SkipReason string

const (
	SkipInvalidID    SkipReason = "invalid_id"
	SkipInvalidMarks SkipReason = "invalid_marks"
	SkipDuplicateID  SkipReason = "duplicate_id"
	SkipInvalidName  SkipReason = "invalid_name"
)

// Skip is a record that was rejected during Load.
type Skip struct {
	Record Record
	Reason SkipReason
}

// LoadSummary reports the outcome of a batch load.
type LoadSummary struct {
	// Loaded is the number of inserted students.
	Loaded int

	// Skipped lists rejected records in input order.
	Skipped []Skip

	// Ignored is the number of trailing records not examined because the
	// roster reached capacity.
	Ignored int
}

// Load inserts records one by one. Every record is validated independently and a
// malformed one never stops the batch. Loading ends early once the roster is full.
func (r *Roster) Load(records []Record) LoadSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	var summary LoadSummary
	for i, rec := range records {
		if len(r.students) >= r.capacity {
			summary.Ignored = len(records) - i
			break
		}

		s, reason, ok := r.decode(rec)
		if !ok {
			summary.Skipped = append(summary.Skipped, Skip{Record: rec, Reason: reason})
			continue
		}

		r.append(s)
		summary.Loaded++
	}

	return summary
}

// decode turns a raw record into a student, or reports why it cannot be loaded.
// Loaded marks are only required to be finite numbers; the [0,100] range is
// enforced at interactive entry.
func (r *Roster) decode(rec Record) (*student.Student, SkipReason, bool) {
	id := student.ID(rec.ID)
	if !id.IsValid() {
		return nil, SkipInvalidID, false
	}

	var marks [3]float64
	for i, raw := range [3]string{rec.Mark1, rec.Mark2, rec.Mark3} {
		v, err := parseMark(raw)
		if err != nil {
			return nil, SkipInvalidMarks, false
		}
		marks[i] = v
	}

	if _, exists := r.index[id]; exists {
		return nil, SkipDuplicateID, false
	}

	s, err := student.NewStudent(id, rec.Name)
	if err != nil {
		return nil, SkipInvalidName, false
	}
	s.Marks = student.Marks{Module1: marks[0], Module2: marks[1], Module3: marks[2]}

	return s, "", true
}

func parseMark(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
