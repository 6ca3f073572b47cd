// Package report computes read-only statistics over a roster snapshot.
// Functions here never mutate the students they receive.
package report

import (
	"sort"

	"github.com/alem-hub/student-registry/internal/domain/student"
)

// PassMark is the threshold a module mark must strictly exceed to count as
// passed in the summary. Grade D starts at an average of exactly 40, so a
// student can hold a D while failing every module here.
const PassMark = 40.0

// Source provides a consistent snapshot of students in roster order.
type Source interface {
	Snapshot() []*student.Student
}

// ══════════════════════════════════════════════════════════════════════════════
// SUMMARY REPORT
// ══════════════════════════════════════════════════════════════════════════════

// Summary holds pass counts per module and overall.
type Summary struct {
	Total         int `json:"total"`
	PassedModule1 int `json:"passed_module_1"`
	PassedModule2 int `json:"passed_module_2"`
	PassedModule3 int `json:"passed_module_3"`
	PassedAll     int `json:"passed_all"`
}

// Summarize counts the students of src scoring more than PassMark.
func Summarize(src Source) Summary {
	students := src.Snapshot()
	summary := Summary{Total: len(students)}

	for _, s := range students {
		p1 := s.Marks.Module1 > PassMark
		p2 := s.Marks.Module2 > PassMark
		p3 := s.Marks.Module3 > PassMark

		if p1 {
			summary.PassedModule1++
		}
		if p2 {
			summary.PassedModule2++
		}
		if p3 {
			summary.PassedModule3++
		}
		if p1 && p2 && p3 {
			summary.PassedAll++
		}
	}

	return summary
}

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE REPORT
// ══════════════════════════════════════════════════════════════════════════════

// Row is one line of the complete report.
type Row struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Mark1   float64       `json:"mark_1"`
	Mark2   float64       `json:"mark_2"`
	Mark3   float64       `json:"mark_3"`
	Total   float64       `json:"total"`
	Average float64       `json:"average"`
	Grade   student.Grade `json:"grade"`
}

// Complete is the per-student ranked detail report.
type Complete struct {
	Rows []Row `json:"rows"`
}

// IsEmpty reports whether there were no students to rank.
func (c Complete) IsEmpty() bool {
	return len(c.Rows) == 0
}

// Rank builds the complete report ordered by descending average.
// Equal averages keep their roster order.
func Rank(src Source) Complete {
	students := src.Snapshot()
	if len(students) == 0 {
		return Complete{}
	}

	rows := make([]Row, len(students))
	for i, s := range students {
		rows[i] = Row{
			ID:      s.ID.String(),
			Name:    s.Name,
			Mark1:   s.Marks.Module1,
			Mark2:   s.Marks.Module2,
			Mark3:   s.Marks.Module3,
			Total:   s.Total(),
			Average: s.Average(),
			Grade:   s.Grade(),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Average > rows[j].Average
	})

	return Complete{Rows: rows}
}
