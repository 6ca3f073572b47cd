package query

import (
	"context"

	"github.com/alem-hub/student-registry/internal/domain/report"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPORT QUERIES
// Both reports read one consistent snapshot of the source.
// ══════════════════════════════════════════════════════════════════════════════

// SummaryReportQuery asks for module pass counts.
type SummaryReportQuery struct{}

// SummaryReportHandler handles SummaryReportQuery.
type SummaryReportHandler struct {
	source report.Source
}

// NewSummaryReportHandler creates a new SummaryReportHandler.
func NewSummaryReportHandler(src report.Source) *SummaryReportHandler {
	return &SummaryReportHandler{source: src}
}

// Handle executes the query.
func (h *SummaryReportHandler) Handle(_ context.Context, _ SummaryReportQuery) (report.Summary, error) {
	return report.Summarize(h.source), nil
}

// CompleteReportQuery asks for the ranked per-student report.
type CompleteReportQuery struct{}

// CompleteReportHandler handles CompleteReportQuery.
type CompleteReportHandler struct {
	source report.Source
}

// NewCompleteReportHandler creates a new CompleteReportHandler.
func NewCompleteReportHandler(src report.Source) *CompleteReportHandler {
	return &CompleteReportHandler{source: src}
}

// Handle executes the query. Check Complete.IsEmpty for an empty roster.
func (h *CompleteReportHandler) Handle(_ context.Context, _ CompleteReportQuery) (report.Complete, error) {
	return report.Rank(h.source), nil
}
