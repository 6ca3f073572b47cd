package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alem-hub/student-registry/internal/domain/roster"
	"github.com/alem-hub/student-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOAD ROSTER COMMAND
// Reads the stored roster and merges it into the current one. Every stored
// entry is validated on its own; bad entries are reported, never fatal.
// ══════════════════════════════════════════════════════════════════════════════

// LoadRosterCommand has no parameters; the whole store is read.
type LoadRosterCommand struct{}

// DiagnosticKind classifies a load diagnostic.
type DiagnosticKind string

const (
	// DiagnosticMalformed is a stored line that does not have five fields.
	DiagnosticMalformed DiagnosticKind = "malformed_line"

	// DiagnosticSkipped is a well-formed record the roster refused.
	DiagnosticSkipped DiagnosticKind = "skipped_record"
)

// Diagnostic describes one stored entry that was not loaded.
type Diagnostic struct {
	Kind DiagnosticKind

	// Line is the 1-based position in the store, set for malformed lines.
	Line int

	// StudentID is the raw ID of a skipped record.
	StudentID string

	// Reason is roster.SkipReason for skipped records and the parse error for
	// malformed lines.
	Reason string

	// Text is the offending raw line, set for malformed lines.
	Text string
}

// LoadRosterResult contains the result of a load operation.
type LoadRosterResult struct {
	// NoData is set when the store holds nothing; the roster is unchanged.
	NoData bool

	// Loaded is the number of students added to the roster.
	Loaded int

	// Ignored is the number of records not examined because the roster filled up.
	Ignored int

	// Diagnostics lists malformed lines first, then skipped records, each in
	// store order.
	Diagnostics []Diagnostic

	// Backend is the name of the store that was read.
	Backend string
}

// LoadRosterHandler handles the LoadRosterCommand.
type LoadRosterHandler struct {
	roster *roster.Roster
	store  roster.Store
	logger *slog.Logger
}

// NewLoadRosterHandler creates a new LoadRosterHandler.
func NewLoadRosterHandler(r *roster.Roster, store roster.Store, logger *slog.Logger) *LoadRosterHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadRosterHandler{roster: r, store: store, logger: logger}
}

// Backend returns the name of the store the handler uses.
func (h *LoadRosterHandler) Backend() string {
	return h.store.Name()
}

// Handle executes the load roster command.
func (h *LoadRosterHandler) Handle(ctx context.Context, _ LoadRosterCommand) (*LoadRosterResult, error) {
	dump, err := h.store.Load(ctx)
	if errors.Is(err, shared.ErrNoData) {
		return &LoadRosterResult{NoData: true, Backend: h.store.Name()}, nil
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load roster",
			"backend", h.store.Name(),
			"error", err,
		)
		return nil, fmt.Errorf("load_roster: %w", err)
	}

	summary := h.roster.Load(dump.Records)

	result := &LoadRosterResult{
		Loaded:      summary.Loaded,
		Ignored:     summary.Ignored,
		Diagnostics: diagnostics(dump, summary),
		Backend:     h.store.Name(),
	}

	for _, d := range result.Diagnostics {
		h.logger.WarnContext(ctx, "entry not loaded",
			"kind", d.Kind,
			"line", d.Line,
			"student_id", d.StudentID,
			"reason", d.Reason,
		)
	}
	h.logger.InfoContext(ctx, "roster loaded",
		"backend", h.store.Name(),
		"loaded", result.Loaded,
		"not_loaded", len(result.Diagnostics),
		"ignored", result.Ignored,
	)

	return result, nil
}

func diagnostics(dump *roster.Dump, summary roster.LoadSummary) []Diagnostic {
	out := make([]Diagnostic, 0, len(dump.Rejected)+len(summary.Skipped))
	for _, rej := range dump.Rejected {
		out = append(out, Diagnostic{
			Kind:   DiagnosticMalformed,
			Line:   rej.Line,
			Reason: rej.Reason,
			Text:   rej.Text,
		})
	}
	for _, skip := range summary.Skipped {
		out = append(out, Diagnostic{
			Kind:      DiagnosticSkipped,
			StudentID: skip.Record.ID,
			Reason:    string(skip.Reason),
		})
	}
	return out
}
