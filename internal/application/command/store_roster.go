package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alem-hub/student-registry/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE ROSTER COMMAND
// Writes the current roster to the configured store, replacing what was there.
// ══════════════════════════════════════════════════════════════════════════════

// StoreRosterCommand has no parameters; the whole roster is stored.
type StoreRosterCommand struct{}

// StoreRosterResult contains the result of a store operation.
type StoreRosterResult struct {
	// NothingToStore is set when the roster was empty; the store was not touched.
	NothingToStore bool

	// Stored is the number of students written.
	Stored int

	// Backend is the name of the store that was written.
	Backend string

	// Duration is how long the write took.
	Duration time.Duration
}

// StoreRosterHandler handles the StoreRosterCommand.
type StoreRosterHandler struct {
	roster *roster.Roster
	store  roster.Store
	logger *slog.Logger
}

// NewStoreRosterHandler creates a new StoreRosterHandler.
func NewStoreRosterHandler(r *roster.Roster, store roster.Store, logger *slog.Logger) *StoreRosterHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreRosterHandler{roster: r, store: store, logger: logger}
}

// Backend returns the name of the store the handler uses.
func (h *StoreRosterHandler) Backend() string {
	return h.store.Name()
}

// Handle executes the store roster command.
func (h *StoreRosterHandler) Handle(ctx context.Context, _ StoreRosterCommand) (*StoreRosterResult, error) {
	snapshot := h.roster.Snapshot()
	if len(snapshot) == 0 {
		return &StoreRosterResult{NothingToStore: true, Backend: h.store.Name()}, nil
	}

	start := time.Now()
	if err := h.store.Save(ctx, snapshot); err != nil {
		h.logger.ErrorContext(ctx, "failed to store roster",
			"backend", h.store.Name(),
			"error", err,
		)
		return nil, fmt.Errorf("store_roster: %w", err)
	}
	elapsed := time.Since(start)

	h.logger.InfoContext(ctx, "roster stored",
		"backend", h.store.Name(),
		"count", len(snapshot),
		"duration", elapsed,
	)

	return &StoreRosterResult{
		Stored:   len(snapshot),
		Backend:  h.store.Name(),
		Duration: elapsed,
	}, nil
}
