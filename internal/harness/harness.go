package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/ueplot/internal/config"
	"github.com/roach88/ueplot/internal/ir"
	"github.com/roach88/ueplot/internal/panel"
	"github.com/roach88/ueplot/internal/store"
	"github.com/roach88/ueplot/internal/testutil"
	"github.com/roach88/ueplot/internal/ue"
)

// Harness is the scenario execution engine.
// It projects documents with a deterministic clock and run IDs.
type Harness struct {
	store  *store.Store
	clock  *testutil.RunClock
	ids    *testutil.SequentialIDs
	logger *slog.Logger
}

// outcome is everything a successful projection produced.
type outcome struct {
	analysis *ue.Analysis
	figure   *panel.Figure
	run      ir.RunRecord
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
//  1. Resolve the document and the effective config
//  2. Validate, normalize and build every panel
//  3. Archive the document and record the run
//  4. Check expectations and build the snapshot
//
// Input rejected by validation is an outcome, not an error: it is checked
// against expect.error. A non-nil error means the scenario could not run
// at all.
func Run(scenario *Scenario) (*Result, error) {
	doc, err := scenario.document()
	if err != nil {
		return nil, err
	}

	clock := testutil.NewRunClock()
	ids := testutil.NewSequentialIDs("run")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests

	st, err := store.Open(":memory:",
		store.WithClock(clock),
		store.WithIDGenerator(ids),
		store.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{store: st, clock: clock, ids: ids, logger: logger}
	cfg := config.Merge(config.Defaults(), scenario.Config)

	result := NewResult()
	out, err := h.project(context.Background(), doc, cfg)
	if err != nil {
		code := ue.CodeOf(err)
		if code == "" {
			return nil, err
		}
		checkError(scenario.Expect, err, result)
		result.Snapshot, err = errorSnapshot(scenario.Name, err)
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	if scenario.Expect.Error != "" {
		result.AddError(fmt.Sprintf("expected error %s, projection succeeded", scenario.Expect.Error))
	}
	checkOutcome(scenario.Expect, out, result)

	result.Snapshot, err = successSnapshot(scenario.Name, out)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// project runs the full pipeline. Errors carrying a ue error code are input
// rejections; anything else is an infrastructure failure.
func (h *Harness) project(ctx context.Context, doc ir.Document, cfg config.Config) (*outcome, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	a, err := ue.Normalize(doc)
	if err != nil {
		return nil, err
	}

	fig, err := panel.Build(ctx, a, cfg, h.logger)
	if err != nil {
		return nil, err
	}

	docID, _, err := h.store.PutDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	cfgHash, err := ir.ConfigHash(cfg)
	if err != nil {
		return nil, err
	}
	run, err := h.store.RecordRun(ctx, fig.RunRecord(docID, cfgHash))
	if err != nil {
		return nil, err
	}

	h.logger.Debug("scenario projected", "document", docID, "run", run.ID, "seq", h.clock.Current())
	return &outcome{analysis: a, figure: fig, run: run}, nil
}
