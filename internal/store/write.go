package store

import (
	"context"
	"fmt"

	"github.com/roach88/ueplot/internal/ir"
)

// PutDocument archives doc and returns its content-addressed ID.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: importing an identical
// document again keeps the original row and seq.
//
// An empty Version is stored as ir.IRVersion.
func (s *Store) PutDocument(ctx context.Context, doc ir.Document) (id string, inserted bool, err error) {
	if doc.Version == "" {
		doc.Version = ir.IRVersion
	}

	id, err = ir.DocumentID(doc)
	if err != nil {
		return "", false, fmt.Errorf("put document: %w", err)
	}
	body, err := marshalDocument(doc)
	if err != nil {
		return "", false, fmt.Errorf("put document: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, name, body, ir_version, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		doc.Name,
		body,
		doc.Version,
		s.clock.Next(),
	)
	if err != nil {
		return "", false, fmt.Errorf("put document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("put document: %w", err)
	}
	s.logger.Debug("put document", "id", id, "name", doc.Name, "inserted", n > 0)
	return id, n > 0, nil
}

// RecordRun appends a run summary to the log. ID, Seq and ToolVersion are
// assigned by the store; the returned record carries them.
//
// Note: The document referenced by DocumentID must exist (foreign key constraint).
func (s *Store) RecordRun(ctx context.Context, run ir.RunRecord) (ir.RunRecord, error) {
	run.ID = s.ids.Generate()
	run.Seq = s.clock.Next()
	run.ToolVersion = ir.ToolVersion

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, document_id, significance_mode, threshold, window_count,
		 significant_window_count, coincidence_count, unitary_event_count,
		 config_hash, tool_version, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.DocumentID,
		run.SignificanceMode,
		run.Threshold,
		run.WindowCount,
		run.SignificantWindowCount,
		run.CoincidenceCount,
		run.UnitaryEventCount,
		run.ConfigHash,
		run.ToolVersion,
		run.Seq,
	)
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("record run: %w", err)
	}

	s.logger.Debug("recorded run", "id", run.ID, "document", run.DocumentID, "seq", run.Seq)
	return run, nil
}
