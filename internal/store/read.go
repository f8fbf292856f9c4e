package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/ueplot/internal/ir"
)

// GetDocument returns an archived document and its record.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetDocument(ctx context.Context, id string) (ir.Document, ir.DocumentRecord, error) {
	var (
		rec  ir.DocumentRecord
		body string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, body, ir_version, seq
		FROM documents
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Name, &body, &rec.IRVersion, &rec.Seq)
	if err == sql.ErrNoRows {
		return ir.Document{}, ir.DocumentRecord{}, err
	}
	if err != nil {
		return ir.Document{}, ir.DocumentRecord{}, fmt.Errorf("get document: %w", err)
	}

	doc, err := unmarshalDocument(body)
	if err != nil {
		return ir.Document{}, ir.DocumentRecord{}, err
	}
	return doc, rec, nil
}

// ListDocuments returns every archived document record.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the archive is empty.
func (s *Store) ListDocuments(ctx context.Context) ([]ir.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, ir_version, seq
		FROM documents
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []ir.DocumentRecord{}
	for rows.Next() {
		var rec ir.DocumentRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.IRVersion, &rec.Seq); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// ListRuns returns the run log, optionally filtered to one document.
// An empty documentID lists every run.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if no runs match.
func (s *Store) ListRuns(ctx context.Context, documentID string) ([]ir.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, significance_mode, threshold, window_count,
		       significant_window_count, coincidence_count, unitary_event_count,
		       config_hash, tool_version, seq
		FROM runs
		WHERE ? = '' OR document_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, documentID, documentID)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (ir.RunRecord, error) {
	var run ir.RunRecord
	err := rows.Scan(
		&run.ID,
		&run.DocumentID,
		&run.SignificanceMode,
		&run.Threshold,
		&run.WindowCount,
		&run.SignificantWindowCount,
		&run.CoincidenceCount,
		&run.UnitaryEventCount,
		&run.ConfigHash,
		&run.ToolVersion,
		&run.Seq,
	)
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("scan run: %w", err)
	}
	return run, nil
}
