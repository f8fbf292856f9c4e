package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ueplot/internal/testutil"
)

func TestValidateValidDocument(t *testing.T) {
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	out, _, err := execute(cmd, smallDocumentFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "2 trials, 2 neurons, 3 windows")
}

func TestValidateValidDocumentJSON(t *testing.T) {
	cmd := NewValidateCommand(&RootOptions{Format: "json"})
	out, _, err := execute(cmd, smallDocumentFile(t))
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 3, resp.Data.Windows)
}

func TestValidateRejectedDocument(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(doc *documentEdit)
		code  string
		field string
	}{
		{
			name:  "window longer than span",
			edit:  func(d *documentEdit) { d.WindowSize = "300ms" },
			code:  ErrCodeInvalidParameter,
			field: "window_size",
		},
		{
			name:  "unknown bin unit",
			edit:  func(d *documentEdit) { d.BinSize = "5 parsecs" },
			code:  ErrCodeUnitMismatch,
			field: "bin_size",
		},
		{
			name:  "surprise length",
			edit:  func(d *documentEdit) { d.Js = []float64{1} },
			code:  ErrCodeInvalidParameter,
			field: "Js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testutil.SmallDocument()
			edit := &documentEdit{
				WindowSize: doc.Params.WindowSize,
				BinSize:    doc.Params.BinSize,
				Js:         doc.Significance.Js,
			}
			tt.edit(edit)
			doc.Params.WindowSize = edit.WindowSize
			doc.Params.BinSize = edit.BinSize
			doc.Significance.Js = edit.Js
			path := writeDocument(t, t.TempDir(), "doc.json", doc)

			cmd := NewValidateCommand(&RootOptions{Format: "json"})
			out, _, err := execute(cmd, path)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))

			var resp struct {
				Status string `json:"status"`
				Error  struct {
					Code    string           `json:"code"`
					Details ValidationResult `json:"details"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.False(t, resp.Error.Details.Valid)
			require.Len(t, resp.Error.Details.Errors, 1)
			assert.Equal(t, tt.field, resp.Error.Details.Errors[0].Field)
		})
	}
}

// documentEdit holds the fields the rejection table changes.
type documentEdit struct {
	WindowSize string
	BinSize    string
	Js         []float64
}

func TestValidateTextError(t *testing.T) {
	doc := testutil.SmallDocument()
	doc.TStop = doc.TStart
	path := writeDocument(t, t.TempDir(), "doc.json", doc)

	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	out, _, err := execute(cmd, path)
	require.Error(t, err)
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "[E101] t_stop")
}

func TestValidateWithConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("significance_mode: one_sided\nunit_ids: [x, y]\n"), 0644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("significance_mode: one_sided\nunit_ids: [x]\n"), 0644))

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "--config", good, smallDocumentFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "✓")

	out, _, err = execute(NewValidateCommand(&RootOptions{Format: "text"}), "--config", bad, smallDocumentFile(t))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "unit_ids")
}

func TestValidateBadMode(t *testing.T) {
	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "--mode", "sideways", smallDocumentFile(t))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "[E101]")
}

func TestValidateMissingDocument(t *testing.T) {
	_, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "x.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateMissingArgs(t *testing.T) {
	_, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
