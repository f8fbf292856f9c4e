package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ueplot/internal/ir"
	"github.com/roach88/ueplot/internal/testutil"
)

// writeDocument writes doc as JSON into dir and returns its path.
func writeDocument(t *testing.T, dir, name string, doc ir.Document) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// smallDocumentFile writes the small fixture document into a temp dir.
func smallDocumentFile(t *testing.T) string {
	t.Helper()
	return writeDocument(t, t.TempDir(), "small.json", testutil.SmallDocument())
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// errorResponse decodes a JSON error envelope.
type errorResponse struct {
	Status string `json:"status"`
	Error  struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}
