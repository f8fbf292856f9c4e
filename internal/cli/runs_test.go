package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ueplot/internal/ir"
	"github.com/roach88/ueplot/internal/testutil"
)

func TestRunsEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ueplot.db")
	_, _, err := execute(NewImportCommand(&RootOptions{Format: "text"}), dbPath, smallDocumentFile(t))
	require.NoError(t, err)

	out, _, err := execute(NewRunsCommand(&RootOptions{Format: "text"}), dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")

	out, _, err = execute(NewRunsCommand(&RootOptions{Format: "json"}), dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"data":[]`)
}

func TestRunsFilterByDocument(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ueplot.db")
	small := writeDocument(t, dir, "small.json", testutil.SmallDocument())
	synthetic := writeDocument(t, dir, "synthetic.json", testutil.SyntheticDocument(3, 4, 2))

	opts := &ProjectOptions{
		RootOptions: &RootOptions{Format: "text"},
		IDGenerator: testutil.NewSequentialIDs("run"),
	}
	for _, doc := range []string{small, synthetic, small} {
		_, _, err := execute(newProjectCommand(opts), "--mode", "one_sided", "--db", dbPath, doc)
		require.NoError(t, err)
	}

	smallID, err := ir.DocumentID(testutil.SmallDocument())
	require.NoError(t, err)

	out, _, err := execute(NewRunsCommand(&RootOptions{Format: "json"}), "--document", smallID, dbPath)
	require.NoError(t, err)

	var resp struct {
		Data []ir.RunRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "run-1", resp.Data[0].ID)
	assert.Equal(t, "run-3", resp.Data[1].ID)
	assert.Less(t, resp.Data[0].Seq, resp.Data[1].Seq)
}

func TestRunsMissingDatabase(t *testing.T) {
	_, _, err := execute(NewRunsCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "database not found")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "0123456789ab", shortID("0123456789abcdef"))
}
