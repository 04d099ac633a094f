package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"dataprep/internal/models"
	"dataprep/internal/util"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "nested", "dataset.csv")
	table := Format(Label([]string{`virgül, "tırnak" ve şapka`, "düz"}, "label"))
	require.NoError(t, WriteTable(path, table))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "text,label\n\"virgül, \"\"tırnak\"\" ve şapka\",label\ndüz,label\n", string(raw))

	rows := readCSV(t, path)
	require.Equal(t, []string{"text", "label"}, rows[0])
	require.Equal(t, `virgül, "tırnak" ve şapka`, rows[1][0])
}

func TestWriteTableOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are longer"), 0o644))
	require.NoError(t, WriteTable(path, Format(nil)))
	require.Equal(t, [][]string{{"text", "label"}}, readCSV(t, path))
}

func TestWriteTableUnwritableParent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "output")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))
	err := WriteTable(filepath.Join(blocker, "dataset.csv"), Format(nil))
	require.ErrorIs(t, err, util.ErrOutput)
}

func TestWriteTableXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.xlsx")
	require.NoError(t, WriteTable(path, models.Table{Columns: Columns, Rows: [][]string{{"merhaba dünya", "label"}}}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"text", "label"}, {"merhaba dünya", "label"}}, rows)
}

func TestWriteManifestNextToOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dataset.csv")
	path, err := WriteManifest(out, Manifest{RunID: "r1", TaskType: TaskTextClassification})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(filepath.Dir(out), "dataset.manifest.json"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)
}
