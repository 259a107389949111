package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/importlog"
)

const entity = "12.345.678/0001-90"

const ahJan = "Empresa: ACME\nDescrição;01/2025\nRECEITA BRUTA;1.000,00\nDESPESAS OPERACIONAIS;(600,00)\n"
const ahFev = "Empresa: ACME\nDescrição;02/2025\nRECEITA BRUTA;1.200,00\nDESPESAS OPERACIONAIS;(700,00)\n"

func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type result struct {
	Success  bool            `json:"success"`
	Dados    json.RawMessage `json:"dados"`
	ImportID string          `json:"importId"`
	Error    string          `json:"error"`
}

func decodeResult(t *testing.T, out string) result {
	t.Helper()
	var r result
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}

func TestImport_ShowAndCommit(t *testing.T) {
	dir := initWorkspace(t)
	jan := writeExport(t, t.TempDir(), "ah-jan.txt", ahJan)
	fev := writeExport(t, t.TempDir(), "ah-fev.txt", ahFev)

	out, err := runCLI(t, "import", "analise-horizontal", jan, "--entity", entity, "--repo", dir)
	require.NoError(t, err)
	first := out[:strings.LastIndex(out, "}")+1]
	r := decodeResult(t, first)
	assert.True(t, r.Success)
	assert.NotEmpty(t, r.ImportID)
	assert.Contains(t, out, "Committed ")

	_, err = runCLI(t, "import", "analise-horizontal", fev, "--entity", entity, "--repo", dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "state", "12345678000190", "analise-horizontal.json"))
	assert.Contains(t, gitLog(t, dir, "%s"), "import: analise-horizontal 12345678000190")

	out, err = runCLI(t, "show", "analise-horizontal", "--entity", entity, "--repo", dir)
	require.NoError(t, err)
	var ah struct {
		Meses  []string `json:"meses"`
		Totais struct {
			TotalReceitas float64 `json:"totalReceitas"`
			TotalDespesas float64 `json:"totalDespesas"`
		} `json:"totais"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ah))
	assert.Equal(t, []string{"Jan/25", "Fev/25"}, ah.Meses)
	assert.InDelta(t, 2200, ah.Totais.TotalReceitas, 0.001)
	assert.InDelta(t, 1300, ah.Totais.TotalDespesas, 0.001)

	out, err = runCLI(t, "show", "--entity", entity, "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "analise-horizontal")
	assert.Contains(t, out, "Análise Horizontal")
}

func TestImport_FailurePrintsResult(t *testing.T) {
	dir := initWorkspace(t)
	bad := writeExport(t, t.TempDir(), "bad.txt", "nada aqui\n")

	out, err := runCLI(t, "import", "fgts", bad, "--entity", entity, "--repo", dir)
	require.Error(t, err)
	r := decodeResult(t, out)
	assert.False(t, r.Success)
	assert.Contains(t, r.Error, "fgts")

	assert.NoFileExists(t, filepath.Join(dir, "state", "12345678000190", "fgts.json"))

	entries, err := importlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, importlog.StatusFailed, entries[0].Status)
	assert.Equal(t, "12345678000190", entries[0].Entity)

	out, err = runCLI(t, "show", "fgts", "--entity", entity, "--repo", dir)
	require.NoError(t, err)
	assert.Equal(t, "no data for fgts\n", out)
}

func TestImport_UnknownFamily(t *testing.T) {
	dir := initWorkspace(t)
	f := writeExport(t, t.TempDir(), "x.txt", ahJan)

	out, err := runCLI(t, "import", "razao", f, "--entity", entity, "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, decodeResult(t, out).Error, "unknown report type")
}

func TestImport_CSLLTrimestre(t *testing.T) {
	dir := initWorkspace(t)
	f := writeExport(t, t.TempDir(), "csll.txt", "BASE DE CÁLCULO;27.000,00\nCSLL DEVIDA;2.430,00\n")

	out, err := runCLI(t, "import", "csll", f, "--entity", entity, "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, decodeResult(t, out).Error, "trimestre required")

	out, err = runCLI(t, "import", "csll", f, "--entity", entity, "--trimestre", "2", "--ano", "2025", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2º Trimestre/2025")

	out, err = runCLI(t, "import", "csll", f, "--entity", entity, "--trimestre", "3º", "--ano", "2025", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "3º Trimestre/2025")

	_, err = runCLI(t, "import", "csll", f, "--entity", entity, "--trimestre", "5", "--repo", dir)
	assert.ErrorContains(t, err, "invalid trimestre")
}

func TestImport_NotAWorkspace(t *testing.T) {
	f := writeExport(t, t.TempDir(), "x.txt", ahJan)
	_, err := runCLI(t, "import", "analise-horizontal", f, "--entity", entity, "--repo", t.TempDir())
	assert.Error(t, err)
}

func TestImport_RequiresEntity(t *testing.T) {
	dir := initWorkspace(t)
	f := writeExport(t, t.TempDir(), "x.txt", ahJan)
	_, err := runCLI(t, "import", "analise-horizontal", f, "--repo", dir)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	dir := initWorkspace(t)
	f := writeExport(t, t.TempDir(), "jan.txt", ahJan)
	_, err := runCLI(t, "import", "analise-horizontal", f, "--entity", entity, "--repo", dir)
	require.NoError(t, err)

	out, err := runCLI(t, "clear", "analise-horizontal", "--entity", entity, "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared analise-horizontal for 12345678000190")
	assert.NoFileExists(t, filepath.Join(dir, "state", "12345678000190", "analise-horizontal.json"))
	assert.Contains(t, gitLog(t, dir, "%s"), "clear: analise-horizontal 12345678000190")

	_, err = runCLI(t, "clear", "razao", "--entity", entity, "--repo", dir)
	assert.Error(t, err)
}

func TestInbox(t *testing.T) {
	dir := initWorkspace(t)
	writeExport(t, dir, "import/12345678000190/analise-horizontal/jan.txt", ahJan)
	writeExport(t, dir, "import/12345678000190/analise-horizontal/fev.txt", ahFev)
	writeExport(t, dir, "import/12345678000190/fgts/broken.txt", "sem tabela\n")

	out, err := runCLI(t, "inbox", "--repo", dir)
	require.Error(t, err, "one file failed")
	assert.Contains(t, out, "2 imported, 1 failed")
	assert.Contains(t, out, "FAIL import/12345678000190/fgts/broken.txt")

	assert.FileExists(t, filepath.Join(dir, "import", "processed", "12345678000190", "analise-horizontal", "jan.txt"))
	assert.FileExists(t, filepath.Join(dir, "import", "12345678000190", "fgts", "broken.txt"), "failed files stay in the inbox")
	assert.Contains(t, gitLog(t, dir, "%s"), "inbox: 2 imported")

	out, err = runCLI(t, "history", "--entity", entity, "--repo", dir)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.Contains(t, out, "failed")
	entries, err := importlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Contains(t, out, e.ImportID)
	}

	out, err = runCLI(t, "history", "--entity", entity, "--family", "fgts", "--repo", dir)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestInbox_StopsOnStoreError(t *testing.T) {
	dir := initWorkspace(t)
	writeExport(t, dir, "import/11111111000191/analise-horizontal/jan.txt", ahJan)
	writeExport(t, dir, "import/12345678000190/analise-horizontal/jan.txt", ahJan)
	writeExport(t, dir, "import/12345678000190/analise-horizontal/fev.txt", ahFev)
	// A regular file where the entity's state directory belongs makes every
	// read and write for that entity fail.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state", "12345678000190"), []byte("x"), 0o644))

	out, err := runCLI(t, "inbox", "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inbox stopped at import/12345678000190/analise-horizontal/fev.txt")
	assert.Contains(t, out, "1 imported, 1 failed")
	assert.Equal(t, 1, strings.Count(out, "FAIL "), "no file is tried after the store fails")

	assert.FileExists(t, filepath.Join(dir, "import", "processed", "11111111000191", "analise-horizontal", "jan.txt"))
	assert.FileExists(t, filepath.Join(dir, "import", "12345678000190", "analise-horizontal", "fev.txt"))
	assert.FileExists(t, filepath.Join(dir, "import", "12345678000190", "analise-horizontal", "jan.txt"))
	assert.Contains(t, gitLog(t, dir, "%s"), "inbox: 1 imported")

	entries, err := importlog.Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestInbox_Empty(t *testing.T) {
	dir := initWorkspace(t)
	out, err := runCLI(t, "inbox", "--repo", dir)
	require.NoError(t, err)
	assert.Equal(t, "Inbox is empty\n", out)
}

func TestImport_SQLiteWorkspace(t *testing.T) {
	dir := initWorkspace(t, "--store", "sqlite")
	f := writeExport(t, t.TempDir(), "jan.txt", ahJan)

	_, err := runCLI(t, "import", "analise-horizontal", f, "--entity", entity, "--repo", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "state", "agilidash.db"))

	out, err := runCLI(t, "show", "analise-horizontal", "--entity", entity, "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"Jan/25"`)
}

func TestFamilies(t *testing.T) {
	out, err := runCLI(t, "families")
	require.NoError(t, err)
	assert.Equal(t, 15, strings.Count(out, "\n"))
	assert.Contains(t, out, "csll")
	assert.Contains(t, out, "quarterly")
}
