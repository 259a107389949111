package inbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/model"
)

func drop(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	drop(t, root, "import/acme/fgts/jan.txt", "a")
	drop(t, root, "import/acme/Balancete/01-2025.CSV", "bb")
	drop(t, root, "import/acme/fgts/notes.pdf", "x")
	drop(t, root, "import/acme/fgts/.hidden.txt", "x")
	drop(t, root, "import/loose.txt", "x")
	drop(t, root, "import/processed/acme/fgts/old.txt", "x")

	items, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "acme", items[0].Entity)
	assert.Equal(t, model.FamilyBalancete, items[0].Family)
	assert.Equal(t, "01-2025.CSV", items[0].Name)
	assert.Equal(t, int64(2), items[0].Size)
	assert.Equal(t, "import/acme/Balancete/01-2025.CSV", items[0].Rel())

	assert.Equal(t, model.FamilyFGTS, items[1].Family)
	assert.Equal(t, "import/acme/fgts/jan.txt", items[1].Rel())
}

func TestScan_NoImportDir(t *testing.T) {
	items, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMarkProcessed(t *testing.T) {
	root := t.TempDir()
	drop(t, root, "import/acme/fgts/jan.txt", "first")

	items, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, items, 1)

	dst, err := MarkProcessed(root, items[0])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "import", "processed", "acme", "fgts", "jan.txt"), dst)
	assert.NoFileExists(t, items[0].Path)

	// Same name again: the earlier file is kept.
	drop(t, root, "import/acme/fgts/jan.txt", "second")
	items, err = Scan(root)
	require.NoError(t, err)
	require.Len(t, items, 1)
	dst, err = MarkProcessed(root, items[0])
	require.NoError(t, err)
	assert.Equal(t, "jan-2.txt", filepath.Base(dst))

	data, err := os.ReadFile(filepath.Join(root, "import", "processed", "acme", "fgts", "jan.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}
