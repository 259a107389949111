package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/classify"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/commands"
	"github.com/Gui-ZeN/AgiliDash-sub000/internal/config"
)

// runCLI executes the root command in-process and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func initWorkspace(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runCLI(t, append([]string{"init", dir, "--name", "Escritório Teste"}, args...)...)
	require.NoError(t, err)
	return dir
}

func gitLog(t *testing.T, dir, format string) string {
	t.Helper()
	log := exec.Command("git", "log", "--format="+format)
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	return string(out)
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initWorkspace(t)

	expectedDirs := []string{
		"state",
		"rules",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := initWorkspace(t)

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "Escritório Teste", cfg.Workspace.Name)
	assert.Equal(t, config.DriverFile, cfg.Store.Driver)
	assert.Equal(t, "state", cfg.Store.Path)
}

func TestInit_SQLiteStore(t *testing.T) {
	dir := initWorkspace(t, "--store", "sqlite")

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, filepath.Join("state", "agilidash.db"), cfg.Store.Path)
}

func TestInit_Rules(t *testing.T) {
	dir := initWorkspace(t)

	rules, err := classify.LoadRules(filepath.Join(dir, "rules", "categorization-rules.yaml"))
	require.NoError(t, err)
	assert.Empty(t, rules)
	assert.FileExists(t, filepath.Join(dir, "rules", "categorization-rules.yaml"))
}

func TestInit_GitRepo(t *testing.T) {
	dir := initWorkspace(t)

	_, err := os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")
	assert.Contains(t, gitLog(t, dir, "%s"), "init: Initialize Escritório Teste")
	assert.Contains(t, gitLog(t, dir, "%an <%ae>"), "AgiliDash <import@agilidash.local>")
}

func TestInit_Gitignore(t *testing.T) {
	dir := initWorkspace(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	for _, pattern := range []string{"*.tmp", "*.db-wal", "*.db-shm"} {
		assert.Contains(t, string(data), pattern, ".gitignore should contain %s", pattern)
	}
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runCLI(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestInit_Twice(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runCLI(t, "init", dir, "--name", "Again")
	assert.Error(t, err)
}

func TestInit_BadDriver(t *testing.T) {
	_, err := runCLI(t, "init", t.TempDir(), "--name", "X", "--store", "redis")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}
