package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"undestructure/internal/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeProject(t *testing.T) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Card.jsx"),
		[]byte("export function Card({ title }) { return title }\nexport const Plain = (props) => props.x\n"), 0o644))

	configPath = filepath.Join(dir, "undestructure.toml")
	cfg := `version = 1

[history]
enabled = true
path = "` + filepath.ToSlash(filepath.Join(dir, "history.db")) + `"
project = "cli"
`
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))
	return dir, configPath
}

func TestScanCommand_Text(t *testing.T) {
	dir, configPath := writeProject(t)

	out, err := execute(t, "scan", "--config", configPath, "--uppercase-func-names", filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Contains(t, out, "destructured Card { title }")
	assert.Contains(t, out, "component Plain")
}

func TestScanCommand_JSONWithoutNaming(t *testing.T) {
	dir, configPath := writeProject(t)

	out, err := execute(t, "scan", "--config", configPath, "--format", "json", filepath.Join(dir, "src"))
	require.NoError(t, err)

	var decoded struct {
		Functions  int `json:"functions"`
		Components int `json:"components"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 2, decoded.Functions)
	assert.Equal(t, 0, decoded.Components)
}

func TestScanCommand_FailOnDestructuring(t *testing.T) {
	dir, configPath := writeProject(t)

	_, err := execute(t, "scan", "--config", configPath, "--uppercase-func-names", "--fail-on-destructuring", filepath.Join(dir, "src"))
	var exit *exitError
	require.True(t, errors.As(err, &exit), "expected exitError, got %v", err)
	assert.Equal(t, exitDestructuring, exit.code)
}

func TestScanCommand_OutputFile(t *testing.T) {
	dir, configPath := writeProject(t)
	target := filepath.Join(dir, "out", "report.json")

	out, err := execute(t, "scan", "--config", configPath, "-f", "json", "-o", target, filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestScanCommand_MissingConfig(t *testing.T) {
	_, err := execute(t, "scan", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	dir, configPath := writeProject(t)

	_, err := execute(t, "scan", "--config", configPath, "--uppercase-func-names", filepath.Join(dir, "src"))
	require.NoError(t, err)

	out, err := execute(t, "history", "--config", configPath, "--limit", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))

	runID := strings.Fields(lines[1])[0]
	out, err = execute(t, "history", "--config", configPath, "--run", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "component_destructuring")
	assert.Contains(t, out, "Card")
}

func TestHistoryCommand_NoDatabase(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "undestructure.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("version = 1\n[history]\npath = \""+filepath.ToSlash(filepath.Join(dir, "none.db"))+"\"\n"), 0o644))

	out, err := execute(t, "history", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no history at")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "undestructure dev\n", out)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}

func TestRedirectLogs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.History.Path = filepath.Join(dir, "history.db")
	t.Cleanup(func() { setupLogging(io.Discard, false) })

	closeLog, err := redirectLogs(cfg, true)
	require.NoError(t, err)
	closeLog()

	_, err = os.Stat(filepath.Join(dir, "undestructure.log"))
	assert.NoError(t, err)
}

func TestWatchCommand_PlainOutput(t *testing.T) {
	dir, configPath := writeProject(t)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"watch", "--config", configPath, "--uppercase-func-names", filepath.Join(dir, "src")})
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, stdout.String(), "destructured Card { title }")
}
