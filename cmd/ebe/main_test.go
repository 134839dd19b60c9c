package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ebeclick/game"
)

const script = `
seed: 11
frames: 20
clicks:
  - {frame: 1, x: 128, y: 128, buttons: [left]}
  - {frame: 2, x: 64, y: 64, buttons: [right]}
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clicks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))
	return path
}

func TestReplayPrintsReport(t *testing.T) {
	out, logs, err := execute(t, "replay", writeScript(t), "--log-format", "json")
	require.NoError(t, err)

	assert.Contains(t, out, "**Seed:** 11")
	assert.Contains(t, out, "**Spawned:** 2")
	assert.Contains(t, logs, `"replay finished"`)
}

func TestReplaySeedOverride(t *testing.T) {
	out, _, err := execute(t, "replay", writeScript(t), "--seed", "99", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "**Seed:** 99")
}

func TestReplayChecksAssets(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EBE_ASSET_DIR", dir)

	_, _, err := execute(t, "replay", writeScript(t), "--check-assets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), game.PlayerSprite)

	for _, name := range []string{
		game.PlayerSprite, game.ChickenSprite, game.ChickenSound, game.DogSprite, game.DogSound,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}
	_, _, err = execute(t, "replay", writeScript(t), "--check-assets")
	assert.NoError(t, err)
}

func TestReplayChecksBuiltinAssets(t *testing.T) {
	t.Setenv("EBE_ASSET_DIR", "")

	out, _, err := execute(t, "replay", writeScript(t), "--check-assets")
	require.NoError(t, err)
	assert.Contains(t, out, "**Spawned:** 2")
}

func TestReplayRejectsBadInput(t *testing.T) {
	_, _, err := execute(t, "replay")
	assert.Error(t, err)

	_, _, err = execute(t, "replay", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = execute(t, "replay", writeScript(t), "--log-level", "loud")
	assert.Error(t, err)
}

func TestRunRejectsUnknownHost(t *testing.T) {
	_, _, err := execute(t, "run", "--host", "browser")
	assert.Error(t, err)
}
