package runner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenwich/internal/scenario"
)

func TestRun_InvalidConfigFailsBeforeLaunch(t *testing.T) {
	cfg := &scenario.Config{
		Name:        "broken",
		Description: "A config with no steps never reaches the browser",
		TargetURL:   "http://localhost:5173",
		Screenshot:  scenario.Screenshot{Path: "out.png"},
	}

	out, err := Run(cfg, quietOpts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")
	assert.Equal(t, StateNotStarted, out.State, "the run never started")
	assert.NotEmpty(t, out.Failure)
}

func TestRun_UnknownGrantIsPermissionSetup(t *testing.T) {
	cfg, ok := scenario.Builtin("location-dashboard")
	require.True(t, ok)
	cfg.Permissions.Grants = []string{"telepathy"}

	out, err := Run(cfg, quietOpts())
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrPermissionSetup), "a bad grant name is a permission setup failure")
	assert.Contains(t, err.Error(), `unknown grant "telepathy"`)
	assert.Equal(t, StateNotStarted, out.State, "rejected before the browser launches")
}

func TestRun_UnwritableWorkspaceFailsBeforeLaunch(t *testing.T) {
	ws := filepath.Join(t.TempDir(), "workspace")
	require.NoError(t, os.WriteFile(ws, []byte("a file, not a directory"), 0o644))

	cfg, ok := scenario.Builtin("permission-denied")
	require.True(t, ok)

	opts := quietOpts()
	opts.Workspace = ws
	out, err := Run(cfg, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prepare run directory")
	assert.Equal(t, StateNotStarted, out.State)
}
