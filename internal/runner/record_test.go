package runner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_ManifestRoundTrip(t *testing.T) {
	ws := t.TempDir()
	rec, err := newRecord(ws)
	require.NoError(t, err)
	defer rec.close()

	out := Outcome{
		RunID:          rec.id,
		Scenario:       "location-dashboard",
		TargetURL:      "http://localhost:5173",
		State:          StateCompleted,
		StartedAt:      time.Now().Add(-3 * time.Second),
		FinishedAt:     time.Now(),
		StepsTotal:     6,
		StepsCompleted: 6,
		Screenshot:     filepath.Join(rec.artifactsDir, "location_dashboard.png"),
		LogPath:        rec.logPath,
	}
	require.NoError(t, rec.writeManifest(out))

	loaded, err := LoadManifest(ManifestPath(ws, rec.id))
	require.NoError(t, err)

	assert.Equal(t, out.RunID, loaded.RunID)
	assert.Equal(t, out.Scenario, loaded.Scenario)
	assert.Equal(t, out.TargetURL, loaded.TargetURL)
	assert.Equal(t, StateCompleted, loaded.State)
	assert.Equal(t, 6, loaded.StepsTotal)
	assert.Equal(t, 6, loaded.StepsCompleted)
	assert.Equal(t, out.Screenshot, loaded.Screenshot)
	assert.Equal(t, out.LogPath, loaded.LogPath)
	assert.Empty(t, loaded.Failure)
	assert.True(t, loaded.StartedAt.Equal(out.StartedAt))
	assert.True(t, loaded.FinishedAt.Equal(out.FinishedAt))
}

func TestRecord_LaysOutRunDirectory(t *testing.T) {
	ws := t.TempDir()
	rec, err := newRecord(ws)
	require.NoError(t, err)

	info, err := os.Stat(rec.artifactsDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(ws, "runs", rec.id, "artifacts"), rec.artifactsDir)

	rec.logger().Info("session opened", "scenario", "permission-denied")
	require.NoError(t, rec.close())

	data, err := os.ReadFile(rec.logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"session opened"`)
	assert.Contains(t, string(data), `"scenario":"permission-denied"`)
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "run.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest")
}

func TestFindRuns(t *testing.T) {
	ws := t.TempDir()

	ids, err := FindRuns(ws)
	require.NoError(t, err)
	assert.Empty(t, ids, "a fresh workspace has no runs")

	var created []string
	for i := 0; i < 3; i++ {
		rec, err := newRecord(ws)
		require.NoError(t, err)
		require.NoError(t, rec.close())
		created = append(created, rec.id)
	}
	sort.Strings(created)

	// Stray files next to the run directories are not runs.
	require.NoError(t, os.WriteFile(filepath.Join(ws, "runs", "notes.txt"), []byte("scratch"), 0o644))

	ids, err = FindRuns(ws)
	require.NoError(t, err)
	assert.Equal(t, created, ids)
}
