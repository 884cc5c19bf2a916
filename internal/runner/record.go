package runner

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

const (
	runsDirName  = "runs"
	manifestName = "run.json"
	logName      = "runner.ndjson"
)

// record is the on-disk home of a single run: runs/<id>/ with the
// manifest, the NDJSON step log, and an artifacts/ dir for screenshots.
type record struct {
	id           string
	dir          string
	artifactsDir string
	logPath      string
	logFile      *os.File
}

func newRecord(workspace string) (*record, error) {
	id := uuid.NewString()
	dir := filepath.Join(workspace, runsDirName, id)
	artifacts := filepath.Join(dir, "artifacts")
	if err := os.MkdirAll(artifacts, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	logPath := filepath.Join(dir, logName)
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create run log: %w", err)
	}
	return &record{
		id:           id,
		dir:          dir,
		artifactsDir: artifacts,
		logPath:      logPath,
		logFile:      logFile,
	}, nil
}

func (r *record) logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(r.logFile, nil))
}

func (r *record) writeManifest(out Outcome) error {
	f, err := os.Create(filepath.Join(r.dir, manifestName))
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}

func (r *record) close() error {
	return r.logFile.Close()
}

// ManifestPath returns where the manifest of a given run lives inside
// a workspace.
func ManifestPath(workspace, runID string) string {
	return filepath.Join(workspace, runsDirName, runID, manifestName)
}

// LoadManifest reads a run manifest back from disk.
func LoadManifest(path string) (Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("read manifest: %w", err)
	}
	var out Outcome
	if err := json.Unmarshal(data, &out); err != nil {
		return Outcome{}, fmt.Errorf("parse manifest: %w", err)
	}
	return out, nil
}

// FindRuns lists the run IDs recorded under a workspace, sorted
// lexically. A workspace with no runs yet yields an empty list.
func FindRuns(workspace string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(workspace, runsDirName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read runs directory: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}
