// Package runner executes verification scenarios: one isolated browser
// session per scenario, steps strictly in order, a full-page screenshot
// at the end, and teardown on every path.
package runner

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"greenwich/internal/browser"
	"greenwich/internal/scenario"
)

// Run executes one scenario in a fresh browser session. The session is
// torn down on success and failure alike. With Options.Workspace set
// the run also leaves a manifest and an NDJSON log under runs/<id>/.
func Run(cfg *scenario.Config, opts Options) (out Outcome, err error) {
	out = Outcome{
		Scenario:   cfg.Name,
		TargetURL:  cfg.TargetURL,
		State:      StateNotStarted,
		StepsTotal: len(cfg.Steps),
		StartedAt:  time.Now(),
	}

	if verr := cfg.Validate(); verr != nil {
		var perr *scenario.PermissionsError
		if errors.As(verr, &perr) {
			verr = classify(ErrPermissionSetup, verr)
		}
		err = fmt.Errorf("invalid scenario: %w", verr)
		out.Failure = err.Error()
		out.FinishedAt = time.Now()
		return out, err
	}

	shotPath := cfg.Screenshot.Path
	var rec *record
	if opts.Workspace != "" {
		rec, err = newRecord(opts.Workspace)
		if err != nil {
			err = fmt.Errorf("prepare run directory: %w", err)
			out.Failure = err.Error()
			out.FinishedAt = time.Now()
			return out, err
		}
		defer rec.close()
		defer func() {
			out.RunID = rec.id
			out.LogPath = rec.logPath
			if werr := rec.writeManifest(out); werr != nil {
				opts.logger().Warn("write manifest failed", "run_id", rec.id, "error", werr)
			}
		}()
		if !filepath.IsAbs(shotPath) {
			shotPath = filepath.Join(rec.artifactsDir, shotPath)
		}
		opts.Logger = rec.logger()
	}
	log := opts.logger()

	out.State = StateRunning
	sess, err := browser.Open(browser.Options{
		Headless:       opts.Headless,
		ExecutablePath: opts.ExecutablePath,
	})
	if err != nil {
		return out.fail(fmt.Errorf("open browser session: %w", err))
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Warn("session close", "scenario", cfg.Name, "error", cerr)
		}
	}()

	if cfg.Permissions != nil {
		origin, oerr := cfg.Origin()
		if oerr != nil {
			return out.fail(fmt.Errorf("derive origin: %w", classify(ErrPermissionSetup, oerr)))
		}
		log.Info("applying grants", "origin", origin, "grants", cfg.Permissions.Grants)
		if gerr := sess.Grant(cfg.Permissions.Grants, origin); gerr != nil {
			return out.fail(fmt.Errorf("grant permissions for %s: %w", origin, classify(ErrPermissionSetup, gerr)))
		}
	}
	if cfg.Geolocation != nil {
		log.Info("setting geolocation", "latitude", cfg.Geolocation.Latitude, "longitude", cfg.Geolocation.Longitude)
		if gerr := sess.SetGeolocation(cfg.Geolocation.Latitude, cfg.Geolocation.Longitude); gerr != nil {
			return out.fail(fmt.Errorf("set geolocation: %w", classify(ErrPermissionSetup, gerr)))
		}
	}

	out, err = execute(sess.Page(), cfg, shotPath, opts)
	if err != nil {
		log.Warn("run failed", "scenario", cfg.Name, "error", err)
		return out, err
	}
	log.Info("run finished", "scenario", cfg.Name, "screenshot", out.Screenshot)
	return out, nil
}
