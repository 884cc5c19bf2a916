package runner

import (
	"fmt"
	"log/slog"
	"time"

	"greenwich/internal/browser"
	"greenwich/internal/scenario"
)

const (
	defaultStepTimeout = 30 * time.Second
	defaultNavTimeout  = 40 * time.Second
)

// Options configure a run.
type Options struct {
	Headless       bool
	ExecutablePath string        // system browser binary; skips the driver download
	Timeout        time.Duration // per-step deadline; defaults to 30s
	NavTimeout     time.Duration // navigation deadline; defaults to 40s
	Workspace      string        // when set, run records land under <Workspace>/runs
	Logger         *slog.Logger  // nil falls back to slog.Default
}

func (o Options) stepTimeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return defaultStepTimeout
}

func (o Options) navTimeout() time.Duration {
	if o.NavTimeout > 0 {
		return o.NavTimeout
	}
	return defaultNavTimeout
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Execute drives the scenario against an open page: navigate, run
// every step in order, then capture the final screenshot at the path
// the config names. Run resolves workspace paths before delegating
// here; tests drive it directly with fakes.
func Execute(page browser.Page, cfg *scenario.Config, opts Options) (Outcome, error) {
	return execute(page, cfg, cfg.Screenshot.Path, opts)
}

func execute(page browser.Page, cfg *scenario.Config, screenshotPath string, opts Options) (Outcome, error) {
	log := opts.logger()
	out := Outcome{
		Scenario:   cfg.Name,
		TargetURL:  cfg.TargetURL,
		State:      StateNotStarted,
		StepsTotal: len(cfg.Steps),
	}

	out.StartedAt = time.Now()
	out.State = StateRunning

	log.Info("navigating", "scenario", cfg.Name, "url", cfg.TargetURL)
	if err := page.Navigate(cfg.TargetURL, opts.navTimeout()); err != nil {
		return out.fail(fmt.Errorf("navigate %s: %w", cfg.TargetURL, classify(ErrNavigation, err)))
	}

	for i := range cfg.Steps {
		step := &cfg.Steps[i]
		log.Info("step started", "index", i, "action", step.Describe())
		if err := runStep(page, step, opts.stepTimeout()); err != nil {
			out.StepsCompleted = i
			log.Warn("step failed", "index", i, "action", step.Describe(), "error", err)
			return out.fail(&StepError{Index: i, Step: step.Describe(), Err: err})
		}
		out.StepsCompleted = i + 1
		log.Info("step completed", "index", i)
	}

	log.Info("capturing screenshot", "path", screenshotPath)
	if err := page.Screenshot(screenshotPath); err != nil {
		return out.fail(fmt.Errorf("screenshot %s: %w", screenshotPath, err))
	}
	out.Screenshot = screenshotPath

	out.State = StateCompleted
	out.FinishedAt = time.Now()
	return out, nil
}

func runStep(page browser.Page, step *scenario.Step, timeout time.Duration) error {
	switch {
	case step.Select != nil:
		h := page.ByRole(step.Select.ControlRole(), step.Select.Name)
		if err := h.WaitVisible(timeout); err != nil {
			return classify(ErrElementNotFound, err)
		}
		if err := h.SelectLabel(step.Select.Label, timeout); err != nil {
			return classify(ErrElementNotFound, err)
		}

	case step.Fill != nil:
		h := page.ByPlaceholder(step.Fill.Placeholder)
		if err := h.WaitVisible(timeout); err != nil {
			return classify(ErrElementNotFound, err)
		}
		if err := h.Fill(*step.Fill.Value, timeout); err != nil {
			return classify(ErrElementNotFound, err)
		}

	case step.Click != nil:
		h := page.ByRole(step.Click.Role, step.Click.Name)
		if err := h.WaitVisible(timeout); err != nil {
			return classify(ErrElementNotFound, err)
		}
		if err := h.WaitEnabled(timeout); err != nil {
			return classify(ErrTimeout, err)
		}
		if err := h.Click(timeout); err != nil {
			return classify(ErrElementNotFound, err)
		}

	case step.Wait != nil:
		var h browser.Handle
		if step.Wait.Selector != "" {
			h = page.BySelector(step.Wait.Selector)
		} else {
			h = page.ByText(step.Wait.Text)
		}
		if err := h.WaitVisible(step.Wait.Deadline(timeout)); err != nil {
			return classify(ErrTimeout, err)
		}
	}
	return nil
}
