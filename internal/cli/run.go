package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"greenwich/internal/runner"
	"greenwich/internal/scenario"
)

// executeScenario runs one scenario; tests swap in a stub.
var executeScenario = runner.Run

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Headless  bool
	Timeout   time.Duration
	Workspace string
}

// RunRecord holds the result of a single scenario run.
type RunRecord struct {
	Name    string         `json:"name"`
	Pass    bool           `json:"pass"`
	Error   string         `json:"error,omitempty"`
	Outcome runner.Outcome `json:"outcome"`
}

// RunReport aggregates results across every scenario of an invocation.
type RunReport struct {
	Runs   []RunRecord `json:"runs"`
	Passed int         `json:"passed"`
	Failed int         `json:"failed"`
	Total  int         `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario>...",
		Short: "Execute scenarios in a browser and capture screenshots",
		Long: `Run one or more scenarios, each in its own isolated browser session.
A scenario argument is either a built-in name (see "verify scenarios")
or a path to a scenario YAML file.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (unknown scenario, invalid file, etc.)

Examples:
  verify run location-dashboard
  verify run permission-denied location-dashboard
  verify run scenarios/location_dashboard.yaml --workspace ./out
  verify run location-dashboard --headless=false --timeout 45s`,
		Args:          usageArgs(cobra.MinimumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Headless, "headless", true, "run the browser headless")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "per-step timeout")
	cmd.Flags().StringVar(&opts.Workspace, "workspace", "", "record runs under <dir>/runs (manifest, log, artifacts)")

	return cmd
}

func runScenarios(opts *RunOptions, args []string, cmd *cobra.Command) error {
	// Every argument must resolve before the first browser launches, so
	// a typo in the last scenario cannot waste the runs before it.
	configs := make([]*scenario.Config, 0, len(args))
	for _, arg := range args {
		cfg, err := resolveScenario(arg)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("resolve scenario %q", arg), err)
		}
		configs = append(configs, cfg)
	}

	w := cmd.OutOrStdout()
	report := RunReport{
		Runs:  make([]RunRecord, 0, len(configs)),
		Total: len(configs),
	}

	for _, cfg := range configs {
		out, err := executeScenario(cfg, runner.Options{
			Headless:  opts.Headless,
			Timeout:   opts.Timeout,
			Workspace: opts.Workspace,
			Logger:    opts.logger(),
		})

		rec := RunRecord{Name: cfg.Name, Outcome: out}
		if err != nil {
			rec.Error = err.Error()
			report.Failed++
			if opts.Format != "json" {
				fmt.Fprintf(w, "✗ %s\n", cfg.Name)
				fmt.Fprintf(w, "  %v\n", err)
			}
		} else {
			rec.Pass = true
			report.Passed++
			if opts.Format != "json" {
				fmt.Fprintf(w, "✓ %s (screenshot: %s)\n", cfg.Name, out.Screenshot)
			}
		}
		report.Runs = append(report.Runs, rec)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		fmt.Fprintf(w, "Run Summary: %d passed, %d failed, %d total\n", report.Passed, report.Failed, report.Total)
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", report.Failed))
	}
	return nil
}
