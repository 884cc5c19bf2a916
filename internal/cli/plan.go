package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"greenwich/internal/scenario"
)

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <scenario>",
		Short: "Print what a scenario would do, without opening a browser",
		Long: `Resolve and validate a scenario, then print its step plan.

Examples:
  verify plan location-dashboard
  verify plan scenarios/permission_denied.yaml --format json`,
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runPlan(opts *RootOptions, arg string, cmd *cobra.Command) error {
	cfg, err := resolveScenario(arg)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("resolve scenario %q", arg), err)
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		return nil
	}

	fmt.Fprint(w, RenderPlan(cfg))
	return nil
}

// RenderPlan formats a scenario as a numbered, human-readable plan.
// Navigation is step 0; the configured steps follow in order.
func RenderPlan(cfg *scenario.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n", cfg.Name)
	fmt.Fprintf(&b, "  %s\n", cfg.Description)
	fmt.Fprintf(&b, "Target: %s\n", cfg.TargetURL)
	switch {
	case cfg.Permissions == nil:
		fmt.Fprintln(&b, "Permissions: browser defaults")
	case len(cfg.Permissions.Grants) == 0:
		fmt.Fprintln(&b, "Permissions: deny all")
	default:
		fmt.Fprintf(&b, "Permissions: grant %s\n", strings.Join(cfg.Permissions.Grants, ", "))
	}
	if cfg.Geolocation != nil {
		fmt.Fprintf(&b, "Geolocation: %.4f, %.4f\n", cfg.Geolocation.Latitude, cfg.Geolocation.Longitude)
	}
	fmt.Fprintln(&b, "Steps:")
	fmt.Fprintf(&b, "  0. navigate to %s\n", cfg.TargetURL)
	for i := range cfg.Steps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, cfg.Steps[i].Describe())
	}
	fmt.Fprintf(&b, "Screenshot: %s\n", cfg.Screenshot.Path)
	return b.String()
}
