package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"greenwich/internal/scenario"
)

// NewScenariosCommand creates the scenarios command.
func NewScenariosCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scenarios",
		Short:         "List the built-in scenarios",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listScenarios(rootOpts, cmd)
		},
	}
	return cmd
}

func listScenarios(opts *RootOptions, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	builtins := scenario.Builtins()

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(builtins); err != nil {
			return fmt.Errorf("encode scenarios: %w", err)
		}
		return nil
	}

	for _, cfg := range builtins {
		fmt.Fprintf(w, "%-24s %s\n", cfg.Name, cfg.Description)
	}
	return nil
}
