package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"greenwich/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port      int
	Workspace string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the run API and recorded artifacts over HTTP",
		Long: `Start an HTTP server that triggers scenario runs and exposes their
records: POST /v1/runs to execute, GET /v1/runs for the recorded run
IDs, GET /v1/runs/{id} for a manifest, GET /runs/ for raw artifacts,
GET /health for liveness.

Examples:
  verify serve
  verify serve --port 9090 --workspace ./out`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 8787, "port to listen on")
	cmd.Flags().StringVar(&opts.Workspace, "workspace", ".", "directory holding run records")

	return cmd
}

func runServe(opts *ServeOptions) error {
	log := opts.logger()
	srv := server.New(opts.Workspace, server.Options{Logger: log})

	addr := fmt.Sprintf(":%d", opts.Port)
	log.Info("serving", "addr", addr, "workspace", opts.Workspace)
	if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
		return WrapExitError(ExitCommandError, "serve", err)
	}
	return nil
}
