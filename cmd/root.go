// Copyright (c) 2025 Gabi CLI contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the gabi CLI.
// It wires flags and environment fallback into one resolved configuration,
// then runs a single probe/submit/format sequence against the remote service
// using the Cobra CLI framework.
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"gabi/cli/internal/config"
	cliErrors "gabi/cli/internal/errors"
	"gabi/cli/internal/format"
	"gabi/cli/internal/gabi"
	"gabi/cli/internal/httperrors"
)

var opts config.Options

// rootCmd represents the base command. The whole flow is flag-driven: resolve
// inputs, probe the service, optionally submit a query, render the result.
var rootCmd = &cobra.Command{
	Use:   "gabi",
	Short: "Run SQL against a remote gabi query service",
	Long: `gabi is a command-line client for a remote SQL query service.

It submits a query over HTTP with bearer-token authentication and writes the
tabular result as quote-all delimited text or as raw JSON, to stdout or a
file. Before any query is submitted the service's healthcheck endpoint is
probed; a service that is not up never sees the query.`,
	Example: `  # Run an inline query against the service from the environment
  export GABI_URL=https://gabi.example.com
  export OCP_CONSOLE_TOKEN=sha256~...
  gabi -q "select id, name from users limit 10" -o users.tsv

  # Read the query from a file, write comma-separated output
  gabi -u https://gabi.example.com -t "$TOKEN" -Q report.sql --sep ,

  # Pipe a query in and keep the raw JSON result
  echo "select count(*) from events" | gabi -q - --no-csv

  # Liveness check only
  gabi --ping`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the CLI application and returns the first error encountered.
// Error presentation and the process exit code are handled by the caller.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&opts.URL, "url", "u", "", "Base URL of the gabi service (env: GABI_URL)")
	rootCmd.Flags().StringVarP(&opts.Token, "token", "t", "", "Bearer token for authentication (env: OCP_CONSOLE_TOKEN)")
	rootCmd.Flags().StringVarP(&opts.Query, "query", "q", "", "SQL query to execute ('-' reads standard input)")
	rootCmd.Flags().StringVarP(&opts.QueryFile, "query-file", "Q", "", "File containing the SQL query (overrides --query)")
	rootCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&opts.Separator, "sep", "\t", "Field separator for delimited output")
	rootCmd.Flags().BoolVar(&opts.RawJSON, "no-csv", false, "Write the raw result JSON instead of delimited text")
	rootCmd.Flags().BoolVar(&opts.PingOnly, "ping", false, "Check service health and exit")
	rootCmd.Flags().BoolVar(&opts.Debug, "debug", false, "Enable debug output")
	rootCmd.Flags().DurationVar(&opts.Timeout, "timeout", gabi.DefaultTimeout, "HTTP request timeout")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(opts, os.Stdin)
	if err != nil {
		if cliErrors.IsKind(err, cliErrors.ConfigInvalid) {
			// User-fixable: show how to invoke the tool, no stack trace.
			_ = cmd.Usage()
		}
		return err
	}

	if cfg.Debug {
		pterm.EnableDebugMessages()
		pterm.Debug.Printfln("service URL: %s", cfg.URL)
		pterm.Debug.Printfln("output: %s", orStdout(cfg.Output))
	}

	ctx := context.Background()
	client := gabi.New(cfg.URL, cfg.Token, cfg.Timeout)

	pterm.Debug.Printfln("probing %s", httperrors.ExtractHostFromURL(cfg.URL))
	if err := client.Ping(ctx); err != nil {
		return cliErrors.Wrap(cliErrors.ServiceFailed, "healthcheck failed",
			httperrors.Explain(err, "checking service health"))
	}

	if cfg.PingOnly {
		pterm.Success.Println("service is up")
		return nil
	}
	if cfg.Query == "" {
		pterm.Info.Println("no query provided, nothing to do")
		return nil
	}

	start := time.Now()
	res, err := client.Query(ctx, cfg.Query)
	if err != nil {
		return cliErrors.Wrap(cliErrors.ServiceFailed, "query failed",
			httperrors.Explain(err, "submitting the query"))
	}
	pterm.Debug.Printfln("query answered in %s", time.Since(start).Round(time.Millisecond))

	if err := format.Write(cfg.Output, res, cfg.Separator, cfg.CSV); err != nil {
		return err
	}
	if cfg.Output != "" && res.HasRows() {
		pterm.Success.Printfln("results written to %s", cfg.Output)
	}
	return nil
}

func orStdout(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
