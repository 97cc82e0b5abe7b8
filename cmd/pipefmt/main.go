// Package main is the entry point for pipefmt.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/pipefmt/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exitCode := runner.ExitOK
	cmd := newRootCmd(&exitCode)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pipefmt: %v\n", err)
		return runner.ExitError
	}
	return exitCode
}

func newRootCmd(exitCode *int) *cobra.Command {
	opts := &runner.Options{}

	cmd := &cobra.Command{
		Use:   "pipefmt [flags] [files...]",
		Short: "Format and lint Logstash pipeline configuration",
		Long: `pipefmt re-indents Logstash pipeline configuration files, repairs common
syntax mistakes and reports structural problems.

With no files, pipefmt reads from stdin and writes the formatted text to
stdout. Formatted files are printed to stdout unless --write, --check or
--diff is given.`,
		Version:       fmt.Sprintf("%s (%s) %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Files = args
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()
			opts.Stderr = cmd.ErrOrStderr()
			*exitCode = runner.Run(cmd.Context(), opts)
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	f := cmd.Flags()
	f.BoolVar(&opts.Check, "check", false, "exit 1 if any file is not formatted or has structural errors")
	f.BoolVar(&opts.Diff, "diff", false, "print unified diff of changes")
	f.BoolVarP(&opts.Write, "write", "w", false, "write result to file instead of stdout")
	f.StringVar(&opts.ConfigPath, "config", "", "path to config file")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress diagnostics")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "print files as they are processed")
	f.StringVar(&opts.Format, "format", "", "report format (text|json), overrides config")
	f.StringVar(&opts.Color, "color", "", "colorize output (auto|on|off), overrides config")
	f.IntVarP(&opts.Jobs, "jobs", "j", 0, "number of files formatted in parallel (0 = GOMAXPROCS)")

	return cmd
}
