package terminal

import (
	"io"
	"os"

	"github.com/de-tools/health-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/health-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	loader   commands.DocumentLoader
	compiler commands.ReportCompiler
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Loader   commands.DocumentLoader
	Compiler commands.ReportCompiler
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		loader:   opts.Loader,
		compiler: opts.Compiler,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// Command exposes the root command so callers can attach flags or set arguments.
func (cli *CLI) Command() *cobra.Command {
	return cli.rootCmd
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cli",
		Short:         "Hospital economics reporting tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewReportCmd(cli.loader, cli.compiler))
	cmd.AddCommand(commands.NewSummaryCmd(cli.loader, cli.compiler, cli.reporter))

	return cmd
}
