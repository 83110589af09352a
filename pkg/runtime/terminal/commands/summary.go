package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/health-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/health-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	flags    reportFlags
	loader   DocumentLoader
	compiler ReportCompiler
	reporter *export.Reporter
}

func NewSummaryCmd(loader DocumentLoader, compiler ReportCompiler, reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{loader: loader, compiler: compiler, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a report as tables",
		RunE:  sc.run,
	}

	sc.flags.register(cmd)

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	tmpl, err := report.ParseTemplate(sc.flags.template)
	if err != nil {
		return err
	}
	areas, err := report.ParseAreas(sc.flags.areas)
	if err != nil {
		return err
	}

	loaded, err := sc.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load analytics document: %w", err)
	}

	r, err := sc.compiler.Assemble(loaded, tmpl, sc.flags.request(""), areas)
	if err != nil {
		return fmt.Errorf("failed to assemble report: %w", err)
	}

	return sc.reporter.Handle(r)
}
