package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

const commandTimeout = 60 * time.Second

type DocumentLoader interface {
	Load(ctx context.Context) (domain.LoadedDocument, error)
}

type ReportCompiler interface {
	Compile(ctx context.Context, loaded domain.LoadedDocument, req report.Request) (report.Result, error)
	Assemble(loaded domain.LoadedDocument, tmpl report.Template, req report.Request, areas []domain.AreaKind) (*domain.Report, error)
}

// reportFlags are shared by every command that selects a report.
type reportFlags struct {
	template    string
	period      string
	areas       []string
	comparative bool
	predictions bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.template, "template", "", "Report template (financial, areas, services, trends, custom)")
	cmd.Flags().StringVar(&f.period, "period", "", "Free-form period label recorded in custom reports")
	cmd.Flags().StringSliceVar(&f.areas, "areas", nil, "Areas to include (emergency, inpatient, laboratory)")
	cmd.Flags().BoolVar(&f.comparative, "comparative", false, "Include month-over-month comparison")
	cmd.Flags().BoolVar(&f.predictions, "predictions", false, "Include predictions when available")

	_ = cmd.MarkFlagRequired("template")
}

func (f *reportFlags) request(format string) report.Request {
	return report.Request{
		Template:           f.template,
		Format:             format,
		Period:             f.period,
		Areas:              f.areas,
		IncludeComparative: f.comparative,
		IncludePredictions: f.predictions,
	}
}

type ReportCmd struct {
	flags     reportFlags
	format    string
	outputDir string
	archive   bool
	loader    DocumentLoader
	compiler  ReportCompiler
}

func NewReportCmd(loader DocumentLoader, compiler ReportCompiler) *cobra.Command {
	rc := &ReportCmd{loader: loader, compiler: compiler}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compile a report and write it to disk",
		RunE:  rc.run,
	}

	rc.flags.register(cmd)
	cmd.Flags().StringVar(&rc.format, "format", "xlsx", "Output format (xlsx, csv, json, yaml)")
	cmd.Flags().StringVarP(&rc.outputDir, "output", "o", ".", "Directory the report is written to")
	cmd.Flags().BoolVar(&rc.archive, "archive", false, "Also archive the report to object storage")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	loaded, err := rc.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load analytics document: %w", err)
	}

	req := rc.flags.request(rc.format)
	req.Archive = rc.archive
	result, err := rc.compiler.Compile(ctx, loaded, req)
	if err != nil {
		return fmt.Errorf("failed to compile report: %w", err)
	}

	path := filepath.Join(rc.outputDir, result.Filename)
	if err := os.WriteFile(path, result.Payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%s source)\n", path, loaded.Source)
	if result.ArchiveLocation != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Archived at %s\n", result.ArchiveLocation)
	}
	return nil
}
