package report

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/telemetry"
	"github.com/de-tools/health-atlas/pkg/services/views"
	"github.com/rs/zerolog"
)

// Archiver stores an encoded report and returns its location.
type Archiver interface {
	Archive(ctx context.Context, filename, contentType string, payload []byte) (string, error)
}

// Compiler selects, assembles, serializes and names reports.
type Compiler struct {
	transformer *views.Transformer
	encoders    Registry
	archiver    Archiver
}

// NewCompiler accepts a nil archiver, in which case archive requests are ignored.
func NewCompiler(transformer *views.Transformer, encoders Registry, archiver Archiver) *Compiler {
	if encoders == nil {
		encoders = DefaultRegistry()
	}
	return &Compiler{
		transformer: transformer,
		encoders:    encoders,
		archiver:    archiver,
	}
}

// Compile validates the request before any assembly, so an invalid request never produces
// partial output.
func (c *Compiler) Compile(ctx context.Context, loaded domain.LoadedDocument, req Request) (Result, error) {
	tmpl, err := ParseTemplate(req.Template)
	if err != nil {
		return Result{}, err
	}
	format, err := ParseFormat(req.Format)
	if err != nil {
		return Result{}, err
	}
	encoder, err := c.encoders.Get(format)
	if err != nil {
		return Result{}, err
	}
	areas, err := ParseAreas(req.Areas)
	if err != nil {
		return Result{}, err
	}

	report, err := c.Assemble(loaded, tmpl, req, areas)
	if err != nil {
		return Result{}, err
	}

	payload, err := encoder.Encode(report)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	result := Result{
		Payload:     payload,
		Filename:    fmt.Sprintf("%s_%s.%s", tmpl.FilenamePrefix(), c.transformer.Now().Format(time.DateOnly), encoder.Extension()),
		ContentType: encoder.ContentType(),
	}
	telemetry.RecordReport(string(tmpl), string(format))

	if req.Archive && c.archiver != nil {
		location, err := c.archiver.Archive(ctx, result.Filename, result.ContentType, payload)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("filename", result.Filename).Msg("failed to archive report")
		} else {
			result.ArchiveLocation = location
		}
	}

	return result, nil
}

// Assemble builds the ordered section list for tmpl. Areas applies to the areas and custom
// templates; an empty list means every area for the areas template.
func (c *Compiler) Assemble(loaded domain.LoadedDocument, tmpl Template, req Request, areas []domain.AreaKind) (*domain.Report, error) {
	if loaded.Document == nil {
		return nil, fmt.Errorf("%w: no document", ErrGenerationFailed)
	}

	a := &assembly{
		transformer: c.transformer,
		loaded:      loaded,
		doc:         loaded.Document,
		request:     req,
		areas:       areas,
		meta:        newMetadata(loaded, views.ModelPrecision(loaded.Document), c.transformer.Now()),
	}

	var b builder
	switch tmpl {
	case TemplateFinancial:
		a.financial(&b)
	case TemplateAreas:
		if len(a.areas) == 0 {
			a.areas = domain.AllAreas()
		}
		if err := a.areaSections(&b); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}
	case TemplateServices:
		a.services(&b)
	case TemplateTrends:
		a.trends(&b)
	case TemplateCustom:
		a.custom(&b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, tmpl)
	}
	if b.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, b.err)
	}

	return &domain.Report{
		Template: string(tmpl),
		Title:    tmpl.Title(),
		Sections: b.sections,
	}, nil
}

// ParseAreas keeps request order and drops repeats.
func ParseAreas(names []string) ([]domain.AreaKind, error) {
	kinds := make([]domain.AreaKind, 0, len(names))
	for _, n := range names {
		kind, err := domain.ParseAreaKind(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", views.ErrAreaNotFound, n)
		}
		if !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}
