package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"BrandMentionScanner/internal/analysis"
	"BrandMentionScanner/internal/domain"
	"BrandMentionScanner/internal/ports"
	"BrandMentionScanner/internal/report"
)

const (
	previewRows      = 6
	brandSummaryRows = 20
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.RecordSource
	Responder  ports.ResponseProvider
	Resolver   ports.PageResolver
	Repository ports.RunRepository
	Printer    *report.Printer
	Logger     *slog.Logger
}

// Pipeline implements the brand-mention analysis workflow.
type Pipeline struct {
	source     ports.RecordSource
	responder  ports.ResponseProvider
	resolver   ports.PageResolver
	repository ports.RunRepository
	printer    *report.Printer
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	printer := deps.Printer
	if printer == nil {
		printer = report.NewPrinter(nil)
	}
	return &Pipeline{
		source:     deps.Source,
		responder:  deps.Responder,
		resolver:   deps.Resolver,
		repository: deps.Repository,
		printer:    printer,
		logger:     deps.Logger,
	}
}

// Run executes the load → prompt → respond → label → summarize → resolve →
// test sequence once, archiving the labeled table when a repository is wired.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.source == nil {
		return nil
	}

	records, err := p.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	p.info("records loaded", "count", len(records))
	p.printer.RecordPreview("Input", records, previewRows)

	buildPrompts(records)
	p.printer.RecordPreview("Prompts", records, previewRows)

	p.seedResponses(ctx, records)
	analysis.LabelMentions(records)
	p.printer.RecordPreview("Labeled responses", records, previewRows)

	p.printer.BrandSummaries(analysis.SummarizeByBrand(records), brandSummaryRows)
	p.printer.CategorySummaries(analysis.SummarizeByCategory(records))

	p.resolvePages(ctx, records)

	p.printer.Association(analysis.TestAssociation(records))

	if p.repository != nil {
		runID := uuid.NewString()
		if err := p.repository.SaveRun(ctx, runID, records); err != nil {
			return fmt.Errorf("archive run %s: %w", runID, err)
		}
		p.info("run archived", "run_id", runID, "records", len(records))
	}

	return nil
}

func buildPrompts(records []domain.Record) {
	for i := range records {
		records[i].Prompt = fmt.Sprintf("Is %s a good %s brand?", records[i].Brand, records[i].Category)
	}
}

// seedResponses fills the Response field per record. A provider failure is
// logged and leaves the response empty; it never stops the run.
func (p *Pipeline) seedResponses(ctx context.Context, records []domain.Record) {
	if p.responder == nil {
		return
	}

	for i := range records {
		text, err := p.responder.Respond(ctx, records[i])
		if err != nil {
			p.warn("response failed", "brand", records[i].Brand, "error", err)
			continue
		}
		records[i].Response = text
	}
}

// resolvePages looks up each unique brand once, in sorted order, and maps the
// outcome back onto every record of that brand.
func (p *Pipeline) resolvePages(ctx context.Context, records []domain.Record) {
	if p.resolver == nil {
		return
	}

	brands := uniqueBrands(records)
	resolved := make(map[string]domain.BrandPage, len(brands))
	for _, brand := range brands {
		page := p.resolver.Resolve(ctx, brand)
		resolved[brand] = page
		p.printer.Resolution(page)
	}

	for i := range records {
		page := resolved[records[i].Brand]
		records[i].HasWiki = page.HasWiki
		records[i].WikiTitle = page.Title
	}
}

func uniqueBrands(records []domain.Record) []string {
	seen := map[string]struct{}{}
	brands := make([]string, 0)
	for _, rec := range records {
		if _, ok := seen[rec.Brand]; ok {
			continue
		}
		seen[rec.Brand] = struct{}{}
		brands = append(brands, rec.Brand)
	}
	sort.Strings(brands)
	return brands
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
