package app

import (
	"context"
	"fmt"
	"log/slog"

	"BrandMentionScanner/internal/config"
	"BrandMentionScanner/internal/infrastructure/csvsource"
	"BrandMentionScanner/internal/infrastructure/llm"
	"BrandMentionScanner/internal/infrastructure/storage"
	"BrandMentionScanner/internal/infrastructure/wiki"
	"BrandMentionScanner/internal/logging"
	"BrandMentionScanner/internal/ports"
	"BrandMentionScanner/internal/report"
	"BrandMentionScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	archive  *storage.SQLiteRepository
}

// New builds a minimal runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	source := csvsource.NewLoader(cfg.Input.CSVPath, cfg.Input.SeparatorRune())

	var responder ports.ResponseProvider = llm.NewStubProvider(nil)
	if cfg.ChatGPT.APIKey != "" {
		responder = llm.NewChatGPTClient(cfg.ChatGPT)
	}

	wikiClient := wiki.NewClient(cfg.Wiki.APIURL, nil)
	resolver := wiki.NewResolver(wikiClient, cfg.Wiki.Aliases, cfg.Wiki.Throttle(),
		baseLogger.With("component", "wiki"))

	var archive *storage.SQLiteRepository
	var repository ports.RunRepository
	if cfg.Storage.Path != "" {
		repo, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open run archive: %w", err)
		}
		archive = repo
		repository = repo
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Responder:  responder,
		Resolver:   resolver,
		Repository: repository,
		Printer:    report.NewPrinter(nil),
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, archive: archive}, nil
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}
	defer a.archive.Close()

	return a.pipeline.Run(ctx)
}
