package ports

import (
	"context"

	"BrandMentionScanner/internal/domain"
)

// RecordSource loads the brand/category table from an input medium.
type RecordSource interface {
	Load(ctx context.Context) ([]domain.Record, error)
}

// ResponseProvider produces the response text for a single prompted record.
type ResponseProvider interface {
	Respond(ctx context.Context, record domain.Record) (string, error)
}

// PageResolver decides whether a brand has a resolvable encyclopedia page.
// Resolution never fails; an exhausted fallback chain yields HasWiki=0.
type PageResolver interface {
	Resolve(ctx context.Context, brand string) domain.BrandPage
}

// RunRepository archives the fully labeled records of a completed run.
type RunRepository interface {
	SaveRun(ctx context.Context, runID string, records []domain.Record) error
}
