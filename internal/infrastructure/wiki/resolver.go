package wiki

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"BrandMentionScanner/internal/domain"
	"BrandMentionScanner/internal/ports"
)

const (
	maxDisambiguationTries = 3
	maxSearchTries         = 5
)

// Resolver implements the alias/disambiguation/search fallback chain on top
// of the MediaWiki client. Lookups are throttled between successive brands.
type Resolver struct {
	client   *Client
	aliases  map[string][]string
	throttle time.Duration
	logger   *slog.Logger
	last     time.Time
}

var _ ports.PageResolver = (*Resolver)(nil)

// NewResolver wires the client with the alias table and throttle interval.
func NewResolver(client *Client, aliases map[string][]string, throttle time.Duration, logger *slog.Logger) *Resolver {
	return &Resolver{
		client:   client,
		aliases:  aliases,
		throttle: throttle,
		logger:   logger,
	}
}

// Resolve walks candidate titles (aliases first, raw brand last) through
// direct fetches, dips into disambiguation options on ambiguity, and falls
// back to free-text search when every candidate fails. All lookup errors are
// classified and logged; none aborts the chain.
func (r *Resolver) Resolve(ctx context.Context, brand string) domain.BrandPage {
	r.wait(ctx)

	for _, title := range candidateTitles(brand, r.aliases[brand]) {
		page, err := r.client.FetchPage(ctx, title)
		if err == nil {
			return domain.BrandPage{Brand: brand, HasWiki: 1, Title: page.Title}
		}

		var ambiguous *AmbiguousTitleError
		switch {
		case errors.As(err, &ambiguous):
			if resolved, ok := r.tryDisambiguation(ctx, brand, ambiguous.Options); ok {
				return resolved
			}
		case errors.Is(err, ErrPageNotFound):
			r.debug("candidate missing", "brand", brand, "title", title)
		default:
			r.debug("candidate lookup failed", "brand", brand, "title", title, "error", err)
		}
	}

	hits, err := r.client.Search(ctx, brand, maxSearchTries)
	if err != nil {
		r.debug("search fallback failed", "brand", brand, "error", err)
		return domain.BrandPage{Brand: brand}
	}

	for _, hit := range hits {
		page, err := r.client.FetchPage(ctx, hit)
		if err != nil {
			r.debug("search hit failed", "brand", brand, "title", hit, "error", err)
			continue
		}
		return domain.BrandPage{Brand: brand, HasWiki: 1, Title: page.Title}
	}

	return domain.BrandPage{Brand: brand}
}

// tryDisambiguation ranks the options by (does-not-contain-brand, length) and
// attempts the top few as direct fetches.
func (r *Resolver) tryDisambiguation(ctx context.Context, brand string, options []string) (domain.BrandPage, bool) {
	ranked := rankOptions(brand, options)
	if len(ranked) > maxDisambiguationTries {
		ranked = ranked[:maxDisambiguationTries]
	}

	for _, cand := range ranked {
		page, err := r.client.FetchPage(ctx, cand)
		if err != nil {
			r.debug("disambiguation option failed", "brand", brand, "title", cand, "error", err)
			continue
		}
		return domain.BrandPage{Brand: brand, HasWiki: 1, Title: page.Title}, true
	}

	return domain.BrandPage{}, false
}

// wait enforces the configured delay since the previous brand lookup.
func (r *Resolver) wait(ctx context.Context) {
	if r.throttle > 0 && !r.last.IsZero() {
		if remaining := time.Until(r.last.Add(r.throttle)); remaining > 0 {
			select {
			case <-time.After(remaining):
			case <-ctx.Done():
			}
		}
	}
	r.last = time.Now()
}

// candidateTitles returns aliases followed by the raw brand name, with
// duplicates removed while preserving first occurrence.
func candidateTitles(brand string, aliases []string) []string {
	titles := make([]string, 0, len(aliases)+1)
	seen := map[string]struct{}{}
	for _, title := range append(append([]string{}, aliases...), brand) {
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}

// rankOptions orders disambiguation candidates so that options containing the
// brand name come first, shorter ones before longer ones.
func rankOptions(brand string, options []string) []string {
	ranked := append([]string{}, options...)
	lower := strings.ToLower(brand)
	sort.SliceStable(ranked, func(i, j int) bool {
		iMiss := !strings.Contains(strings.ToLower(ranked[i]), lower)
		jMiss := !strings.Contains(strings.ToLower(ranked[j]), lower)
		if iMiss != jMiss {
			return !iMiss
		}
		return len(ranked[i]) < len(ranked[j])
	})
	return ranked
}

func (r *Resolver) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
