package analysis

import (
	"sort"
	"strings"

	"BrandMentionScanner/internal/domain"
)

// LabelMentions fills the Mentioned flag on every record. A response that is
// empty after trimming whitespace always yields 0, whatever the brand name.
func LabelMentions(records []domain.Record) {
	for i := range records {
		records[i].Mentioned = mentionFlag(records[i].Brand, records[i].Response)
	}
}

func mentionFlag(brand, response string) int {
	if strings.TrimSpace(response) == "" {
		return 0
	}
	if strings.Contains(strings.ToLower(response), strings.ToLower(brand)) {
		return 1
	}
	return 0
}

// SummarizeByBrand aggregates mention outcomes per (Category, Brand) group,
// sorted by category ascending then mention rate descending.
func SummarizeByBrand(records []domain.Record) []domain.BrandSummary {
	type key struct {
		category string
		brand    string
	}

	groups := map[key]*domain.BrandSummary{}
	order := make([]key, 0)
	for _, rec := range records {
		k := key{category: rec.Category, brand: rec.Brand}
		group, ok := groups[k]
		if !ok {
			group = &domain.BrandSummary{Category: rec.Category, Brand: rec.Brand}
			groups[k] = group
			order = append(order, k)
		}
		accumulate(rec, &group.Prompts, &group.NonEmptyResponses, &group.Mentions)
	}

	summaries := make([]domain.BrandSummary, 0, len(order))
	for _, k := range order {
		group := groups[k]
		group.MentionRate = rate(group.Mentions, group.NonEmptyResponses)
		summaries = append(summaries, *group)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Category != summaries[j].Category {
			return summaries[i].Category < summaries[j].Category
		}
		if summaries[i].MentionRate != summaries[j].MentionRate {
			return summaries[i].MentionRate > summaries[j].MentionRate
		}
		return summaries[i].Brand < summaries[j].Brand
	})

	return summaries
}

// SummarizeByCategory aggregates mention outcomes per category, sorted by
// mention rate descending.
func SummarizeByCategory(records []domain.Record) []domain.CategorySummary {
	groups := map[string]*domain.CategorySummary{}
	order := make([]string, 0)
	for _, rec := range records {
		group, ok := groups[rec.Category]
		if !ok {
			group = &domain.CategorySummary{Category: rec.Category}
			groups[rec.Category] = group
			order = append(order, rec.Category)
		}
		accumulate(rec, &group.Prompts, &group.NonEmptyResponses, &group.Mentions)
	}

	summaries := make([]domain.CategorySummary, 0, len(order))
	for _, category := range order {
		group := groups[category]
		group.MentionRate = rate(group.Mentions, group.NonEmptyResponses)
		summaries = append(summaries, *group)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].MentionRate != summaries[j].MentionRate {
			return summaries[i].MentionRate > summaries[j].MentionRate
		}
		return summaries[i].Category < summaries[j].Category
	})

	return summaries
}

func accumulate(rec domain.Record, prompts, nonEmpty, mentions *int) {
	*prompts++
	if strings.TrimSpace(rec.Response) != "" {
		*nonEmpty++
	}
	*mentions += rec.Mentioned
}

func rate(mentions, nonEmpty int) float64 {
	if nonEmpty == 0 {
		return 0
	}
	return float64(mentions) / float64(nonEmpty)
}
