package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"BrandMentionScanner/internal/domain"
)

// Crosstab builds the HasWiki x Mentioned contingency table over the levels
// actually observed in the records, both axes ascending.
func Crosstab(records []domain.Record) domain.ContingencyTable {
	rowSet := map[int]struct{}{}
	colSet := map[int]struct{}{}
	for _, rec := range records {
		rowSet[rec.HasWiki] = struct{}{}
		colSet[rec.Mentioned] = struct{}{}
	}

	table := domain.ContingencyTable{
		RowLevels: sortedLevels(rowSet),
		ColLevels: sortedLevels(colSet),
	}

	rowIdx := map[int]int{}
	for i, level := range table.RowLevels {
		rowIdx[level] = i
	}
	colIdx := map[int]int{}
	for i, level := range table.ColLevels {
		colIdx[level] = i
	}

	table.Counts = make([][]int, len(table.RowLevels))
	for i := range table.Counts {
		table.Counts[i] = make([]int, len(table.ColLevels))
	}
	for _, rec := range records {
		table.Counts[rowIdx[rec.HasWiki]][colIdx[rec.Mentioned]]++
	}

	return table
}

// TestAssociation runs the Pearson chi-square test of independence on
// HasWiki x Mentioned and derives the phi effect size. Degenerate input
// (no records, or a table without both levels on an axis) reports
// chi2=0, p=1, dof=0 rather than failing.
func TestAssociation(records []domain.Record) domain.AssociationResult {
	table := Crosstab(records)
	result := domain.AssociationResult{Table: table, PValue: 1}

	n := table.Total()
	if n == 0 {
		return result
	}

	rows := len(table.RowLevels)
	cols := len(table.ColLevels)

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	for i, row := range table.Counts {
		for j, count := range row {
			rowTotals[i] += float64(count)
			colTotals[j] += float64(count)
		}
	}

	chi2 := 0.0
	for i, row := range table.Counts {
		for j, count := range row {
			expected := rowTotals[i] * colTotals[j] / float64(n)
			diff := float64(count) - expected
			chi2 += diff * diff / expected
		}
	}

	result.ChiSquare = chi2
	result.Dof = (rows - 1) * (cols - 1)
	if result.Dof > 0 {
		result.PValue = distuv.ChiSquared{K: float64(result.Dof)}.Survival(chi2)
	}
	result.Phi = math.Sqrt(chi2 / float64(n))
	result.RatesByHasWiki = mentionRatesByHasWiki(records)

	return result
}

// mentionRatesByHasWiki computes the mean Mentioned value per HasWiki group.
func mentionRatesByHasWiki(records []domain.Record) map[int]float64 {
	counts := map[int]int{}
	sums := map[int]int{}
	for _, rec := range records {
		counts[rec.HasWiki]++
		sums[rec.HasWiki] += rec.Mentioned
	}

	rates := make(map[int]float64, len(counts))
	for level, count := range counts {
		rates[level] = float64(sums[level]) / float64(count)
	}
	return rates
}

func sortedLevels(set map[int]struct{}) []int {
	levels := make([]int, 0, len(set))
	for level := range set {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}
