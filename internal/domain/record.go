package domain

// Record is a single brand/category row flowing through the pipeline.
// Fields after Category are filled in progressively by each stage.
type Record struct {
	Brand     string
	Category  string
	Prompt    string
	Response  string
	Mentioned int
	HasWiki   int
	WikiTitle string
}

// BrandPage is the resolution outcome for one unique brand.
type BrandPage struct {
	Brand   string
	HasWiki int
	Title   string
}

// BrandSummary aggregates mention outcomes per (Category, Brand) group.
type BrandSummary struct {
	Category          string
	Brand             string
	Prompts           int
	NonEmptyResponses int
	Mentions          int
	MentionRate       float64
}

// CategorySummary aggregates mention outcomes per category.
type CategorySummary struct {
	Category          string
	Prompts           int
	NonEmptyResponses int
	Mentions          int
	MentionRate       float64
}

// ContingencyTable is the HasWiki x Mentioned crosstab, built only over the
// levels actually observed in the data.
type ContingencyTable struct {
	RowLevels []int
	ColLevels []int
	Counts    [][]int
}

// Total sums all cells of the table.
func (t ContingencyTable) Total() int {
	total := 0
	for _, row := range t.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

// AssociationResult carries the chi-square test output and effect size.
type AssociationResult struct {
	Table          ContingencyTable
	ChiSquare      float64
	PValue         float64
	Dof            int
	Phi            float64
	RatesByHasWiki map[int]float64
}
