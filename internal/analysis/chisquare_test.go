package analysis

import (
	"math"
	"testing"

	"BrandMentionScanner/internal/domain"
)

func block(hasWiki, mentioned, count int) []domain.Record {
	records := make([]domain.Record, count)
	for i := range records {
		records[i] = domain.Record{HasWiki: hasWiki, Mentioned: mentioned}
	}
	return records
}

func TestAssociationEmpty(t *testing.T) {
	t.Parallel()

	result := TestAssociation(nil)
	if result.ChiSquare != 0 || result.PValue != 1 || result.Dof != 0 || result.Phi != 0 {
		t.Fatalf("empty input: got chi2=%v p=%v dof=%d phi=%v, want 0/1/0/0",
			result.ChiSquare, result.PValue, result.Dof, result.Phi)
	}
}

func TestAssociationUniform(t *testing.T) {
	t.Parallel()

	var records []domain.Record
	records = append(records, block(0, 0, 5)...)
	records = append(records, block(0, 1, 5)...)
	records = append(records, block(1, 0, 5)...)
	records = append(records, block(1, 1, 5)...)

	result := TestAssociation(records)
	if result.ChiSquare != 0 {
		t.Fatalf("uniform table chi2=%v, want 0", result.ChiSquare)
	}
	if result.PValue != 1 {
		t.Fatalf("uniform table p=%v, want 1", result.PValue)
	}
	if result.Dof != 1 {
		t.Fatalf("uniform table dof=%d, want 1", result.Dof)
	}
	if result.Phi != 0 {
		t.Fatalf("uniform table phi=%v, want 0", result.Phi)
	}
}

func TestAssociationKnownTable(t *testing.T) {
	t.Parallel()

	// Counts: HasWiki=0 -> (10, 20), HasWiki=1 -> (30, 5); n=65.
	var records []domain.Record
	records = append(records, block(0, 0, 10)...)
	records = append(records, block(0, 1, 20)...)
	records = append(records, block(1, 0, 30)...)
	records = append(records, block(1, 1, 5)...)

	result := TestAssociation(records)

	if math.Abs(result.ChiSquare-18.7262) > 1e-3 {
		t.Fatalf("chi2=%v, want ~18.7262", result.ChiSquare)
	}
	if result.Dof != 1 {
		t.Fatalf("dof=%d, want 1", result.Dof)
	}
	if result.PValue >= 0.001 {
		t.Fatalf("p=%v, want < 0.001", result.PValue)
	}
	wantPhi := math.Sqrt(result.ChiSquare / 65)
	if math.Abs(result.Phi-wantPhi) > 1e-9 {
		t.Fatalf("phi=%v, want %v", result.Phi, wantPhi)
	}

	if rate := result.RatesByHasWiki[0]; math.Abs(rate-20.0/30.0) > 1e-9 {
		t.Fatalf("rate for HasWiki=0 is %v, want %v", rate, 20.0/30.0)
	}
	if rate := result.RatesByHasWiki[1]; math.Abs(rate-5.0/35.0) > 1e-9 {
		t.Fatalf("rate for HasWiki=1 is %v, want %v", rate, 5.0/35.0)
	}
}

func TestAssociationSingleRowLevel(t *testing.T) {
	t.Parallel()

	// Every brand resolved: the observed table is 1x2, dof 0, nothing to test.
	var records []domain.Record
	records = append(records, block(1, 0, 3)...)
	records = append(records, block(1, 1, 4)...)

	result := TestAssociation(records)
	if result.Dof != 0 {
		t.Fatalf("dof=%d, want 0", result.Dof)
	}
	if result.ChiSquare != 0 {
		t.Fatalf("chi2=%v, want 0", result.ChiSquare)
	}
	if result.PValue != 1 {
		t.Fatalf("p=%v, want 1", result.PValue)
	}
}

func TestAssociationZeroCell(t *testing.T) {
	t.Parallel()

	// One empty cell with the rest populated must still compute.
	var records []domain.Record
	records = append(records, block(0, 0, 8)...)
	records = append(records, block(1, 0, 4)...)
	records = append(records, block(1, 1, 6)...)

	result := TestAssociation(records)
	if math.IsNaN(result.ChiSquare) || math.IsInf(result.ChiSquare, 0) {
		t.Fatalf("chi2 is not finite: %v", result.ChiSquare)
	}
	if result.Dof != 1 {
		t.Fatalf("dof=%d, want 1", result.Dof)
	}
	if result.PValue < 0 || result.PValue > 1 {
		t.Fatalf("p=%v out of range", result.PValue)
	}
}

func TestCrosstab(t *testing.T) {
	t.Parallel()

	var records []domain.Record
	records = append(records, block(1, 1, 2)...)
	records = append(records, block(0, 1, 1)...)

	table := Crosstab(records)
	if len(table.RowLevels) != 2 || table.RowLevels[0] != 0 || table.RowLevels[1] != 1 {
		t.Fatalf("unexpected row levels: %v", table.RowLevels)
	}
	if len(table.ColLevels) != 1 || table.ColLevels[0] != 1 {
		t.Fatalf("unexpected col levels: %v", table.ColLevels)
	}
	if table.Counts[0][0] != 1 || table.Counts[1][0] != 2 {
		t.Fatalf("unexpected counts: %v", table.Counts)
	}
	if table.Total() != 3 {
		t.Fatalf("total=%d, want 3", table.Total())
	}
}
