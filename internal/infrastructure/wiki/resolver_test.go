package wiki

import (
	"context"
	"testing"
)

func TestResolveAliasOrder(t *testing.T) {
	t.Parallel()

	fake := &fakeWiki{
		pages: map[string]fakePage{
			"HP Inc.": {},
			"HP":      {},
		},
	}
	resolver := NewResolver(newFakeServer(t, fake), map[string][]string{
		"HP": {"HP Inc.", "Hewlett-Packard"},
	}, 0, nil)

	page := resolver.Resolve(context.Background(), "HP")
	if page.HasWiki != 1 || page.Title != "HP Inc." {
		t.Fatalf("unexpected resolution: %+v", page)
	}
	if len(fake.requested) == 0 || fake.requested[0] != "HP Inc." {
		t.Fatalf("aliases must be attempted before the raw brand, requests were %v", fake.requested)
	}
}

func TestResolveDisambiguation(t *testing.T) {
	t.Parallel()

	fake := &fakeWiki{
		pages: map[string]fakePage{
			"Dell": {disambig: true, options: []string{
				"Adele",
				"Dell (company)",
				"Dell Theatre",
			}},
			"Dell Theatre":   {missing: true},
			"Dell (company)": {},
		},
	}
	resolver := NewResolver(newFakeServer(t, fake), nil, 0, nil)

	page := resolver.Resolve(context.Background(), "Dell")
	if page.HasWiki != 1 || page.Title != "Dell (company)" {
		t.Fatalf("unexpected resolution: %+v", page)
	}

	// Options containing the brand name are tried first, shorter before
	// longer: "Dell Theatre" then "Dell (company)".
	want := []string{"Dell", "Dell Theatre", "Dell (company)"}
	if len(fake.requested) != len(want) {
		t.Fatalf("expected requests %v, got %v", want, fake.requested)
	}
	for i, title := range want {
		if fake.requested[i] != title {
			t.Fatalf("request %d = %q, want %q", i, fake.requested[i], title)
		}
	}
}

func TestResolveSearchFallback(t *testing.T) {
	t.Parallel()

	fake := &fakeWiki{
		pages: map[string]fakePage{
			"Sony Vaio laptops": {missing: true},
			"Vaio (brand)":      {},
		},
		searches: map[string][]string{
			"Vaio": {"Sony Vaio laptops", "Vaio (brand)"},
		},
	}
	resolver := NewResolver(newFakeServer(t, fake), nil, 0, nil)

	page := resolver.Resolve(context.Background(), "Vaio")
	if page.HasWiki != 1 || page.Title != "Vaio (brand)" {
		t.Fatalf("unexpected resolution: %+v", page)
	}
}

func TestResolveNothingFound(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(newFakeServer(t, &fakeWiki{}), nil, 0, nil)

	page := resolver.Resolve(context.Background(), "Nonexistent Brand")
	if page.HasWiki != 0 || page.Title != "" {
		t.Fatalf("unexpected resolution: %+v", page)
	}
	if page.Brand != "Nonexistent Brand" {
		t.Fatalf("brand must be carried through, got %q", page.Brand)
	}
}

func TestCandidateTitles(t *testing.T) {
	t.Parallel()

	titles := candidateTitles("Samsung", []string{"Samsung Electronics", "Samsung"})
	if len(titles) != 2 {
		t.Fatalf("expected deduplicated list of 2, got %v", titles)
	}
	if titles[0] != "Samsung Electronics" || titles[1] != "Samsung" {
		t.Fatalf("unexpected order: %v", titles)
	}
}

func TestRankOptions(t *testing.T) {
	t.Parallel()

	ranked := rankOptions("HP", []string{"Harry Potter", "HP Inc.", "HP", "hp sauce"})
	want := []string{"HP", "HP Inc.", "hp sauce", "Harry Potter"}
	for i, title := range want {
		if ranked[i] != title {
			t.Fatalf("rank %d = %q, want %q (full: %v)", i, ranked[i], title, ranked)
		}
	}
}
