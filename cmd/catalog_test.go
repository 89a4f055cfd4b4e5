package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/renokit/reno/models"
)

func testCatalogCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "catalog"}
	cmd.Flags().StringP("vendor", "m", "", "")
	cmd.Flags().StringP("category", "g", "", "")
	cmd.Flags().BoolP("allow-archived", "a", false, "")
	cmd.Flags().Bool("archived-only", false, "")
	cmd.Flags().Float64P("max-price", "p", 0, "")
	cmd.Flags().Float64P("min-rating", "r", 0, "")
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return cmd
}

func TestBuildCatalogQuery(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantQuery map[string]string
	}{
		{
			name:      "no flags",
			args:      nil,
			wantQuery: map[string]string{},
		},
		{
			name:      "vendor and category",
			args:      []string{"--vendor", "BuildMart", "--category", "tile"},
			wantQuery: map[string]string{"vendor": "BuildMart", "category": "tile"},
		},
		{
			name:      "allow archived",
			args:      []string{"--allow-archived"},
			wantQuery: map[string]string{"allow_archived": "true"},
		},
		{
			name:      "archived only implies allow archived",
			args:      []string{"--archived-only"},
			wantQuery: map[string]string{"allow_archived": "true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := testCatalogCmd(t, tt.args...)
			_, query, err := buildCatalogQuery(cmd)
			if err != nil {
				t.Fatalf("buildCatalogQuery returned error: %v", err)
			}
			if len(query) != len(tt.wantQuery) {
				t.Fatalf("query = %v, want %v", query, tt.wantQuery)
			}
			for k, v := range tt.wantQuery {
				if query[k] != v {
					t.Errorf("query[%q] = %q, want %q", k, query[k], v)
				}
			}
		})
	}
}

func TestCatalogFilters(t *testing.T) {
	cheap := models.Material{Id: 1, Name: "Grout", UnitPrice: 12.5, Vendor: models.Vendor{Rating: 4.5}}
	pricey := models.Material{Id: 2, Name: "Marble Tile", UnitPrice: 950, Vendor: models.Vendor{Rating: 3.0}}
	archived := models.Material{Id: 3, Name: "Old Paint", UnitPrice: 5, Archived: true, Vendor: models.Vendor{Rating: 4.9}}

	if !maxPriceFilter(100)(cheap) {
		t.Error("maxPriceFilter(100) should pass a 12.5 material")
	}
	if maxPriceFilter(100)(pricey) {
		t.Error("maxPriceFilter(100) should reject a 950 material")
	}

	if !minRatingFilter(4.0)(cheap) {
		t.Error("minRatingFilter(4.0) should pass a 4.5-rated vendor")
	}
	if minRatingFilter(4.0)(pricey) {
		t.Error("minRatingFilter(4.0) should reject a 3.0-rated vendor")
	}

	if archivedOnly(cheap) || !archivedOnly(archived) {
		t.Error("archivedOnly should pass only archived materials")
	}

	agg := aggregateFilter(maxPriceFilter(100), minRatingFilter(4.0))
	if !agg(cheap) {
		t.Error("aggregate filter should pass a material matching all filters")
	}
	if agg(pricey) {
		t.Error("aggregate filter should reject a material failing any filter")
	}

	if !noFilter(pricey) {
		t.Error("noFilter should pass everything")
	}
}

func TestAggregateFilterRejectsOnAnyFailure(t *testing.T) {
	agg := aggregateFilter(maxPriceFilter(10), archivedOnly)
	m := models.Material{UnitPrice: 5, Archived: false}
	if agg(m) {
		t.Error("aggregate filter passed a material that fails one of its filters")
	}
}
