/*
Copyright © 2025 Meera Pillai <meera@renokit.dev>
*/
package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/renokit/reno/api"
	"github.com/renokit/reno/db"
	"github.com/renokit/reno/models"
)

// catalogCmd represents the catalog command.
var catalogCmd = &cobra.Command{
	Use:   "catalog <name or id...>",
	Short: "search the materials catalog by name or id",
	Long: `Search the materials catalog by name or id. You can provide multiple names or ids. For multi-word names,
	enclose in quotes. To show all materials, use the wildcard character '*'.`,
	RunE:    runCatalog,
	Aliases: []string{"cat", "c"},
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = append(args, "*")
	}

	cached, _ := cmd.Flags().GetBool("cached")
	showLinks, _ := cmd.Flags().GetBool("links")

	filters, query, err := buildCatalogQuery(cmd)
	if err != nil {
		return err
	}
	aggFilter := aggregateFilter(filters...)

	if cached {
		return runCatalogCached(args, aggFilter, showLinks)
	}

	apiClient, err := newApiClient()
	if err != nil {
		return err
	}

	for _, a := range args {
		var materials []models.Material

		foundFmt := "Found %d materials matching '%s':\n"
		name := a
		// figure out if the argument is an id (int)
		id, err := strconv.Atoi(a)
		if err == nil {
			name = "#" + name
			foundFmt = "Found %d material with ID %s:\n"

			material, err := apiClient.FindMaterialById(id)
			if errors.Is(err, api.ErrMaterialNotFound) {
				materials = []models.Material{}
			} else if err != nil {
				return fmt.Errorf("error searching catalog: %w", err)
			} else {
				materials = []models.Material{*material}
			}
		} else {
			materials, err = apiClient.FindMaterialsByName(a, aggFilter, query)
			if err != nil {
				return fmt.Errorf("error searching catalog: %w", err)
			}
		}

		printCatalogResults(name, foundFmt, materials, showLinks)
	}

	return nil
}

// runCatalogCached serves catalog searches from the local sqlite snapshot
// instead of the API. Server-side query keys are applied client-side here.
func runCatalogCached(args []string, filter api.MaterialFilter, showLinks bool) error {
	if Cfg == nil || Cfg.CacheDb == "" {
		return errors.New("cache database not configured; set cache_db in config or run without --cached")
	}

	dbClient, err := db.NewClient(Cfg.CacheDb)
	if err != nil {
		return fmt.Errorf("failed to open catalog cache: %w", err)
	}
	defer func() { _ = dbClient.Close() }()

	all, err := dbClient.ListMaterials()
	if err != nil {
		return fmt.Errorf("failed to read catalog cache: %w", err)
	}

	for _, a := range args {
		var materials []models.Material

		foundFmt := "Found %d materials matching '%s' (cached):\n"
		name := a
		id, idErr := strconv.Atoi(a)
		needle := strings.ToLower(a)

		for _, m := range all {
			if idErr == nil {
				if m.Id == id {
					materials = append(materials, m)
				}
				continue
			}
			if a != "*" && !strings.Contains(strings.ToLower(m.Name), needle) {
				continue
			}
			if filter != nil && !filter(m) {
				continue
			}
			materials = append(materials, m)
		}
		if idErr == nil {
			name = "#" + name
			foundFmt = "Found %d material with ID %s (cached):\n"
		}

		printCatalogResults(name, foundFmt, materials, showLinks)
	}

	return nil
}

func printCatalogResults(name, foundFmt string, materials []models.Material, showLinks bool) {
	foundMsg := fmt.Sprintf(foundFmt, len(materials), name)
	if len(materials) == 0 {
		// print in red
		color.HiRed(foundMsg)
	} else {
		// print in green
		color.Green(foundMsg)
	}

	for _, m := range materials {
		fmt.Printf(" - %s\n", m)
		if showLinks {
			fmt.Printf("   %s\n", vendorLink(m.Vendor.Name, m.Name))
		}
	}

	if len(materials) > 0 {
		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf(
			"%s: %d %s\n\n",
			bold("Summary"),
			len(materials),
			Plural(len(materials), "material", "materials"),
		)
	}
}

// buildCatalogQuery translates command flags into server-side query keys and
// client-side filters. Split out from runCatalog for testability.
func buildCatalogQuery(cmd *cobra.Command) ([]api.MaterialFilter, map[string]string, error) {
	var filters []api.MaterialFilter
	query := make(map[string]string)

	if vendor, err := cmd.Flags().GetString("vendor"); err == nil && vendor != "" {
		query["vendor"] = vendor
	}

	if category, err := cmd.Flags().GetString("category"); err == nil && category != "" {
		query["category"] = category
	}

	if allowArchived, err := cmd.Flags().GetBool("allow-archived"); err == nil && allowArchived {
		query["allow_archived"] = "true"
	}

	if onlyArchived, err := cmd.Flags().GetBool("archived-only"); err == nil && onlyArchived {
		query["allow_archived"] = "true" // allow archived is needed to get archived materials from the API

		// the API doesn't support only returning archived materials, so we have to filter manually
		filters = append(filters, archivedOnly)
	}

	// API doesn't support price bounds, so we have to filter manually
	if maxPrice, err := cmd.Flags().GetFloat64("max-price"); err == nil && maxPrice > 0 {
		filters = append(filters, maxPriceFilter(maxPrice))
	}

	if minRating, err := cmd.Flags().GetFloat64("min-rating"); err == nil && minRating > 0 {
		filters = append(filters, minRatingFilter(minRating))
	}

	if len(filters) == 0 {
		filters = append(filters, noFilter)
	}

	return filters, query, nil
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringP("vendor", "m", "", "filter by vendor, default is all")
	catalogCmd.Flags().StringP("category", "g", "", "filter by category (tile, paint, lumber...), default is all")
	catalogCmd.Flags().BoolP("allow-archived", "a", false, "include archived materials, default is false")
	catalogCmd.Flags().Bool("archived-only", false, "show only archived materials, default is false")
	catalogCmd.Flags().Float64P("max-price", "p", 0, "show only materials at or under the given unit price")
	catalogCmd.Flags().Float64P("min-rating", "r", 0, "show only materials from vendors at or above the given rating")
	catalogCmd.Flags().Bool("cached", false, "search the local catalog cache instead of the API")
	catalogCmd.Flags().Bool("links", false, "show a vendor search link for each material")
}

// noFilter returns true for all materials.
func noFilter(_ models.Material) bool {
	return true
}

// archivedOnly returns true if the material is archived.
func archivedOnly(m models.Material) bool {
	return m.Archived
}

func maxPriceFilter(max float64) api.MaterialFilter {
	return func(m models.Material) bool {
		return m.UnitPrice <= max
	}
}

func minRatingFilter(min float64) api.MaterialFilter {
	return func(m models.Material) bool {
		return m.Vendor.Rating >= min
	}
}

// aggregateFilter returns a function that returns true if all given filters return true.
func aggregateFilter(filters ...api.MaterialFilter) api.MaterialFilter {
	return func(m models.Material) bool {
		for _, f := range filters {
			if !f(m) {
				return false
			}
		}

		return true
	}
}
