/*
Copyright © 2025 Meera Pillai <meera@renokit.dev>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/renokit/reno/db"
	"github.com/renokit/reno/models"
)

// cacheCmd represents the cache command.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "refresh the local catalog cache",
	Long: `Download the full materials catalog and store a snapshot in a local sqlite
database. Commands that accept --cached serve searches from the snapshot
instead of the API, which is useful on site with poor connectivity.`,
	RunE: runCache,
}

func runCache(cmd *cobra.Command, args []string) error {
	if Cfg == nil || Cfg.CacheDb == "" {
		return errors.New("cache database not configured; set cache_db in config")
	}

	apiClient, err := newApiClient()
	if err != nil {
		return err
	}

	query := map[string]string{"allow_archived": "true"}
	materials, err := apiClient.FindMaterialsByName("*", nil, query)
	if err != nil {
		return fmt.Errorf("failed to download catalog: %w", err)
	}

	dbClient, err := db.NewClient(Cfg.CacheDb)
	if err != nil {
		return fmt.Errorf("failed to open catalog cache: %w", err)
	}
	defer func() { _ = dbClient.Close() }()

	if err := dbClient.ReplaceMaterials(materials); err != nil {
		return fmt.Errorf("failed to write catalog cache: %w", err)
	}

	color.Green("Cached %d %s in %s\n", len(materials), Plural(len(materials), "material", "materials"), Cfg.CacheDb)
	return nil
}

// loadCachedCatalog reads the full snapshot from the configured cache db.
func loadCachedCatalog() ([]models.Material, error) {
	if Cfg == nil || Cfg.CacheDb == "" {
		return nil, errors.New("cache database not configured; set cache_db in config or run without --cached")
	}

	dbClient, err := db.NewClient(Cfg.CacheDb)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog cache: %w", err)
	}
	defer func() { _ = dbClient.Close() }()

	materials, err := dbClient.ListMaterials()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog cache: %w", err)
	}
	if len(materials) == 0 {
		return nil, errors.New("catalog cache is empty; run 'reno cache' first")
	}
	return materials, nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}
