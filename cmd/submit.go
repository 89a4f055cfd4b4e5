/*
Copyright © 2025 Meera Pillai <meera@renokit.dev>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/renokit/reno/api"
	"github.com/renokit/reno/models"
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit [selection file...]",
	Short: "submit staged selections to their phases",
	Long: `Submit sends staged selection files to the API, committing all of a
selection's materials to its phase in a single request. With no arguments,
every selection file in the working directory and the configured selections
directory is submitted.`,
	RunE:    runSubmit,
	Aliases: []string{"s"},
}

func runSubmit(cmd *cobra.Command, args []string) error {
	apiClient, err := newApiClient()
	if err != nil {
		return err
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	keep, _ := cmd.Flags().GetBool("keep")

	if dryRun {
		_, err := color.New(color.FgHiYellow).Println("Dry run mode enabled. Nothing will be changed.")
		if err != nil {
			return err
		}
	}

	var selections []DiscoveredSelection
	if len(args) > 0 {
		for _, arg := range args {
			file, err := loadSelectionFile(arg)
			if err != nil {
				return err
			}
			selections = append(selections, DiscoveredSelection{
				Path:        arg,
				DisplayName: FormatSelectionPath(arg),
				File:        file,
			})
		}
	} else {
		selections, err = discoverSelections()
		if err != nil {
			return err
		}
	}

	if len(selections) == 0 {
		fmt.Println("No staged selections found. Use 'reno pick' to stage some.")
		return nil
	}

	var errs error
	for _, sel := range selections {
		items := sel.File.Items
		if len(items) == 0 {
			color.Yellow("Skipping %s: no items.\n", sel.DisplayName)
			continue
		}

		label := sel.File.PhaseName
		if label == "" {
			label = fmt.Sprintf("phase %d", sel.File.PhaseID)
		}

		fmt.Printf("Submitting %s (%d %s for '%s'):\n",
			sel.DisplayName, len(items), Plural(len(items), "item", "items"), label)
		for _, item := range items {
			fmt.Printf(" - %dx %s (#%d)\n", item.Quantity, item.Name, item.MaterialID)
		}

		if dryRun {
			continue
		}

		if err := apiClient.AddPhaseMaterials(sel.File.PhaseID, items); err != nil {
			if errors.Is(err, api.ErrPhaseNotFound) {
				color.RGB(200, 0, 0).Printf("Phase %d not found; is %s stale?\n", sel.File.PhaseID, sel.DisplayName)
				errs = errors.Join(errs, fmt.Errorf("phase %d not found for %s", sel.File.PhaseID, sel.DisplayName))
				continue
			}
			errs = errors.Join(errs, fmt.Errorf("failed to submit %s: %w", sel.DisplayName, err))
			continue
		}

		color.RGB(0, 255, 0).Printf(" - Committed %d %s to '%s'.\n",
			len(items), Plural(len(items), "item", "items"), label)

		if !keep {
			if err := os.Remove(sel.Path); err != nil {
				errs = errors.Join(errs, fmt.Errorf("submitted %s but failed to remove it: %w", sel.DisplayName, err))
				continue
			}
			fmt.Printf("   Removed %s\n", sel.DisplayName)
		}

		if phase, err := apiClient.GetPhase(sel.File.PhaseID); err == nil {
			printPhaseSummary(*phase)
		}
	}

	cmd.SilenceUsage = true
	return errs
}

// printPhaseSummary prints a one-screen cost picture for a phase.
func printPhaseSummary(phase models.Phase) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("%s: %s — %d %s, materials %s, quotes %s",
		bold("Phase"),
		phase.Name,
		len(phase.Materials),
		Plural(len(phase.Materials), "material", "materials"),
		models.FormatMoney(phase.MaterialTotal()),
		models.FormatMoney(phase.AcceptedQuoteTotal()),
	)
	if phase.Budget > 0 {
		fmt.Printf(", budget %s (%d%%)", models.FormatMoney(phase.Budget), PercentOf(phase.Cost(), phase.Budget))
		if phase.OverBudget() {
			fmt.Printf(" %s", color.HiRedString("OVER BUDGET"))
		}
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().BoolP("dry-run", "d", false, "show what would be submitted, but don't actually submit anything")
	submitCmd.Flags().BoolP("keep", "k", false, "keep selection files after a successful submit")
}
