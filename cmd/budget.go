/*
Copyright © 2025 Meera Pillai <meera@renokit.dev>
*/
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/renokit/reno/models"
)

// budgetCmd flags phases whose costs are close to or past their budgets so
// you know where to trim before the next vendor visit.
var budgetCmd = &cobra.Command{
	Use:     "budget [project name]",
	Short:   "show phases approaching or over their budgets",
	Long:    "List phases whose material and accepted-quote costs are near or past budget.",
	Aliases: []string{"over"},
	RunE:    runBudget,
}

func runBudget(cmd *cobra.Command, args []string) error {
	apiClient, err := newApiClient()
	if err != nil {
		return err
	}

	threshold, err := cmd.Flags().GetInt("threshold")
	if err != nil {
		return fmt.Errorf("failed to get threshold: %w", err)
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	projects, err := apiClient.ListProjects(name)
	if err != nil {
		return fmt.Errorf("error listing projects: %w", err)
	}

	type flagged struct {
		project string
		room    string
		phase   models.Phase
		percent int
	}
	var hot []flagged

	for _, p := range projects {
		for _, room := range p.Rooms {
			for _, phase := range room.Phases {
				if phase.Budget <= 0 {
					continue
				}
				percent := PercentOf(phase.Cost(), phase.Budget)
				if percent < threshold {
					continue
				}
				hot = append(hot, flagged{
					project: p.Name,
					room:    MapRoomAlias(room.Name),
					phase:   phase,
					percent: percent,
				})
			}
		}
	}

	header := fmt.Sprintf("Phases at or above %d%% of budget: %d\n", threshold, len(hot))
	if len(hot) == 0 {
		color.Green(header)
		return nil
	}
	color.HiRed(header)

	for _, h := range hot {
		line := fmt.Sprintf(" - %s / %s / %s: %s of %s (%d%%)",
			h.project, h.room, h.phase.Name,
			models.FormatMoney(h.phase.Cost()),
			models.FormatMoney(h.phase.Budget),
			h.percent,
		)
		if h.phase.OverBudget() {
			line += " " + color.HiRedString("OVER BUDGET")
		} else {
			line = color.YellowString(line)
		}
		fmt.Println(line)
	}
	fmt.Println()

	return nil
}

func init() {
	rootCmd.AddCommand(budgetCmd)

	budgetCmd.Flags().IntP("threshold", "t", 80, "flag phases at or above this percent of budget")
}
