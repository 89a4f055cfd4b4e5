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

// projectsCmd represents the projects command.
var projectsCmd = &cobra.Command{
	Use:     "projects [name]",
	Short:   "list renovation projects and their phases",
	Long:    `List renovation projects, optionally filtered by name, with their rooms, phases and running costs.`,
	RunE:    runProjects,
	Aliases: []string{"p"},
}

func runProjects(cmd *cobra.Command, args []string) error {
	apiClient, err := newApiClient()
	if err != nil {
		return err
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	projects, err := apiClient.ListProjects(name)
	if err != nil {
		return fmt.Errorf("error listing projects: %w", err)
	}

	header := fmt.Sprintf("Found %d %s:\n", len(projects), Plural(len(projects), "project", "projects"))
	if len(projects) == 0 {
		color.HiRed(header)
		return nil
	}
	color.Green(header)

	showPhases, _ := cmd.Flags().GetBool("phases")
	bold := color.New(color.Bold).SprintFunc()

	for _, p := range projects {
		fmt.Printf("%s #%d [%s] — %d %s, cost %s",
			bold(p.Name), p.Id, p.Status,
			p.PhaseCount(), Plural(p.PhaseCount(), "phase", "phases"),
			models.FormatMoney(p.Cost()),
		)
		if p.Budget > 0 {
			fmt.Printf(" of %s (%d%%)", models.FormatMoney(p.Budget), PercentOf(p.Cost(), p.Budget))
		}
		fmt.Println()

		if !showPhases {
			continue
		}
		for _, room := range p.Rooms {
			fmt.Printf("  %s (%.1f m²)\n", MapRoomAlias(room.Name), room.Area)
			for _, phase := range room.Phases {
				line := fmt.Sprintf("    #%d %s [%s] — %s", phase.Id, phase.Name, phase.Status, models.FormatMoney(phase.Cost()))
				if phase.OverBudget() {
					line += " " + color.HiRedString("OVER BUDGET")
				}
				fmt.Println(line)
			}
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().BoolP("phases", "f", false, "show each project's rooms and phases")
}
