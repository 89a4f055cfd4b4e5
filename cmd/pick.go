/*
Copyright © 2025 Meera Pillai <meera@renokit.dev>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/renokit/reno/api"
	"github.com/renokit/reno/models"
	"github.com/renokit/reno/tui"
)

// pickCmd represents the pick command.
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "pick catalog materials for a phase",
	Long: `Browse the materials catalog and stage quantities for a renovation phase.
The staged selection is written to a selection file; use 'reno submit' to send it
to the phase in one request.`,
	RunE: runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	apiClient, err := newApiClient()
	if err != nil {
		return err
	}

	phaseId, _ := cmd.Flags().GetInt("phase")
	projectName, _ := cmd.Flags().GetString("project")
	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")

	phase, err := resolvePhase(apiClient, phaseId, projectName, nonInteractive)
	if err != nil {
		return err
	}
	if phase == nil {
		fmt.Println("Canceled.")
		return nil
	}

	catalog, err := loadCatalog(cmd, apiClient)
	if err != nil {
		return err
	}
	if len(catalog) == 0 {
		return errors.New("catalog is empty; nothing to pick from")
	}

	// Resume a prior staged selection for this phase if one exists.
	sel := models.NewSelection()
	path := selectionPathForPhase(phase.Id, phase.Name)
	if existing, err := loadSelectionFile(path); err == nil && existing.PhaseID == phase.Id {
		sel = models.FromFile(existing)
		fmt.Printf("Resuming staged selection from %s\n", FormatSelectionPath(path))
	}

	picker := tui.NewPicker(phase.Id, phase.Name, catalog, sel)
	program := tea.NewProgram(picker, tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	result, ok := final.(*tui.PickerModel)
	if !ok {
		return errors.New("picker returned an unexpected model")
	}

	items := result.Selection().Items()
	if len(items) == 0 {
		// Remove a stale file rather than leave an empty selection behind.
		if _, statErr := os.Stat(path); statErr == nil {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove empty selection file: %w", err)
			}
			fmt.Printf("Selection emptied; removed %s\n", FormatSelectionPath(path))
			return nil
		}
		fmt.Println("Nothing selected.")
		return nil
	}

	file := result.Selection().ToFile(phase.Id, phase.Name)
	if err := saveSelectionFile(path, file); err != nil {
		return err
	}

	color.Green("Staged %d %s for phase '%s' in %s\n",
		len(items), Plural(len(items), "item", "items"), phase.Name, FormatSelectionPath(path))
	fmt.Println("Run 'reno submit' to send the selection to the phase.")

	return nil
}

// loadCatalog fetches the full material list, from the cache when --cached is
// set and from the API otherwise.
func loadCatalog(cmd *cobra.Command, apiClient *api.Client) ([]models.Material, error) {
	cached, _ := cmd.Flags().GetBool("cached")
	if cached {
		return loadCachedCatalog()
	}
	catalog, err := apiClient.FindMaterialsByName("*", nil, map[string]string{})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return catalog, nil
}

// resolvePhase turns the --phase/--project flags into a concrete phase,
// prompting when allowed and needed. A nil phase with nil error means the
// user canceled.
func resolvePhase(apiClient *api.Client, phaseId int, projectName string, nonInteractive bool) (*models.Phase, error) {
	if phaseId > 0 {
		phase, err := apiClient.GetPhase(phaseId)
		if errors.Is(err, api.ErrPhaseNotFound) {
			return nil, fmt.Errorf("no phase with ID %d", phaseId)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load phase: %w", err)
		}
		return phase, nil
	}

	if !isInteractiveAllowed(nonInteractive) {
		return nil, errors.New("no phase specified; pass --phase or run interactively")
	}

	projects, err := apiClient.ListProjects(projectName)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, errors.New("no projects found")
	}

	project := projects[0]
	if len(projects) > 1 {
		chosen, canceled, err := selectProjectInteractively(projects)
		if err != nil {
			return nil, err
		}
		if canceled {
			return nil, nil
		}
		project = chosen
	}

	phase, canceled, err := selectPhaseInteractively(project)
	if err != nil {
		return nil, err
	}
	if canceled {
		return nil, nil
	}

	// The project listing carries phase summaries; fetch the full phase so
	// materials and quotes are current.
	full, err := apiClient.GetPhase(phase.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to load phase: %w", err)
	}
	return full, nil
}

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().IntP("phase", "f", 0, "phase ID to pick materials for")
	pickCmd.Flags().StringP("project", "j", "", "project name to narrow the interactive phase prompt")
	pickCmd.Flags().Bool("cached", false, "browse the local catalog cache instead of the API")
	pickCmd.Flags().BoolP("non-interactive", "n", false, "disable interactive prompts")
}
