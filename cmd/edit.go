/*
Copyright © 2025 Meera Pillai <meera@renokit.dev>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/renokit/reno/tui"
)

// editCmd represents the edit command.
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "edit the committed materials of a phase",
	Long: `Review the materials already committed to a phase and adjust their
quantities or remove them. Every save writes through to the API and the
phase is refetched so totals stay current.`,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	if len(phase.Materials) == 0 {
		fmt.Printf("Phase '%s' has no committed materials yet. Use 'reno pick' to stage some.\n", phase.Name)
		return nil
	}

	editor := tui.NewEditor(apiClient, *phase)
	program := tea.NewProgram(editor, tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	result, ok := final.(*tui.EditorModel)
	if !ok {
		return errors.New("editor returned an unexpected model")
	}

	printPhaseSummary(result.Phase())
	return nil
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().IntP("phase", "f", 0, "phase ID to edit")
	editCmd.Flags().StringP("project", "j", "", "project name to narrow the interactive phase prompt")
	editCmd.Flags().BoolP("non-interactive", "n", false, "disable interactive prompts")
}
