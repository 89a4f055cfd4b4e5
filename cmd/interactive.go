package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"github.com/renokit/reno/models"
)

// isInteractiveAllowed returns true when the user did not disable interaction
// via flag and when the process is attached to a TTY suitable for prompting.
func isInteractiveAllowed(nonInteractive bool) bool {
	if nonInteractive {
		return false
	}
	// Require stdin, stdout, and stderr to be terminals and TERM to be sane
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}

// selectProjectInteractively shows a selectable list of projects and returns
// the chosen one. If the user cancels the prompt (Esc or Ctrl+C), canceled is
// true.
func selectProjectInteractively(projects []models.Project) (models.Project, bool, error) {
	if len(projects) == 0 {
		return models.Project{}, false, fmt.Errorf("no projects available to select from")
	}
	if !supportsAdvancedTUI() {
		return selectProjectSimple(projects)
	}

	// Prepare string items without ANSI for stability
	items := make([]string, len(projects))
	for i, p := range projects {
		items[i] = fmt.Sprintf("#%d %s [%s]", p.Id, p.Name, p.Status)
	}

	searcher := func(input string, index int) bool {
		p := projects[index]
		needle := strings.ToLower(strings.TrimSpace(input))
		if needle == "" {
			return true
		}
		joined := strings.ToLower(fmt.Sprintf("%d %s %s", p.Id, p.Name, p.Status))
		return strings.Contains(joined, needle)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✔ {{ . | green }}",
	}

	prompt := promptui.Select{
		Label:             "Select a project (type to filter; Esc to cancel)",
		Items:             items,
		Templates:         templates,
		Size:              12,
		Searcher:          searcher,
		StartInSearchMode: true,
		Stdin:             os.Stdin,
		Stdout:            NoBellStdout,
	}

	idx, _, perr := prompt.Run()
	if perr != nil {
		if perr == promptui.ErrInterrupt || perr == promptui.ErrAbort {
			return models.Project{}, true, nil
		}
		// Fall back to simple selector on unexpected prompt errors
		return selectProjectSimple(projects)
	}

	return projects[idx], false, nil
}

// selectPhaseInteractively flattens a project's rooms into a phase list and
// prompts for one. Room aliases from config are applied to the labels.
func selectPhaseInteractively(project models.Project) (models.Phase, bool, error) {
	type labeled struct {
		phase models.Phase
		label string
	}
	var phases []labeled
	for _, room := range project.Rooms {
		roomName := MapRoomAlias(room.Name)
		for _, phase := range room.Phases {
			phases = append(phases, labeled{
				phase: phase,
				label: fmt.Sprintf("#%d %s / %s [%s]", phase.Id, roomName, phase.Name, phase.Status),
			})
		}
	}
	if len(phases) == 0 {
		return models.Phase{}, false, fmt.Errorf("project %s has no phases", project.Name)
	}

	if !supportsAdvancedTUI() {
		simple := make([]models.Phase, len(phases))
		labels := make([]string, len(phases))
		for i, p := range phases {
			simple[i] = p.phase
			labels[i] = p.label
		}
		return selectPhaseSimple(simple, labels)
	}

	items := make([]string, len(phases))
	for i, p := range phases {
		items[i] = p.label
	}

	searcher := func(input string, index int) bool {
		needle := strings.ToLower(strings.TrimSpace(input))
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(phases[index].label), needle)
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✔ {{ . | green }}",
	}

	prompt := promptui.Select{
		Label:             fmt.Sprintf("Select a phase of '%s' (type to filter; Esc to cancel)", project.Name),
		Items:             items,
		Templates:         templates,
		Size:              12,
		Searcher:          searcher,
		StartInSearchMode: true,
		Stdin:             os.Stdin,
		Stdout:            NoBellStdout,
	}

	idx, _, perr := prompt.Run()
	if perr != nil {
		if perr == promptui.ErrInterrupt || perr == promptui.ErrAbort {
			return models.Phase{}, true, nil
		}
		simple := make([]models.Phase, len(phases))
		labels := make([]string, len(phases))
		for i, p := range phases {
			simple[i] = p.phase
			labels[i] = p.label
		}
		return selectPhaseSimple(simple, labels)
	}

	return phases[idx].phase, false, nil
}

// supportsAdvancedTUI gates the promptui-based UI to terminals that typically
// support full-screen cursor movement without glitches.
func supportsAdvancedTUI() bool {
	// We already checked TERM in isInteractiveAllowed. Here we can add more
	// guards if needed later.
	return true
}

// selectProjectSimple provides a numbered list over basic stdin without cursor
// control. User types a number or presses Enter to cancel.
func selectProjectSimple(projects []models.Project) (models.Project, bool, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Multiple projects match; please choose one:")
	for i, p := range projects {
		fmt.Printf("%2d) #%d %s [%s]\n", i+1, p.Id, p.Name, p.Status)
	}
	fmt.Print("Enter number to select, or press Enter to cancel: ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return models.Project{}, true, nil
	}
	for idx := range projects {
		if line == fmt.Sprintf("%d", idx+1) {
			return projects[idx], false, nil
		}
	}
	// Try direct project ID entry
	for _, p := range projects {
		if line == fmt.Sprintf("%d", p.Id) {
			return p, false, nil
		}
	}
	return models.Project{}, true, fmt.Errorf("invalid selection: %q", line)
}

func selectPhaseSimple(phases []models.Phase, labels []string) (models.Phase, bool, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Please choose a phase:")
	for i, label := range labels {
		fmt.Printf("%2d) %s\n", i+1, label)
	}
	fmt.Print("Enter number to select, or press Enter to cancel: ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return models.Phase{}, true, nil
	}
	for idx := range phases {
		if line == fmt.Sprintf("%d", idx+1) {
			return phases[idx], false, nil
		}
	}
	for _, p := range phases {
		if line == fmt.Sprintf("%d", p.Id) {
			return p, false, nil
		}
	}
	return models.Phase{}, true, fmt.Errorf("invalid selection: %q", line)
}
