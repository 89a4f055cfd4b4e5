package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renokit/reno/models"
)

// PhaseStore is what the editor needs from the backend: persist a quantity,
// delete a committed material, and refetch the owning phase.
type PhaseStore interface {
	UpdatePhaseMaterial(phaseMaterialId int, quantity int) error
	DeletePhaseMaterial(phaseMaterialId int) error
	GetPhase(phaseId int) (*models.Phase, error)
}

type savedMsg struct {
	phase *models.Phase
	err   error
}

type deletedMsg struct {
	name  string
	phase *models.Phase
	err   error
}

// EditorModel is the phase editor: the committed materials of one phase,
// each row a CommittedLine with a Viewing/Editing toggle. Saves and deletes
// go to the backend and are followed by a full refetch of the phase; on
// failure the edit session stays open with the error in the status line so
// the user can retry or cancel.
type EditorModel struct {
	store PhaseStore
	phase models.Phase

	lines  []CommittedLine
	cursor int
	typing bool
	input  textinput.Model

	busy   bool
	status string
	errMsg string

	width  int
	height int
}

// NewEditor builds the editor over a fetched phase.
func NewEditor(store PhaseStore, phase models.Phase) *EditorModel {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 6
	input.Width = 6

	m := &EditorModel{store: store, phase: phase, input: input}
	m.rebuildLines()
	return m
}

// Phase returns the phase as of the last refresh.
func (m *EditorModel) Phase() models.Phase {
	return m.phase
}

func (m *EditorModel) rebuildLines() {
	lines := make([]CommittedLine, 0, len(m.phase.Materials))
	for _, pm := range m.phase.Materials {
		lines = append(lines, NewCommittedLine(pm))
	}
	m.lines = lines
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			// Stay in the edit session; the user can retry or cancel.
			m.errMsg = fmt.Sprintf("save failed: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = "Saved."
		m.phase = *msg.phase
		m.typing = false
		m.input.Blur()
		m.rebuildLines()
		return m, nil

	case deletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("Deleted %s.", msg.name)
		m.phase = *msg.phase
		m.rebuildLines()
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *EditorModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	line := m.current()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if line == nil || !line.Editing() {
			return m, tea.Quit
		}

	case "up", "k":
		if (line == nil || !line.Editing()) && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if (line == nil || !line.Editing()) && m.cursor < len(m.lines)-1 {
			m.cursor++
		}

	case "e":
		if line != nil && !line.Editing() && !m.busy {
			line.StartEdit()
			m.errMsg = ""
			m.status = ""
		}

	case "+", "right", "l":
		if line != nil && line.Editing() {
			line.Increment()
		}

	case "-", "left", "h":
		if line != nil && line.Editing() {
			line.Decrement()
		}

	case "esc":
		if line != nil && line.Editing() {
			line.Cancel()
			m.errMsg = ""
			m.status = "Cancelled."
		}

	case "enter":
		// Save. Withheld entirely while the draft is empty.
		if line != nil && line.CanSave() && !m.busy {
			m.busy = true
			m.status = "Saving..."
			return m, m.saveCmd(line.Item.Id, mustSaveQuantity(line))
		}

	case "d":
		if line != nil && !line.Editing() && !m.busy {
			m.busy = true
			m.status = fmt.Sprintf("Deleting %s...", line.Item.Name)
			return m, m.deleteCmd(line.Item.Id, line.Item.Name)
		}

	default:
		s := msg.String()
		if line != nil && line.Editing() && len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.startTyping()
			m.applyInput(m.input.Value() + s)
		}
	}
	return m, nil
}

func (m *EditorModel) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Leave the input but keep the edit session open.
		m.typing = false
		m.input.Blur()
		return m, nil

	case "enter":
		m.typing = false
		m.input.Blur()
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyInput(m.input.Value())
	return m, cmd
}

func (m *EditorModel) applyInput(raw string) {
	line := m.current()
	if line == nil {
		return
	}
	line.SetInput(raw)
	m.input.SetValue(line.Draft().String())
	m.input.CursorEnd()
}

func (m *EditorModel) startTyping() {
	line := m.current()
	if line == nil {
		return
	}
	m.typing = true
	m.input.SetValue(line.Draft().String())
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *EditorModel) current() *CommittedLine {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return nil
	}
	return &m.lines[m.cursor]
}

// saveCmd persists the draft, then refetches the phase. Both results come
// back in one message; a failure in either leaves the session editing.
func (m *EditorModel) saveCmd(phaseMaterialId, quantity int) tea.Cmd {
	store := m.store
	phaseId := m.phase.Id
	return func() tea.Msg {
		if err := store.UpdatePhaseMaterial(phaseMaterialId, quantity); err != nil {
			return savedMsg{err: err}
		}
		phase, err := store.GetPhase(phaseId)
		if err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{phase: phase}
	}
}

func (m *EditorModel) deleteCmd(phaseMaterialId int, name string) tea.Cmd {
	store := m.store
	phaseId := m.phase.Id
	return func() tea.Msg {
		if err := store.DeletePhaseMaterial(phaseMaterialId); err != nil {
			return deletedMsg{name: name, err: err}
		}
		phase, err := store.GetPhase(phaseId)
		if err != nil {
			return deletedMsg{name: name, err: err}
		}
		return deletedMsg{name: name, phase: phase}
	}
}

func mustSaveQuantity(line *CommittedLine) int {
	n, ok := line.SaveQuantity()
	if !ok {
		// Callers check CanSave first; a zero here would be a bug upstream.
		return 1
	}
	return n
}

func (m *EditorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Phase materials · %s", m.phase.Name)))
	b.WriteString("\n\n")

	if len(m.lines) == 0 {
		b.WriteString(helpStyle.Render("No materials committed to this phase yet."))
		b.WriteString("\n")
	}

	for i := range m.lines {
		b.WriteString(m.renderLine(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *EditorModel) renderLine(i int) string {
	line := &m.lines[i]
	item := line.Item

	marker := "  "
	if i == m.cursor {
		marker = cursorStyle.Render("▸ ")
	}

	if !line.Editing() {
		row := fmt.Sprintf("%s%s - %s %s @ %s/%s = %s  %s %s",
			marker, item.Name, line.DisplayQuantity(), item.Unit,
			models.FormatMoney(item.UnitPrice), item.Unit, line.DisplayTotal(),
			controlStyle.Render("[Edit]"), controlStyle.Render("[Delete]"))
		return row
	}

	qty := line.DisplayQuantity()
	if m.typing && i == m.cursor {
		qty = m.input.View()
	}
	controls := fmt.Sprintf("%s %s %s %s  = %s",
		controlStyle.Render("[-]"), qty, controlStyle.Render("[+]"), item.Unit,
		line.DisplayTotal())
	// The save control only exists while the draft is non-empty.
	if line.CanSave() {
		controls += "  " + controlStyle.Render("[Save]")
	}
	controls += "  " + controlStyle.Render("[Cancel]")
	return fmt.Sprintf("%s%s  %s", marker, addedStyle.Render(item.Name), controls)
}

func (m *EditorModel) renderFooter() string {
	var parts []string
	total := m.phase.MaterialTotal()
	budgetLine := fmt.Sprintf("Materials total: %s", models.FormatMoney(total))
	if m.phase.Budget > 0 {
		budgetLine += fmt.Sprintf(" of %s budget", models.FormatMoney(m.phase.Budget))
		if m.phase.OverBudget() {
			budgetLine = overBudgetRed.Render(budgetLine + " (over)")
		}
	}
	parts = append(parts, budgetLine)

	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(m.errMsg))
	} else if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}

	help := "e edit · d delete · q quit"
	line := m.current()
	if line != nil && line.Editing() {
		help = "+/- quantity · type digits to set · enter save · esc cancel"
		if !line.CanSave() {
			help = "+/- quantity · type digits to set · esc cancel (empty quantity cannot be saved)"
		}
	}
	parts = append(parts, helpStyle.Render(help))
	return strings.Join(parts, "\n")
}
