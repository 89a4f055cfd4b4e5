package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renokit/reno/models"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB454"))
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7CC76D"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	controlStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	overBudgetRed = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

// PickerModel is the catalog picker: a scrollable list of catalog materials
// for one phase, each row a CatalogLine writing through to the shared
// selection. The picker itself never talks to the backend; submitting the
// staged selection is a separate command.
type PickerModel struct {
	PhaseID   int
	PhaseName string

	lines     []CatalogLine
	selection *models.Selection

	cursor int
	typing bool
	input  textinput.Model

	width  int
	height int
	status string
}

// NewPicker builds the picker over the given catalog and selection. Rows
// pick up quantities already staged in the selection.
func NewPicker(phaseID int, phaseName string, catalog []models.Material, sel *models.Selection) *PickerModel {
	lines := make([]CatalogLine, 0, len(catalog))
	for _, m := range catalog {
		lines = append(lines, NewCatalogLine(m, sel))
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 6
	input.Width = 6

	return &PickerModel{
		PhaseID:   phaseID,
		PhaseName: phaseName,
		lines:     lines,
		selection: sel,
		input:     input,
	}
}

// Selection exposes the staged items after the program exits.
func (m *PickerModel) Selection() *models.Selection {
	return m.selection
}

func (m *PickerModel) Init() tea.Cmd {
	return nil
}

func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *PickerModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.lines)-1 {
			m.cursor++
		}

	case "a", "enter":
		line := m.current()
		if line == nil {
			break
		}
		if !line.Added() {
			line.Add()
			m.status = fmt.Sprintf("Added %s", line.Material.Name)
		} else if msg.String() == "enter" {
			m.startTyping()
		}

	case "+", "right", "l":
		line := m.current()
		if line != nil && line.Added() {
			line.Increment()
		}

	case "-", "left", "h":
		line := m.current()
		if line != nil && line.Added() {
			line.Decrement()
		}

	case "x", "delete":
		line := m.current()
		if line != nil && line.Added() {
			line.Remove()
			m.status = fmt.Sprintf("Removed %s", line.Material.Name)
		}

	default:
		// A typed digit on an added row jumps straight into the input.
		s := msg.String()
		line := m.current()
		if line != nil && line.Added() && len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.startTyping()
			m.applyInput(m.input.Value() + s)
		}
	}
	return m, nil
}

func (m *PickerModel) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab":
		// Blur. A cleared input has already removed the item, so the row
		// simply shows the Add button again.
		m.typing = false
		m.input.Blur()
		return m, nil

	case "up", "down":
		m.typing = false
		m.input.Blur()
		return m.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyInput(m.input.Value())
	return m, cmd
}

// applyInput feeds raw text through the quantity rules and mirrors the
// coerced result back into the input, keeping it controlled: a typed "0"
// shows as "1", junk clears the field.
func (m *PickerModel) applyInput(raw string) {
	line := m.current()
	if line == nil {
		return
	}
	line.SetInput(raw)
	m.input.SetValue(line.Quantity().String())
	m.input.CursorEnd()
}

func (m *PickerModel) startTyping() {
	line := m.current()
	if line == nil {
		return
	}
	m.typing = true
	m.input.SetValue(line.Quantity().String())
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *PickerModel) current() *CatalogLine {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return nil
	}
	return &m.lines[m.cursor]
}

func (m *PickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Pick materials · %s", m.PhaseName)))
	b.WriteString("\n\n")

	for i := range m.lines {
		b.WriteString(m.renderLine(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	help := "a/enter add · +/- quantity · type digits to set · x remove · q done"
	if m.typing {
		help = "type a quantity · enter/esc done · clearing the field removes the item"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m *PickerModel) renderLine(i int) string {
	line := &m.lines[i]
	mat := line.Material

	marker := "  "
	if i == m.cursor {
		marker = cursorStyle.Render("▸ ")
	}

	label := fmt.Sprintf("%s%s (%s/%s, %s)", mat.Swatch(), mat.Name,
		models.FormatMoney(mat.UnitPrice), mat.Unit, mat.Vendor.Name)

	if !line.Added() {
		return fmt.Sprintf("%s%s  %s", marker, label, controlStyle.Render("[ Add ]"))
	}

	qty := line.Quantity().String()
	if m.typing && i == m.cursor {
		qty = m.input.View()
	}
	controls := fmt.Sprintf("%s %s %s %s  = %s  %s",
		controlStyle.Render("[-]"), qty, controlStyle.Render("[+]"), mat.Unit,
		line.LineTotal(), controlStyle.Render("[Remove]"))
	return fmt.Sprintf("%s%s  %s", marker, addedStyle.Render(label), controls)
}

func (m *PickerModel) renderSummary() string {
	count := m.selection.Len()
	if count == 0 {
		return helpStyle.Render("Nothing staged yet.")
	}
	total := 0.0
	for i := range m.lines {
		line := &m.lines[i]
		if n, ok := line.Quantity().Value(); ok && line.Added() {
			total += float64(n) * line.Material.UnitPrice
		}
	}
	plural := "materials"
	if count == 1 {
		plural = "material"
	}
	return fmt.Sprintf("%d %s staged · est. %s", count, plural, models.FormatMoney(total))
}
