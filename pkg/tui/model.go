// Package tui implements the interactive shape creator: a small bubbletea
// form that walks through kind, name, color and dimensions and appends each
// finished solid to a registry.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chazu/solidkit/pkg/solid"
)

type stage int

const (
	stageMenu stage = iota
	stageName
	stageColor
	stageDims
)

const finishLabel = "Finish and analyze"

// Model is the bubbletea model of the shape creator.
type Model struct {
	keys  KeyMap
	reg   *solid.Registry
	input textinput.Model

	stage  stage
	cursor int
	kinds  []solid.Kind

	// Fields of the shape being built.
	kind  solid.Kind
	name  string
	color string
	dims  []float64

	created  []solid.Solid
	errMsg   string
	status   string
	quitting bool
}

// New returns a creator that appends to reg.
func New(reg *solid.Registry) *Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return &Model{
		keys:  DefaultKeyMap(),
		reg:   reg,
		input: ti,
		kinds: solid.Kinds(),
	}
}

// Created returns the solids created in this session, in creation order.
func (m *Model) Created() []solid.Solid {
	return m.created
}

// Done reports whether the user has left the creator.
func (m *Model) Done() bool {
	return m.quitting
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.stage == stageMenu {
		return m.handleMenuKeys(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.backToMenu("Cancelled " + m.kind.DisplayName())
		return m, nil
	case key.Matches(keyMsg, m.keys.Enter):
		return m.submit()
	}
	return m.updateInput(msg)
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.stage == stageMenu {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := len(m.kinds) + 1

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + items - 1) % items
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % items
	case key.Matches(msg, m.keys.Cancel):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Enter):
		return m.choose(m.cursor)
	default:
		// Digits select a menu entry directly, as the numbered prompt did.
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= items {
			m.cursor = n - 1
			return m.choose(m.cursor)
		}
	}
	return m, nil
}

func (m *Model) choose(i int) (tea.Model, tea.Cmd) {
	if i == len(m.kinds) {
		m.quitting = true
		return m, tea.Quit
	}
	m.kind = m.kinds[i]
	m.name, m.color, m.dims = "", "", nil
	m.errMsg, m.status = "", ""
	m.stage = stageName
	m.input.Reset()
	return m, nil
}

func (m *Model) backToMenu(status string) {
	m.stage = stageMenu
	m.status = status
	m.errMsg = ""
	m.input.Reset()
}

// submit consumes the current input value for the active stage.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.stage {
	case stageName, stageColor:
		if value == "" {
			m.errMsg = "Please enter a non-empty string."
			m.input.Reset()
			return m, nil
		}
		if m.stage == stageName {
			m.name = value
			m.stage = stageColor
		} else {
			m.color = value
			m.stage = stageDims
		}

	case stageDims:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.errMsg = "Please enter a valid number."
			m.input.Reset()
			return m, nil
		}
		m.dims = append(m.dims, v)
		if len(m.dims) == len(solid.DimensionNames(m.kind)) {
			m.input.Reset()
			return m.create()
		}
	}

	m.errMsg = ""
	m.input.Reset()
	return m, nil
}

// create builds the solid from the collected fields. An invalid dimension
// sends the user back to re-enter that dimension and the ones after it.
func (m *Model) create() (tea.Model, tea.Cmd) {
	s, err := solid.New(m.kind, m.name, m.color, m.dims...)
	if err != nil {
		var dimErr *solid.InvalidDimensionError
		if errors.As(err, &dimErr) {
			m.dims = m.dims[:dimensionIndex(m.kind, dimErr.Dimension)]
			m.errMsg = "Error creating shape: " + err.Error()
			return m, nil
		}
		m.backToMenu("")
		m.errMsg = "Error creating shape: " + err.Error()
		return m, nil
	}

	m.reg.Add(s)
	m.created = append(m.created, s)
	m.backToMenu(fmt.Sprintf("✓ Successfully created: %s (Volume: %.2f | Surface Area: %.2f)",
		s.Name(), s.Volume(), s.SurfaceArea()))
	return m, nil
}

func dimensionIndex(k solid.Kind, dimension string) int {
	for i, n := range solid.DimensionNames(k) {
		if n == dimension {
			return i
		}
	}
	return 0
}

func (m *Model) prompt() string {
	switch m.stage {
	case stageName:
		return "Enter shape name:"
	case stageColor:
		return "Enter color:"
	case stageDims:
		return fmt.Sprintf("Enter %s:", solid.DimensionNames(m.kind)[len(m.dims)])
	default:
		return ""
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Interactive Shape Creator"))
	b.WriteString("\n\n")

	if m.stage == stageMenu {
		b.WriteString(m.renderMenu())
	} else {
		b.WriteString(MutedStyle.Render("Creating " + m.kind.DisplayName()))
		b.WriteString("\n\n")
		b.WriteString(m.prompt())
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.errMsg) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + GoodStyle.Render(m.status) + "\n")
	}

	help := m.keys.formHelp()
	if m.stage == stageMenu {
		help = m.keys.menuHelp()
	}
	b.WriteString("\n" + MutedStyle.Render(fmt.Sprintf("%d created • %s", len(m.created), help)))
	return b.String()
}

func (m *Model) renderMenu() string {
	labels := make([]string, 0, len(m.kinds)+1)
	for _, k := range m.kinds {
		labels = append(labels, k.DisplayName())
	}
	labels = append(labels, finishLabel)

	lines := make([]string, len(labels))
	for i, l := range labels {
		line := fmt.Sprintf("%d. %s", i+1, l)
		if i == m.cursor {
			lines[i] = SelectedStyle.Render("> " + line)
		} else {
			lines[i] = "  " + line
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// Run starts the creator on the terminal and blocks until the user finishes.
// It returns the solids created during the session.
func Run(reg *solid.Registry) ([]solid.Solid, error) {
	model := New(reg)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return model.Created(), fmt.Errorf("TUI error: %w", err)
	}
	return model.Created(), nil
}
