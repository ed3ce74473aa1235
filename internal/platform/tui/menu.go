package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDetailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// menuKeyMap defines the key bindings for the preset menu.
type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	}
}

// MenuModel is the Bubble Tea model for the difficulty preset picker.
type MenuModel struct {
	presets  []config.DifficultyPreset
	base     config.ReflexConfig
	cursor   int
	width    int
	height   int
	keys     menuKeyMap
	quitting bool
	selected *config.DifficultyPreset // Set when user picks a preset
}

// NewMenuModel creates a preset picker. base is the loaded config the
// presets are applied to.
func NewMenuModel(base config.ReflexConfig, width, height int) MenuModel {
	return MenuModel{
		presets: config.Presets(),
		base:    base,
		width:   width,
		height:  height,
		keys:    defaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			selected := m.presets[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("R E F L E X"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a difficulty", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cfg := m.Config(p)
		line := fmt.Sprintf("  %-7s", p)
		detail := fmt.Sprintf(" %d lives, %gs, %d options", cfg.Round.Lives, cfg.Round.TimeLimit, cfg.Round.Options)
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + line[2:])
		}
		b.WriteString(centerText(line+menuDetailStyle.Render(detail), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Config returns the base config with preset p applied.
func (m MenuModel) Config(p config.DifficultyPreset) config.ReflexConfig {
	cfg := m.base
	cfg.Keys = append([]string(nil), m.base.Keys...)
	config.ApplyPreset(&cfg, p)
	return cfg
}

// Selected returns the chosen preset, or nil if none was chosen.
func (m MenuModel) Selected() *config.DifficultyPreset {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// RunMenu runs the preset picker. It returns nil when the user quit.
func RunMenu(base config.ReflexConfig, width, height int) (*config.ReflexConfig, error) {
	p := tea.NewProgram(
		NewMenuModel(base, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Selected() == nil {
		return nil, nil
	}

	cfg := m.Config(*m.Selected())
	return &cfg, nil
}
