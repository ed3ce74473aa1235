package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-reflex/internal/core"
)

// KeyMap holds the quiz key bindings. Option keys come from the config.
type KeyMap struct {
	Start   key.Binding
	Options []key.Binding
	Restart key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding

	pickHelp key.Binding // Help entry for all option keys at once
}

// NewKeyMap creates the bindings, one option binding per key in optionKeys.
func NewKeyMap(optionKeys []string) KeyMap {
	options := make([]key.Binding, len(optionKeys))
	for i, k := range optionKeys {
		options[i] = key.NewBinding(key.WithKeys(k))
	}

	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Options: options,
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		pickHelp: key.NewBinding(
			key.WithKeys(optionKeys...),
			key.WithHelp(strings.Join(optionKeys, "/"), "pick / click a button"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.pickHelp, k.Start, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.pickHelp, k.Start},
		{k.Restart, k.Back},
		{k.Help, k.Quit},
	}
}

// MapKey translates a key message to a quiz input.
// Option keys win over the other bindings so a config may bind e.g. "r".
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Input {
	if key.Matches(msg, k.Quit) && msg.String() == "ctrl+c" {
		return core.Input{Action: core.ActionQuit}
	}

	for i, b := range k.Options {
		if key.Matches(msg, b) {
			return core.Pick(i)
		}
	}

	switch {
	case key.Matches(msg, k.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, k.Start):
		return core.Input{Action: core.ActionStart}
	case key.Matches(msg, k.Restart):
		return core.Input{Action: core.ActionRestart}
	case key.Matches(msg, k.Back):
		return core.Input{Action: core.ActionBack}
	case key.Matches(msg, k.Help):
		return core.Input{Action: core.ActionHelp}
	}

	return core.Input{Action: core.ActionNone}
}
