package input

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines key bindings for each list box action. It implements
// help.KeyMap so the footer and the pager share one source of truth.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Home          key.Binding
	End           key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Filter        key.Binding
	ClearFilter   key.Binding
	ToggleWrap    key.Binding
	ToggleRequire key.Binding
	Sort          key.Binding
	Choose        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "last"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle wrap"),
		),
		ToggleRequire: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle required"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Choose, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped into columns for the help pager
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End, k.PageUp, k.PageDown},
		{k.Filter, k.ClearFilter, k.Sort},
		{k.ToggleWrap, k.ToggleRequire},
		{k.Choose, k.Help, k.Quit},
	}
}

// FilterKeyMap holds the bindings active while the filter input has focus
type FilterKeyMap struct {
	Apply  key.Binding
	Cancel key.Binding
}

// DefaultFilterKeyMap returns the filter input bindings
func DefaultFilterKeyMap() FilterKeyMap {
	return FilterKeyMap{
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply filter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns the bindings shown while filtering
func (k FilterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Cancel}
}

// FullHelp returns the bindings shown while filtering
func (k FilterKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
