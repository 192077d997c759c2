package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Toggle      key.Binding
	Edit        key.Binding
	Delete      key.Binding
	ZoomWeek    key.Binding
	ZoomMonth   key.Binding
	LinkMode    key.Binding
	MonthColors key.Binding
	Reload      key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "collapse/expand"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "backspace", "x"),
			key.WithHelp("del/x", "delete"),
		),
		ZoomWeek: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "week zoom"),
		),
		ZoomMonth: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "month zoom"),
		),
		LinkMode: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "link dependency"),
		),
		MonthColors: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "month colors"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FooterBindings returns the bindings shown in the footer for normal mode.
func FooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Toggle, km.Edit, km.Delete, km.LinkMode, km.ZoomWeek, km.ZoomMonth, km.Quit}
}

// LinkFooterBindings returns the bindings shown while link mode is armed.
func LinkFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Toggle, km.Back}
}
