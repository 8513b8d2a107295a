package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay key.Binding
	reset      key.Binding
	skip       key.Binding
	longer     key.Binding
	shorter    key.Binding
	task       key.Binding
	takeBreak  key.Binding
	enter      key.Binding
	esc        key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "start/pause"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	skip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip"),
	),
	longer: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+/-", "duration"),
	),
	shorter: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("+/-", "duration"),
	),
	task: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "task"),
	),
	takeBreak: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "break"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start break"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "not now"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
