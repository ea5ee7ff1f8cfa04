package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Preview  key.Binding
	Invoice  key.Binding
	Items    key.Binding
	Personal key.Binding
	Company  key.Binding
	Bank     key.Binding
	Settings key.Binding

	// Actions
	Select   key.Binding
	New      key.Binding
	Delete   key.Binding
	Generate key.Binding
	Format   key.Binding
	Terms    key.Binding
	Apply    key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Invoice:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invoice")),
	Items:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "line items")),
	Personal: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "me")),
	Company:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "company")),
	Bank:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bank")),
	Settings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
	Format:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "format")),
	Terms:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle terms")),
	Apply:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply preset")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
