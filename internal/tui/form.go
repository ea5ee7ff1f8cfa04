package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fieldSpec describes one text input of a form
type fieldSpec struct {
	label       string
	placeholder string
	charLimit   int
	width       int
}

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// form is a column of text inputs with tab navigation
type form struct {
	specs  []fieldSpec
	fields []textinput.Model
	focus  int
}

func newForm(specs []fieldSpec, values []string) form {
	f := form{
		specs:  specs,
		fields: make([]textinput.Model, len(specs)),
	}

	for i, fs := range specs {
		f.fields[i] = textinput.New()
		f.fields[i].Placeholder = fs.placeholder
		f.fields[i].CharLimit = fs.charLimit
		f.fields[i].Width = fs.width
		if i < len(values) {
			f.fields[i].SetValue(values[i])
		}
	}

	return f
}

// focusOn moves the cursor to field i
func (f *form) focusOn(i int) tea.Cmd {
	f.fields[f.focus].Blur()
	f.focus = i
	return f.fields[i].Focus()
}

func (f *form) value(i int) string {
	return f.fields[i].Value()
}

func (f *form) values() []string {
	out := make([]string, len(f.fields))
	for i := range f.fields {
		out[i] = f.fields[i].Value()
	}
	return out
}

func (f *form) update(msg tea.Msg) (formAction, tea.Cmd) {
	count := len(f.fields)

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return formCancel, nil

		case "tab", "down":
			return formNone, f.focusOn((f.focus + 1) % count)

		case "shift+tab", "up":
			return formNone, f.focusOn((f.focus - 1 + count) % count)

		case "enter":
			// Save on the last field, otherwise advance
			if f.focus == count-1 {
				return formSubmit, nil
			}
			return formNone, f.focusOn(f.focus + 1)

		case "ctrl+s":
			return formSubmit, nil
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return formNone, cmd
}

func (f *form) view(title string, err error) string {
	var s string
	s += titleStyle.Render(title) + "\n\n"

	for i, fs := range f.specs {
		indicator := "  "
		style := subtitleStyle
		if i == f.focus {
			indicator = "> "
			style = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, style.Render(fs.label), f.fields[i].View())
	}

	if err != nil {
		s += errStyle.Render(fmt.Sprintf("  Error: %v", err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
