package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muhammadidrees/raseed/internal/app"
	"github.com/muhammadidrees/raseed/internal/domain"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenPreview Screen = iota
	ScreenInvoice
	ScreenItems
	ScreenPersonal
	ScreenCompany
	ScreenBank
	ScreenSettings
	screenCount
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenPreview:
		return "Preview"
	case ScreenInvoice:
		return "Invoice"
	case ScreenItems:
		return "Line Items"
	case ScreenPersonal:
		return "Your Details"
	case ScreenCompany:
		return "Company"
	case ScreenBank:
		return "Bank"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// screenKeys maps navigation bindings to screens
var screenKeys = []struct {
	binding key.Binding
	screen  Screen
}{
	{DefaultKeyMap.Preview, ScreenPreview},
	{DefaultKeyMap.Invoice, ScreenInvoice},
	{DefaultKeyMap.Items, ScreenItems},
	{DefaultKeyMap.Personal, ScreenPersonal},
	{DefaultKeyMap.Company, ScreenCompany},
	{DefaultKeyMap.Bank, ScreenBank},
	{DefaultKeyMap.Settings, ScreenSettings},
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	screens [screenCount]tea.Model

	// First-run state
	checkedFirstRun bool

	// Error state
	err error
}

// New creates a new root model
func New(a *app.App) Model {
	m := Model{
		app:           a,
		currentScreen: ScreenPreview,
	}
	m.screens[ScreenPreview] = NewPreviewModel(a)
	return m
}

func newScreen(a *app.App, screen Screen) tea.Model {
	switch screen {
	case ScreenPreview:
		return NewPreviewModel(a)
	case ScreenInvoice:
		return NewInvoiceModel(a)
	case ScreenItems:
		return NewItemsModel(a)
	case ScreenPersonal:
		return NewPartyModel(a, partyPersonal)
	case ScreenCompany:
		return NewPartyModel(a, partyCompany)
	case ScreenBank:
		return NewPartyModel(a, partyBank)
	case ScreenSettings:
		return NewSettingsModel(a)
	}
	return nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.checkFirstRun(),
		m.screens[ScreenPreview].Init(),
	)
}

// checkFirstRun reports which details are still missing
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		record, err := m.app.InvoiceService.Record(context.Background())
		if err != nil {
			return firstRunCheckMsg{} // assume complete on error
		}
		return firstRunCheckMsg{missing: record.Check()}
	}
}

// firstMissingScreen picks the details screen to open on first run
func firstMissingScreen(missing domain.Violations) (Screen, bool) {
	// Fields() is sorted, so personal would come last without this pass
	for _, field := range missing.Fields() {
		if strings.HasPrefix(field, "personal.") {
			return ScreenPersonal, true
		}
	}
	for _, field := range missing.Fields() {
		switch {
		case strings.HasPrefix(field, "company."):
			return ScreenCompany, true
		case strings.HasPrefix(field, "bank."):
			return ScreenBank, true
		}
	}
	return ScreenPreview, false
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	if m.screens[screen] == nil {
		m.screens[screen] = newScreen(m.app, screen)
		return m.screens[screen].Init()
	}
	return func() tea.Msg { return RefreshDataMsg{} }
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screens[m.currentScreen].(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

func (m *Model) switchTo(screen Screen) tea.Cmd {
	m.currentScreen = screen
	m.err = nil
	return m.initScreen(screen)
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			if key.Matches(msg, DefaultKeyMap.Quit) {
				return m, tea.Quit
			}
			for _, sk := range screenKeys {
				if key.Matches(msg, sk.binding) {
					return m, m.switchTo(sk.screen)
				}
			}
		} else if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case firstRunCheckMsg:
		if m.checkedFirstRun {
			return m, nil
		}
		m.checkedFirstRun = true
		if screen, ok := firstMissingScreen(msg.missing); ok {
			initCmd := m.switchTo(screen)
			openFormCmd := func() tea.Msg { return OpenFormMsg{} }
			return m, tea.Sequence(initCmd, openFormCmd)
		}
		return m, nil

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if screen := m.screens[m.currentScreen]; screen != nil {
		m.screens[m.currentScreen], cmd = screen.Update(msg)
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("raseed - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[P]review  [I]nvoice  [L]ine items  [M]e  [C]ompany  [B]ank  [,] Settings  [Q]uit")

	// Current screen content
	content := "Loading..."
	if screen := m.screens[m.currentScreen]; screen != nil {
		content = screen.View()
	}

	// Error display
	errorDisplay := ""
	if m.err != nil {
		errorDisplay = errStyle.Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
