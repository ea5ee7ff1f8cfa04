package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muhammadidrees/raseed/internal/app"
)

// settings form field indices
const (
	settingsFieldTaxRate = iota
	settingsFieldOutputDir
	settingsFieldFormat
	settingsFieldAddr
)

var settingsFields = []fieldSpec{
	{label: "Tax Rate (%):", placeholder: "0", charLimit: 10, width: 10},
	{label: "Output Directory:", placeholder: "/path/to/invoices", charLimit: 256, width: 60},
	{label: "Default Format (pdf, txt, html):", placeholder: "pdf", charLimit: 4, width: 10},
	{label: "Preview Server Address:", placeholder: "127.0.0.1:8080", charLimit: 64, width: 30},
}

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app       *app.App
	editing   bool
	form      form
	err       error
	statusMsg string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{app: a}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.editing
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() tea.Cmd {
	cfg := m.app.Config
	m.form = newForm(settingsFields, []string{
		strconv.FormatFloat(cfg.Invoice.TaxRate, 'f', -1, 64),
		cfg.Invoice.OutputDir,
		cfg.Invoice.DefaultFormat,
		cfg.Server.Addr,
	})
	return m.form.focusOn(settingsFieldTaxRate)
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	values := m.form.values()
	return func() tea.Msg {
		taxRate, err := strconv.ParseFloat(strings.TrimSpace(values[settingsFieldTaxRate]), 64)
		if err != nil {
			return settingsSavedMsg{err: fmt.Errorf("tax rate must be a number")}
		}

		outputDir := strings.TrimSpace(values[settingsFieldOutputDir])
		if outputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("output directory is required")}
		}

		// Validate a copy so a rejected edit leaves the running config alone
		cfg := *m.app.Config
		cfg.Invoice.TaxRate = taxRate
		cfg.Invoice.OutputDir = outputDir
		cfg.Invoice.DefaultFormat = strings.ToLower(strings.TrimSpace(values[settingsFieldFormat]))
		cfg.Server.Addr = strings.TrimSpace(values[settingsFieldAddr])
		if err := cfg.Validate(); err != nil {
			return settingsSavedMsg{err: err}
		}

		*m.app.Config = cfg
		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		if key.Matches(msg, DefaultKeyMap.Select) {
			m.editing = true
			m.statusMsg = ""
			return m, m.initForm()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(settingsSavedMsg); ok {
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.editing = false
		m.statusMsg = "Settings saved"
		return m, nil
	}

	action, cmd := m.form.update(msg)
	switch action {
	case formCancel:
		m.editing = false
		m.err = nil
		return m, nil
	case formSubmit:
		return m, m.saveSettings()
	}
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.editing {
		return m.form.view("Edit Settings", m.err)
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config

	s += subtitleStyle.Render("  Invoice Settings") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Tax Rate:"), valueStyle.Render(cfg.TaxRate().String()+"%"))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Output Directory:"), valueStyle.Render(cfg.Invoice.OutputDir))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Default Format:"), valueStyle.Render(cfg.Invoice.DefaultFormat))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Preview Server:"), valueStyle.Render(cfg.Server.Addr))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Database:"), valueStyle.Render(cfg.Database.Path))

	s += "\n" + helpStyle.Render("  enter: edit settings")

	return s
}
