package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muhammadidrees/raseed/internal/app"
	"github.com/muhammadidrees/raseed/internal/config"
	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/muhammadidrees/raseed/internal/render"
	"github.com/muhammadidrees/raseed/internal/service"
)

var previewFormats = []string{config.FormatPDF, config.FormatHTML, config.FormatText}

// PreviewModel is the home screen: the invoice as it will be generated
type PreviewModel struct {
	app *app.App

	// Data
	doc     *render.Document
	missing domain.Violations
	format  string

	loading   bool
	err       error
	statusMsg string
}

type previewDataMsg struct {
	doc     *render.Document
	missing domain.Violations
	err     error
}

type generatedMsg struct {
	path string
	err  error
}

// NewPreviewModel creates a new preview model
func NewPreviewModel(a *app.App) tea.Model {
	return &PreviewModel{
		app:     a,
		format:  a.Config.Invoice.DefaultFormat,
		loading: true,
	}
}

func (m *PreviewModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *PreviewModel) loadData() tea.Cmd {
	return func() tea.Msg {
		doc, err := m.app.InvoiceService.Preview(context.Background())

		var incomplete *service.IncompleteError
		if errors.As(err, &incomplete) {
			return previewDataMsg{missing: incomplete.Violations}
		}
		if err != nil {
			return previewDataMsg{err: err}
		}
		return previewDataMsg{doc: &doc}
	}
}

func (m *PreviewModel) generate() tea.Cmd {
	format := m.format
	return func() tea.Msg {
		path, err := m.app.InvoiceService.Generate(context.Background(), format, "")
		return generatedMsg{path: path, err: err}
	}
}

func (m *PreviewModel) nextFormat() {
	for i, f := range previewFormats {
		if f == m.format {
			m.format = previewFormats[(i+1)%len(previewFormats)]
			return
		}
	}
	m.format = previewFormats[0]
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewDataMsg:
		m.loading = false
		m.err = msg.err
		m.doc = msg.doc
		m.missing = msg.missing
		return m, nil

	case generatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Written to %s", msg.path)
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch {
		case key.Matches(msg, DefaultKeyMap.Generate):
			if m.doc != nil {
				m.statusMsg = ""
				m.err = nil
				return m, m.generate()
			}
		case key.Matches(msg, DefaultKeyMap.Format):
			m.nextFormat()
		}
	}

	return m, nil
}

func (m *PreviewModel) View() string {
	if m.loading {
		return "Loading preview..."
	}

	var s string
	if m.err != nil {
		s += errStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	}

	if m.doc == nil {
		return s + m.renderMissing()
	}

	inv := m.doc.Invoice
	s += titleStyle.Render("Invoice") + "  " + numberStyle.Render("#"+inv.Number) + "\n\n"

	// Summary boxes
	dates := fmt.Sprintf("Issued:  %s\nDue:     %s\nPeriod:  %s\nTerms:   %s",
		inv.IssuedDate, inv.DueDateText, inv.Period, inv.TermsLabel)
	amounts := fmt.Sprintf("Subtotal:  %s", formatMoney(inv.Subtotal))
	if inv.ShowTax {
		amounts += fmt.Sprintf("\n%s  %s", inv.TaxLabel(), formatMoney(inv.Tax))
	}
	amounts += "\nTotal:     " + totalStyle.Render(formatMoney(inv.Total))
	parties := fmt.Sprintf("From:  %s\nTo:    %s\nBank:  %s",
		m.doc.Personal.Name, m.doc.Company.Name, m.doc.Bank.IBAN)

	s += lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(dates), " ",
		boxStyle.Render(amounts), " ",
		boxStyle.Render(parties),
	) + "\n\n"

	// Line items
	limit := 8
	for i, line := range inv.Lines {
		if i == limit {
			s += subtitleStyle.Render(fmt.Sprintf("  ... and %d more", len(inv.Lines)-limit)) + "\n"
			break
		}
		s += fmt.Sprintf("  %-36s %8s x %12s = %14s\n",
			truncateStr(line.Description, 36),
			line.Quantity.String(),
			formatMoney(line.UnitPrice),
			formatMoney(line.LineTotal),
		)
	}

	s += "\n" + subtitleStyle.Render("  "+m.doc.ThankYou()) + "\n"

	if m.statusMsg != "" {
		s += "\n" + statusStyle.Render("  "+m.statusMsg) + "\n"
	}

	s += "\n" + helpStyle.Render(fmt.Sprintf("  g: generate %s  f: change format", strings.ToUpper(m.format)))

	return s
}

func (m *PreviewModel) renderMissing() string {
	var s string
	s += titleStyle.Render("Almost there") + "\n\n"
	s += subtitleStyle.Render("  Fill in these details before the invoice can be generated:") + "\n\n"
	for _, field := range m.missing.Fields() {
		s += missingStyle.Render("  - "+field) + "\n"
	}
	s += "\n" + helpStyle.Render("  m: your details  c: company  b: bank")
	return s
}
