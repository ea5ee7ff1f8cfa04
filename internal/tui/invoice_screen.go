package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muhammadidrees/raseed/internal/app"
	"github.com/muhammadidrees/raseed/internal/derivation"
	"github.com/muhammadidrees/raseed/internal/domain"
)

// form field indices
const (
	invoiceFieldDate = iota
	invoiceFieldTerms
	invoiceFieldCustomDays
)

const inputDateLayout = "2006-01-02"

var invoiceFields = []fieldSpec{
	{label: "Invoice date (YYYY-MM-DD):", placeholder: "2025-01-31", charLimit: 10, width: 12},
	{label: "Payment terms (due_on_receipt, net_15, net_30, net_60, custom):", placeholder: "net_30", charLimit: 20, width: 20},
	{label: "Custom days (1-365):", placeholder: "Only for custom terms", charLimit: 3, width: 25},
}

// InvoiceModel shows and edits the invoice date and payment terms
type InvoiceModel struct {
	app       *app.App
	data      *domain.InvoiceData
	loading   bool
	err       error
	statusMsg string

	editing bool
	form    form
}

type invoiceSavedMsg struct {
	err error
}

// NewInvoiceModel creates a new invoice screen
func NewInvoiceModel(a *app.App) tea.Model {
	return &InvoiceModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *InvoiceModel) IsCapturingInput() bool {
	return m.editing
}

func (m *InvoiceModel) Init() tea.Cmd {
	return loadRecord(m.app)
}

func (m *InvoiceModel) openForm(focus int) tea.Cmd {
	days := ""
	if d := m.data.EffectiveCustomDays(); d != nil {
		days = strconv.Itoa(*d)
	}

	m.editing = true
	m.err = nil
	m.statusMsg = ""
	m.form = newForm(invoiceFields, []string{
		m.data.Date.Format(inputDateLayout),
		string(m.data.Terms),
		days,
	})
	return m.form.focusOn(focus)
}

// parseInvoiceForm applies form values to a copy of data
func parseInvoiceForm(data domain.InvoiceData, values []string) (domain.InvoiceData, error) {
	date, err := time.Parse(inputDateLayout, strings.TrimSpace(values[invoiceFieldDate]))
	if err != nil {
		return data, fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}
	data.Date = date

	terms, err := domain.ParsePaymentTerms(values[invoiceFieldTerms])
	if err != nil {
		return data, err
	}

	var customDays *int
	if s := strings.TrimSpace(values[invoiceFieldCustomDays]); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil {
			return data, fmt.Errorf("custom days must be a whole number")
		}
		customDays = &days
	}
	data.SetTerms(terms, customDays)

	return data, data.Validate()
}

func (m *InvoiceModel) save() tea.Cmd {
	data, err := parseInvoiceForm(*m.data, m.form.values())
	return func() tea.Msg {
		if err != nil {
			return invoiceSavedMsg{err: err}
		}
		return invoiceSavedMsg{err: m.app.InvoiceService.SaveInvoiceData(context.Background(), &data)}
	}
}

// cycleTerms moves to the next payment terms; custom terms without days
// open the form so the days can be entered
func (m *InvoiceModel) cycleTerms() tea.Cmd {
	next := domain.AllPaymentTerms[0]
	for i, t := range domain.AllPaymentTerms {
		if t == m.data.Terms {
			next = domain.AllPaymentTerms[(i+1)%len(domain.AllPaymentTerms)]
			break
		}
	}

	if next == domain.TermsCustom && m.data.CustomDays == nil {
		cmd := m.openForm(invoiceFieldCustomDays)
		m.form.fields[invoiceFieldTerms].SetValue(string(domain.TermsCustom))
		return cmd
	}

	data := *m.data
	data.SetTerms(next, data.CustomDays)
	return func() tea.Msg {
		return invoiceSavedMsg{err: m.app.InvoiceService.SaveInvoiceData(context.Background(), &data)}
	}
}

func (m *InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, loadRecord(m.app)

	case recordMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.data = &msg.record.Invoice
		}
		return m, nil

	case invoiceSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loading = true
		return m, loadRecord(m.app)

	case tea.KeyMsg:
		if m.loading || m.data == nil {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Select):
			return m, m.openForm(invoiceFieldDate)
		case key.Matches(msg, DefaultKeyMap.Terms):
			return m, m.cycleTerms()
		}
	}

	return m, nil
}

func (m *InvoiceModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(invoiceSavedMsg); ok {
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.editing = false
		m.statusMsg = "Invoice saved"
		m.loading = true
		return m, loadRecord(m.app)
	}

	action, cmd := m.form.update(msg)
	switch action {
	case formCancel:
		m.editing = false
		m.err = nil
		return m, nil
	case formSubmit:
		return m, m.save()
	}
	return m, cmd
}

func (m *InvoiceModel) View() string {
	if m.editing {
		return m.form.view("Edit Invoice", m.err)
	}

	if m.loading {
		return "Loading invoice..."
	}
	if m.data == nil {
		return errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	d := m.data
	days := d.EffectiveCustomDays()
	due := derivation.ResolveDueDate(d.Date, d.Terms, days)

	var s string
	s += titleStyle.Render("Invoice") + "  " + numberStyle.Render("#"+derivation.GenerateInvoiceNumber(d.Date)) + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	rows := [][2]string{
		{"Issued Date:", derivation.FormatDate(d.Date)},
		{"Terms:", derivation.DescribeTerms(d.Terms, days)},
		{"Due Date:", derivation.FormatDate(due)},
		{"Period:", derivation.GeneratePeriod(d.Date)},
	}
	for _, row := range rows {
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render(row[0]), valueStyle.Render(row[1]))
	}

	s += "\n" + subtitleStyle.Render("  Payment is "+derivation.PaymentSentence(d.Terms, days)+".") + "\n"
	s += "\n" + helpStyle.Render("  enter: edit date/terms  t: cycle terms")

	return s
}
