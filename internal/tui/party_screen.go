package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muhammadidrees/raseed/internal/app"
	"github.com/muhammadidrees/raseed/internal/domain"
)

// partyKind selects which details a PartyModel edits
type partyKind int

const (
	partyPersonal partyKind = iota
	partyCompany
	partyBank
)

// partyDef binds a details form to one part of the record
type partyDef struct {
	title  string
	fields []fieldSpec
	values func(r *domain.InvoiceRecord) []string
	check  func(r *domain.InvoiceRecord) domain.Violations
	save   func(ctx context.Context, a *app.App, values []string) error
}

var addressFields = []fieldSpec{
	{label: "Street:", placeholder: "Main Street 1", charLimit: 120, width: 50},
	{label: "City:", placeholder: "Berlin", charLimit: 80, width: 30},
	{label: "Zip:", placeholder: "10115", charLimit: 20, width: 15},
}

func addressValues(a domain.Address) []string {
	return []string{a.Street, a.City, a.Zip}
}

func addressFrom(values []string) domain.Address {
	return domain.Address{
		Street: strings.TrimSpace(values[0]),
		City:   strings.TrimSpace(values[1]),
		Zip:    strings.TrimSpace(values[2]),
	}
}

var partyDefs = map[partyKind]partyDef{
	partyPersonal: {
		title: "Your Details",
		fields: append([]fieldSpec{
			{label: "Name:", placeholder: "Jane Doe", charLimit: 100, width: 40},
			{label: "Email:", placeholder: "jane@example.com", charLimit: 100, width: 40},
			{label: "Tax ID:", placeholder: "Optional", charLimit: 40, width: 25},
		}, addressFields...),
		values: func(r *domain.InvoiceRecord) []string {
			p := r.Personal
			return append([]string{p.Name, p.Email, p.TaxID}, addressValues(p.Address)...)
		},
		check: func(r *domain.InvoiceRecord) domain.Violations { return r.Personal.Check() },
		save: func(ctx context.Context, a *app.App, v []string) error {
			return a.InvoiceService.SavePersonal(ctx, &domain.PersonalInfo{
				Name:    strings.TrimSpace(v[0]),
				Email:   strings.TrimSpace(v[1]),
				TaxID:   strings.TrimSpace(v[2]),
				Address: addressFrom(v[3:]),
			})
		},
	},
	partyCompany: {
		title: "Company",
		fields: append([]fieldSpec{
			{label: "Name:", placeholder: "Acme GmbH", charLimit: 120, width: 40},
		}, addressFields...),
		values: func(r *domain.InvoiceRecord) []string {
			return append([]string{r.Company.Name}, addressValues(r.Company.Address)...)
		},
		check: func(r *domain.InvoiceRecord) domain.Violations { return r.Company.Check() },
		save: func(ctx context.Context, a *app.App, v []string) error {
			return a.InvoiceService.SaveCompany(ctx, &domain.CompanyInfo{
				Name:    strings.TrimSpace(v[0]),
				Address: addressFrom(v[1:]),
			})
		},
	},
	partyBank: {
		title: "Bank Account",
		fields: []fieldSpec{
			{label: "Bank:", placeholder: "N26", charLimit: 80, width: 30},
			{label: "Account title:", placeholder: "Jane Doe", charLimit: 100, width: 40},
			{label: "IBAN:", placeholder: "DE89 3704 0044 0532 0130 00", charLimit: 42, width: 42},
			{label: "BIC:", placeholder: "COBADEFFXXX", charLimit: 11, width: 15},
		},
		values: func(r *domain.InvoiceRecord) []string {
			b := r.Bank
			return []string{b.Name, b.AccountTitle, b.IBAN, b.BIC}
		},
		check: func(r *domain.InvoiceRecord) domain.Violations { return r.Bank.Check() },
		save: func(ctx context.Context, a *app.App, v []string) error {
			return a.InvoiceService.SaveBank(ctx, &domain.BankInfo{
				Name:         strings.TrimSpace(v[0]),
				AccountTitle: strings.TrimSpace(v[1]),
				IBAN:         strings.ToUpper(strings.ReplaceAll(v[2], " ", "")),
				BIC:          strings.ToUpper(strings.TrimSpace(v[3])),
			})
		},
	},
}

type partySavedMsg struct {
	err error
}

type presetAppliedMsg struct {
	name string
	err  error
}

// PartyModel shows and edits personal, company or bank details
type PartyModel struct {
	app  *app.App
	kind partyKind
	def  partyDef

	record    *domain.InvoiceRecord
	loading   bool
	err       error
	statusMsg string

	// Form state
	editing  bool
	form     form
	autoForm bool // open the form once data loads

	// Company presets
	presets []string
	cursor  int
}

// NewPartyModel creates a details screen for the given kind
func NewPartyModel(a *app.App, kind partyKind) tea.Model {
	m := &PartyModel{
		app:     a,
		kind:    kind,
		def:     partyDefs[kind],
		loading: true,
	}
	if kind == partyCompany {
		m.presets = a.Config.PresetSlugs()
	}
	return m
}

// IsCapturingInput returns true when the form is active
func (m *PartyModel) IsCapturingInput() bool {
	return m.editing
}

func (m *PartyModel) Init() tea.Cmd {
	return loadRecord(m.app)
}

func (m *PartyModel) openForm() tea.Cmd {
	m.editing = true
	m.err = nil
	m.statusMsg = ""
	m.form = newForm(m.def.fields, m.def.values(m.record))
	return m.form.focusOn(0)
}

func (m *PartyModel) save() tea.Cmd {
	values := m.form.values()
	return func() tea.Msg {
		return partySavedMsg{err: m.def.save(context.Background(), m.app, values)}
	}
}

func (m *PartyModel) applyPreset(slug string) tea.Cmd {
	return func() tea.Msg {
		company, err := m.app.InvoiceService.ApplyCompanyPreset(context.Background(), slug)
		if err != nil {
			return presetAppliedMsg{err: err}
		}
		return presetAppliedMsg{name: company.Name}
	}
}

func (m *PartyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(OpenFormMsg); ok {
		if m.loading {
			m.autoForm = true
			return m, nil
		}
		return m, m.openForm()
	}

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
			m.record = msg.record
		}
		if m.autoForm && m.record != nil {
			m.autoForm = false
			return m, m.openForm()
		}
		return m, nil

	case presetAppliedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Company set to %s", msg.name)
		m.loading = true
		return m, loadRecord(m.app)

	case tea.KeyMsg:
		if m.loading || m.record == nil {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Select):
			return m, m.openForm()
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Apply):
			if len(m.presets) > 0 {
				return m, m.applyPreset(m.presets[m.cursor])
			}
		}
	}

	return m, nil
}

func (m *PartyModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(partySavedMsg); ok {
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.editing = false
		m.statusMsg = "Saved"
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

func (m *PartyModel) View() string {
	if m.editing {
		return m.form.view("Edit "+m.def.title, m.err)
	}

	if m.loading {
		return "Loading..."
	}
	if m.record == nil {
		return errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render(m.def.title) + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	values := m.def.values(m.record)
	for i, fs := range m.def.fields {
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render(fs.label), valueStyle.Render(orDash(values[i])))
	}

	if missing := m.def.check(m.record); !missing.Empty() {
		s += "\n" + missingStyle.Render("  Missing: "+strings.Join(missing.Fields(), ", ")) + "\n"
	}

	help := "  enter: edit"
	if len(m.presets) > 0 {
		s += "\n" + subtitleStyle.Render("  Presets") + "\n"
		for i, slug := range m.presets {
			preset, _ := m.app.Config.CompanyPreset(slug)
			indicator := "  "
			line := fmt.Sprintf("%-12s %s", slug, preset.Name)
			if i == m.cursor {
				indicator = "> "
				line = valueStyle.Bold(true).Render(line)
			}
			s += "  " + indicator + line + "\n"
		}
		help += "  j/k: choose preset  a: apply preset"
	}

	s += "\n" + helpStyle.Render(help)
	return s
}
