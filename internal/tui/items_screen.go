package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muhammadidrees/raseed/internal/app"
	"github.com/muhammadidrees/raseed/internal/derivation"
	"github.com/muhammadidrees/raseed/internal/domain"
)

// itemMode represents the current screen mode
type itemMode int

const (
	itemModeList itemMode = iota
	itemModeNew
	itemModeEdit
)

// form field indices
const (
	itemFieldDescription = iota
	itemFieldQuantity
	itemFieldPrice
)

var itemFields = []fieldSpec{
	{label: "Description:", placeholder: "Software development", charLimit: 200, width: 50},
	{label: "Quantity:", placeholder: "1", charLimit: 12, width: 15},
	{label: "Price (€):", placeholder: "0.00", charLimit: 15, width: 15},
}

// ItemsModel displays a navigable list of line items with create/edit forms
type ItemsModel struct {
	app       *app.App
	items     []domain.LineItem
	invoice   *derivation.DerivedInvoice
	cursor    int
	loading   bool
	err       error
	statusMsg string

	// Form state
	mode       itemMode
	form       form
	editingKey string // empty for a new item
}

type itemsDataMsg struct {
	items   []domain.LineItem
	invoice *derivation.DerivedInvoice
	err     error
}

type itemSavedMsg struct {
	status string
	err    error
}

// NewItemsModel creates a new line items screen model
func NewItemsModel(a *app.App) tea.Model {
	return &ItemsModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ItemsModel) IsCapturingInput() bool {
	return m.mode == itemModeNew || m.mode == itemModeEdit
}

func (m *ItemsModel) Init() tea.Cmd {
	return m.loadItems()
}

func (m *ItemsModel) loadItems() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		record, err := m.app.InvoiceService.Record(ctx)
		if err != nil {
			return itemsDataMsg{err: err}
		}
		inv, err := derivation.Derive(*record, m.app.InvoiceService.TaxRate())
		if err != nil {
			return itemsDataMsg{err: err}
		}
		return itemsDataMsg{items: record.Invoice.Items, invoice: inv}
	}
}

func (m *ItemsModel) initForm(editing *domain.LineItem) tea.Cmd {
	values := []string{"", "1", "0"}
	m.editingKey = ""
	if editing != nil {
		values = []string{
			editing.Description,
			strconv.FormatFloat(editing.Quantity, 'f', -1, 64),
			strconv.FormatFloat(editing.Price, 'f', -1, 64),
		}
		m.editingKey = editing.Key
	}

	m.form = newForm(itemFields, values)
	return m.form.focusOn(itemFieldDescription)
}

func parseAmount(label, s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", label, s)
	}
	return v, nil
}

func (m *ItemsModel) saveItem() tea.Cmd {
	description := strings.TrimSpace(m.form.value(itemFieldDescription))
	qtyStr := m.form.value(itemFieldQuantity)
	priceStr := m.form.value(itemFieldPrice)
	editingKey := m.editingKey

	return func() tea.Msg {
		ctx := context.Background()

		qty, err := parseAmount("quantity", qtyStr)
		if err != nil {
			return itemSavedMsg{err: err}
		}
		price, err := parseAmount("price", priceStr)
		if err != nil {
			return itemSavedMsg{err: err}
		}

		if editingKey != "" {
			item := domain.LineItem{Key: editingKey, Description: description, Quantity: qty, Price: price}
			if err := m.app.InvoiceService.UpdateItem(ctx, item); err != nil {
				return itemSavedMsg{err: err}
			}
			return itemSavedMsg{status: "Item updated"}
		}

		if _, err := m.app.InvoiceService.AddItem(ctx, description, qty, price); err != nil {
			return itemSavedMsg{err: err}
		}
		return itemSavedMsg{status: "Item added"}
	}
}

func (m *ItemsModel) deleteItem(key string) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.InvoiceService.RemoveItem(context.Background(), key); err != nil {
			return itemSavedMsg{err: err}
		}
		return itemSavedMsg{status: "Item removed"}
	}
}

func (m *ItemsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle form mode
	if m.mode == itemModeNew || m.mode == itemModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadItems()

	case itemsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.items = msg.items
			m.invoice = msg.invoice
			if m.cursor >= len(m.items) {
				m.cursor = max(0, len(m.items)-1)
			}
		}
		return m, nil

	case itemSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = msg.status
		m.loading = true
		return m, m.loadItems()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = itemModeNew
			return m, m.initForm(nil)
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected item
			if m.cursor < len(m.items) {
				m.mode = itemModeEdit
				item := m.items[m.cursor]
				return m, m.initForm(&item)
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if m.cursor == 0 {
				m.err = fmt.Errorf("the first item cannot be deleted")
				return m, nil
			}
			if m.cursor < len(m.items) {
				return m, m.deleteItem(m.items[m.cursor].Key)
			}
		}
	}

	return m, nil
}

func (m *ItemsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(itemSavedMsg); ok {
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = itemModeList
		m.statusMsg = msg.status
		m.loading = true
		return m, m.loadItems()
	}

	action, cmd := m.form.update(msg)
	switch action {
	case formCancel:
		m.mode = itemModeList
		m.err = nil
		return m, nil
	case formSubmit:
		return m, m.saveItem()
	}
	return m, cmd
}

func (m *ItemsModel) View() string {
	if m.mode == itemModeNew {
		return m.form.view("New Line Item", m.err)
	}
	if m.mode == itemModeEdit {
		return m.form.view("Edit Line Item", m.err)
	}
	return m.viewList()
}

func (m *ItemsModel) viewList() string {
	if m.loading {
		return "Loading line items..."
	}

	if m.invoice == nil {
		return errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render("Line Items") + "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += subtitleStyle.Render(fmt.Sprintf("  %-36s %8s %14s %14s", "Description", "Qty", "Price", "Total")) + "\n"
	for i, line := range m.invoice.Lines {
		s += m.renderLine(i, line) + "\n"
	}

	s += "\n"
	s += fmt.Sprintf("  %60s %14s\n", "Subtotal", formatMoney(m.invoice.Subtotal))
	if m.invoice.ShowTax {
		s += fmt.Sprintf("  %60s %14s\n", m.invoice.TaxLabel(), formatMoney(m.invoice.Tax))
	}
	s += fmt.Sprintf("  %60s %s\n", "Total", totalStyle.Render(fmt.Sprintf("%14s", formatMoney(m.invoice.Total))))

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  d: delete")

	return s
}

func (m *ItemsModel) renderLine(index int, line derivation.DerivedLine) string {
	indicator := "  "
	style := lipgloss.NewStyle()
	if index == m.cursor {
		indicator = "> "
		style = style.Bold(true).Foreground(primaryColor)
	}

	description := line.Description
	if description == "" {
		description = "(no description)"
	}

	return style.Render(fmt.Sprintf("%s%-36s %8s %14s %14s",
		indicator,
		truncateStr(description, 36),
		line.Quantity.String(),
		formatMoney(line.UnitPrice),
		formatMoney(line.LineTotal),
	))
}
