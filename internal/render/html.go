package render

import (
	"html/template"
	"io"

	"github.com/muhammadidrees/raseed/internal/derivation"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: Helvetica, Arial, sans-serif;
      font-size: 12px;
      color: #111111;
    }
    .invoice { max-width: 794px; margin: 0 auto; }
    .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
    .logo { font-size: 28px; font-weight: bold; }
    .number { color: #666666; font-size: 14px; }
    .detail { display: flex; gap: 16px; justify-content: space-between; }
    .detail .label { font-weight: bold; }
    .row { display: flex; gap: 40px; margin-bottom: 24px; }
    .column { flex: 1; }
    .column h3 { font-size: 14px; margin: 0 0 6px; }
    .column p { margin: 2px 0; }
    table { width: 100%; border-collapse: collapse; border-top: 1px solid #000; border-bottom: 1px solid #000; }
    th { background: #f8f8f8; }
    th, td { padding: 5px; text-align: center; border-bottom: 1px solid #e0e0e0; }
    th.description, td.description { text-align: left; width: 50%; }
    tr.total td { background: #f0f0f0; font-weight: bold; border-top: 1px solid #000; }
    tr.total td.label { text-align: right; }
    .payment { margin-top: 32px; padding: 10px 20px; background: #f9f9f9; border-radius: 5px; }
    .payment h3 { font-size: 14px; margin: 0 0 8px; }
    .payment .detail { margin: 2px 0; }
    .footer { margin-top: 32px; text-align: center; font-size: 10px; color: #666666; }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div>
        <div class="logo">INVOICE</div>
        <div class="number">#{{.Invoice.Number}}</div>
      </div>
      <div>
        <div class="detail"><span class="label">Issued Date:</span><span>{{.Invoice.IssuedDate}}</span></div>
        <div class="detail"><span class="label">Due Date:</span><span>{{.Invoice.DueDateText}}</span></div>
        <div class="detail"><span class="label">Period:</span><span>{{.Invoice.Period}}</span></div>
        <div class="detail"><span class="label">Terms:</span><span>{{.Invoice.TermsLabel}}</span></div>
      </div>
    </div>
    <div class="row">
      <div class="column">
        <h3>Billed To:</h3>
        <p>{{.Company.Name}}</p>
        <p>{{.Company.Address.Street}}</p>
        <p>{{.CompanyCityLine}}</p>
      </div>
      <div class="column">
        <h3>From:</h3>
        <p>{{.Personal.Name}}</p>
        {{with .TaxIDLine}}<p>{{.}}</p>{{end}}
        {{with .Personal.Email}}<p>{{.}}</p>{{end}}
        <p>{{.Personal.Address.Street}}</p>
        <p>{{.PersonalCityLine}}</p>
      </div>
    </div>
    <table>
      <thead>
        <tr>
          <th class="description">Description</th>
          <th>Rate (€)</th>
          <th>Qty</th>
          <th>Line Total (€)</th>
        </tr>
      </thead>
      <tbody>
        {{range .Invoice.Lines}}
        <tr>
          <td class="description">{{.Description}}</td>
          <td>{{formatNumber .UnitPrice}}</td>
          <td>{{.Quantity.String}}</td>
          <td>{{formatNumber .LineTotal}}</td>
        </tr>
        {{end}}
        <tr class="total"><td colspan="3" class="label">Subtotal</td><td>{{formatAmount .Invoice.Subtotal}}</td></tr>
        {{if .Invoice.ShowTax}}
        <tr class="total"><td colspan="3" class="label">{{.Invoice.TaxLabel}}</td><td>{{formatAmount .Invoice.Tax}}</td></tr>
        {{end}}
        <tr class="total"><td colspan="3" class="label">Total</td><td>{{formatAmount .Invoice.Total}}</td></tr>
      </tbody>
    </table>
    <div class="payment">
      <h3>Payment Details:</h3>
      <div class="detail"><span class="label">Bank Name:</span><span>{{.Bank.Name}}</span></div>
      <div class="detail"><span class="label">Account Title:</span><span>{{.Bank.AccountTitle}}</span></div>
      <div class="detail"><span class="label">IBAN:</span><span>{{.Bank.IBAN}}</span></div>
      <div class="detail"><span class="label">BIC:</span><span>{{.Bank.BIC}}</span></div>
    </div>
    <div class="footer">
      <div>{{.AmountDue}}</div>
      <div>{{.ThankYou}}</div>
    </div>
  </div>
</body>
</html>
`

// HTMLRenderer renders the invoice as a standalone HTML page
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"formatAmount": derivation.FormatAmount,
		"formatNumber": derivation.FormatNumber,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) Extension() string   { return "html" }
func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *HTMLRenderer) Render(w io.Writer, doc Document) error {
	return r.tpl.Execute(w, doc)
}
