package domain

// Address is a free-text postal address
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

// PersonalInfo describes the issuer of the invoice
type PersonalInfo struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	TaxID   string  `json:"taxID"`
	Address Address `json:"address"`
}

// CompanyInfo describes the party being billed
type CompanyInfo struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// BankInfo holds payment details printed on the invoice.
// Values are opaque; IBAN and BIC are not format checked.
type BankInfo struct {
	Name         string `json:"name"`
	AccountTitle string `json:"accountTitle"`
	IBAN         string `json:"iban"`
	BIC          string `json:"bic"`
}

func (a Address) check(prefix string, v Violations) {
	Required(prefix+".street", a.Street, v)
	Required(prefix+".city", a.City, v)
	Required(prefix+".zip", a.Zip, v)
}

// Check returns the fields that keep the issuer from being complete.
// Email and tax ID are optional.
func (p PersonalInfo) Check() Violations {
	v := Violations{}
	Required("personal.name", p.Name, v)
	p.Address.check("personal.address", v)
	return v
}

// IsComplete returns true if name and every address field are filled in
func (p PersonalInfo) IsComplete() bool {
	return p.Check().Empty()
}

// Check returns the fields that keep the company from being complete
func (c CompanyInfo) Check() Violations {
	v := Violations{}
	Required("company.name", c.Name, v)
	c.Address.check("company.address", v)
	return v
}

// IsComplete returns true if name and every address field are filled in
func (c CompanyInfo) IsComplete() bool {
	return c.Check().Empty()
}

// Check returns the bank fields that are still empty
func (b BankInfo) Check() Violations {
	v := Violations{}
	Required("bank.name", b.Name, v)
	Required("bank.accountTitle", b.AccountTitle, v)
	Required("bank.iban", b.IBAN, v)
	Required("bank.bic", b.BIC, v)
	return v
}

// IsComplete returns true if every bank field is filled in
func (b BankInfo) IsComplete() bool {
	return b.Check().Empty()
}
