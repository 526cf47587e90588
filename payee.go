package qif

// Payee is a registered payee. QIF has no payee section; payees exist so
// that event records can reference a canonical instance by name.
type Payee struct {
	name string
}

// Name returns the unique display name.
func (p *Payee) Name() string { return p.name }
