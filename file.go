// Package qif implements the record and entity model of the Quicken
// Interchange Format.
//
// The model is built around three layers: Line, a tagged single-field
// value with symmetric format/parse behaviour; Record, an ordered mapping
// from line type to line representing one logical QIF record; and File,
// the per-operation registry owning the canonical, deduplicated entity
// collections (accounts, payees, categories, classes, securities and
// prices) together with the per-account event ledgers.
//
// A File can be populated from a source ledger by the builder package, or
// from wire text by the parser package, and serialized by the writer
// package. Which QIF variant is targeted is described by a Dialect value
// threaded through all three.
package qif

import (
	"strings"

	"golang.org/x/exp/slices"
)

// File is the entity registry for one export or import operation. All
// registration is idempotent and keyed by display name; collections become
// deterministically sorted once SortAll has been called. A File is not
// safe for concurrent use.
type File struct {
	dialect *Dialect

	accounts   map[string]*Account
	payees     map[string]*Payee
	categories map[string]*Category
	parents    map[string]*ParentCategory
	classes    map[string]*Class
	securities map[string]*Security
	symbols    map[string]*Security

	accountList  []*Account
	payeeList    []*Payee
	parentList   []*ParentCategory
	classList    []*Class
	securityList []*Security
}

// NewFile returns an empty registry targeting the given dialect.
func NewFile(d *Dialect) *File {
	return &File{
		dialect:    d,
		accounts:   make(map[string]*Account),
		payees:     make(map[string]*Payee),
		categories: make(map[string]*Category),
		parents:    make(map[string]*ParentCategory),
		classes:    make(map[string]*Class),
		securities: make(map[string]*Security),
		symbols:    make(map[string]*Security),
	}
}

// Dialect returns the dialect the file targets.
func (f *File) Dialect() *Dialect { return f.dialect }

// SetDialect retargets the file to another dialect. Lines hold structured
// payloads, so retargeting only changes how a later write renders them.
func (f *File) SetDialect(d *Dialect) { f.dialect = d }

// RegisterAccount returns the canonical account with the given name,
// creating it with the given dialect type string on first registration.
func (f *File) RegisterAccount(name, typ string) *Account {
	if a, ok := f.accounts[name]; ok {
		return a
	}
	a := &Account{name: name, typ: typ}
	f.accounts[name] = a
	f.accountList = append(f.accountList, a)
	return a
}

// LookupAccount returns the registered account with the given name.
func (f *File) LookupAccount(name string) (*Account, bool) {
	a, ok := f.accounts[name]
	return a, ok
}

// RegisterPayee returns the canonical payee with the given name.
func (f *File) RegisterPayee(name string) *Payee {
	if p, ok := f.payees[name]; ok {
		return p
	}
	p := &Payee{name: name}
	f.payees[name] = p
	f.payeeList = append(f.payeeList, p)
	return p
}

// LookupPayee returns the registered payee with the given name.
func (f *File) LookupPayee(name string) (*Payee, bool) {
	p, ok := f.payees[name]
	return p, ok
}

// RegisterCategory returns the canonical category with the given full
// name. A name containing the category separator registers (or reuses)
// the parent category and attaches the child to it.
func (f *File) RegisterCategory(name string, income bool) *Category {
	if c, ok := f.categories[name]; ok {
		return c
	}

	c := &Category{name: name, income: income}
	f.categories[name] = c

	if parentName, isChild := c.ParentName(); isChild {
		// The parent inherits the child's direction when it is created
		// implicitly; an explicit registration later keeps the existing
		// instance either way.
		f.RegisterCategory(parentName, income)
		f.parents[parentName].addChild(c)
	} else {
		f.parents[name] = &ParentCategory{parent: c}
		f.parentList = append(f.parentList, f.parents[name])
	}

	return c
}

// LookupCategory returns the registered category with the given full name.
func (f *File) LookupCategory(name string) (*Category, bool) {
	c, ok := f.categories[name]
	return c, ok
}

// RegisterClass returns the canonical class with the given name.
func (f *File) RegisterClass(name string) *Class {
	if c, ok := f.classes[name]; ok {
		return c
	}
	c := &Class{name: name}
	f.classes[name] = c
	f.classList = append(f.classList, c)
	return c
}

// LookupClass returns the registered class with the given name.
func (f *File) LookupClass(name string) (*Class, bool) {
	c, ok := f.classes[name]
	return c, ok
}

// RegisterSecurity returns the canonical security with the given name,
// creating it with the given symbol and type string on first registration.
// A security first seen through an event reference carries no symbol or
// type; a later registration with details fills them in.
func (f *File) RegisterSecurity(name, symbol, typ string) *Security {
	if s, ok := f.securities[name]; ok {
		if s.symbol == "" && symbol != "" {
			s.symbol = symbol
			f.symbols[symbol] = s
		}
		if s.typ == "" && typ != "" {
			s.typ = typ
		}
		return s
	}
	s := &Security{name: name, symbol: symbol, typ: typ}
	f.securities[name] = s
	if symbol != "" {
		f.symbols[symbol] = s
	}
	f.securityList = append(f.securityList, s)
	return s
}

// LookupSecurity returns the registered security with the given name.
func (f *File) LookupSecurity(name string) (*Security, bool) {
	s, ok := f.securities[name]
	return s, ok
}

// LookupSymbol returns the registered security with the given ticker
// symbol. Price rows reference securities by symbol.
func (f *File) LookupSymbol(symbol string) (*Security, bool) {
	s, ok := f.symbols[symbol]
	return s, ok
}

// Accounts returns the account collection.
func (f *File) Accounts() []*Account { return f.accountList }

// Payees returns the payee collection.
func (f *File) Payees() []*Payee { return f.payeeList }

// Parents returns the two-level category tree as parent groups.
func (f *File) Parents() []*ParentCategory { return f.parentList }

// Categories returns all categories, parents before their children.
func (f *File) Categories() []*Category {
	var out []*Category
	for _, p := range f.parentList {
		out = append(out, p.parent)
		out = append(out, p.children...)
	}
	return out
}

// Classes returns the class collection.
func (f *File) Classes() []*Class { return f.classList }

// Securities returns the security collection.
func (f *File) Securities() []*Security { return f.securityList }

// SortAll sorts every collection into its canonical order: entities by
// name, prices and events by date. It must be called exactly once, after
// all registration is complete and before serialization. Sorts are stable
// so repeated runs over the same input produce byte-identical output.
func (f *File) SortAll() {
	byName := func(a, b string) int { return strings.Compare(a, b) }

	slices.SortStableFunc(f.accountList, func(a, b *Account) int { return byName(a.name, b.name) })
	slices.SortStableFunc(f.payeeList, func(a, b *Payee) int { return byName(a.name, b.name) })
	slices.SortStableFunc(f.classList, func(a, b *Class) int { return byName(a.name, b.name) })
	slices.SortStableFunc(f.securityList, func(a, b *Security) int { return byName(a.name, b.name) })
	slices.SortStableFunc(f.parentList, func(a, b *ParentCategory) int { return byName(a.parent.name, b.parent.name) })

	for _, p := range f.parentList {
		slices.SortStableFunc(p.children, func(a, b *Category) int { return byName(a.name, b.name) })
	}

	for _, s := range f.securityList {
		slices.SortStableFunc(s.prices, func(a, b *Price) int { return a.date.Compare(b.date) })
	}

	for _, a := range f.accountList {
		slices.SortStableFunc(a.events, func(x, y EventRecord) int { return x.When().Compare(y.When()) })
	}
}

// ParseTransferLine interprets the text of a category line (an event "L"
// line or split "S" line): a combined "category![account]" form, a
// bracketed account reference, or a bare category name, each with an
// optional class suffix. Referenced entities are registered lazily; a
// transfer may reference an account that never appears as an account
// record.
func (f *File) ParseTransferLine(text string) *Line {
	text = strings.TrimSuffix(strings.TrimSpace(text), CategorySeparator)

	if idx := strings.Index(text, TransferIndicator); idx >= 0 {
		catPart := strings.TrimSuffix(text[:idx], CategorySeparator)
		acctPart, classNames := splitClassList(text[idx+1:])
		if !isAccountRef(acctPart) {
			// Malformed combined form; fall back to free text.
			return NewStringLine(text)
		}
		cat := f.RegisterCategory(catPart, false)
		acct := f.RegisterAccount(acctPart[1:len(acctPart)-1], AccountBank)
		return NewCategoryAccountLine(cat, acct, f.registerClasses(classNames)...)
	}

	rest, classNames := splitClassList(text)
	classes := f.registerClasses(classNames)

	if isAccountRef(rest) {
		acct := f.RegisterAccount(rest[1:len(rest)-1], AccountBank)
		return NewAccountLine(acct, classes...)
	}

	cat := f.RegisterCategory(rest, false)
	return NewCategoryLine(cat, classes...)
}

func (f *File) registerClasses(names []string) []*Class {
	if len(names) == 0 {
		return nil
	}
	classes := make([]*Class, 0, len(names))
	for _, n := range names {
		classes = append(classes, f.RegisterClass(n))
	}
	return classes
}
