// Package parser reads QIF wire text into an entity registry.
//
// The format is line oriented: a mode header selects the section, each
// following line carries a one-character field tag, and a lone "^"
// terminates the current item. The parser buffers the lines of one item
// and flushes them into the registry when the terminator arrives, so
// field order within an item does not matter.
//
// Unknown field tags are ignored. Unknown mode headers switch the parser
// into a discard state until the next recognized header, so files carrying
// sections this package does not model (memorized transactions, budgets)
// still parse. Malformed dates and amounts are fatal and reported as a
// ParseError with the offending line number.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkuiper/qif"
)

type section int

const (
	secNone section = iota
	secClass
	secCategory
	secAccount
	secSecurity
	secEvent
	secPortfolio
	secPrice
	secSkip
)

// Recognized mode headers.
const (
	headerClass     = "!Type:Class"
	headerCategory  = "!Type:Cat"
	headerAccount   = "!Account"
	headerSecurity  = "!Type:Security"
	headerPrices    = "!Type:Prices"
	headerMemorized = "!Type:Memorized"
	headerBudget    = "!Type:Budget"
	headerType      = "!Type:"
	headerOption    = "!Option:"
	headerClear     = "!Clear:"
)

// field is one buffered tagged line of the current item.
type field struct {
	tag  byte
	text string
	full string
	line int
}

// Parser reads one input stream into a registry. A Parser is single use;
// construct a fresh one per input.
type Parser struct {
	dialect  *qif.Dialect
	filename string

	file    *qif.File
	section section
	active  *qif.Account
	pending *qif.Account
	line    int
	buf     []field
}

// Option configures a Parser.
type Option func(*Parser)

// WithFilename sets the filename reported in parse errors.
func WithFilename(name string) Option {
	return func(p *Parser) { p.filename = name }
}

// New returns a parser targeting the given dialect.
func New(d *qif.Dialect, opts ...Option) *Parser {
	p := &Parser{dialect: d, file: qif.NewFile(d)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads r into a fresh registry using the given dialect.
func Parse(d *qif.Dialect, r io.Reader, opts ...Option) (*qif.File, error) {
	return New(d, opts...).Parse(r)
}

// ParseString parses wire text held in a string.
func ParseString(d *qif.Dialect, text string, opts ...Option) (*qif.File, error) {
	return Parse(d, strings.NewReader(text), opts...)
}

// Parse consumes the reader and returns the populated, sorted registry.
func (p *Parser) Parse(r io.Reader) (*qif.File, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		p.line++
		raw := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		if raw[0] == '!' {
			if err := p.header(raw); err != nil {
				return nil, err
			}
			continue
		}

		if raw == qif.EndOfItem {
			if err := p.flush(); err != nil {
				return nil, err
			}
			continue
		}

		if p.section == secSkip || p.section == secNone {
			continue
		}

		f := field{tag: raw[0], full: raw, line: p.line}
		if len(raw) > 1 {
			f.text = raw[1:]
		}
		p.buf = append(p.buf, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("qif: reading input: %w", err)
	}

	// Tolerate a missing terminator on the final item.
	if err := p.flush(); err != nil {
		return nil, err
	}

	p.file.SortAll()
	return p.file, nil
}

// header switches sections. An item left unterminated before a header is
// flushed first.
func (p *Parser) header(raw string) error {
	if err := p.flush(); err != nil {
		return err
	}

	switch {
	case raw == headerClass:
		p.section = secClass
	case raw == headerCategory:
		p.section = secCategory
	case raw == headerAccount:
		p.section = secAccount
	case raw == headerSecurity:
		p.section = secSecurity
	case raw == headerPrices:
		p.section = secPrice
	case raw == headerMemorized, raw == headerBudget:
		p.section = secSkip
	case strings.HasPrefix(raw, headerOption), strings.HasPrefix(raw, headerClear):
		// AutoSwitch toggles do not change the section.
	case strings.HasPrefix(raw, headerType):
		p.enterEvents(strings.TrimPrefix(raw, headerType))
	default:
		p.section = secSkip
	}
	return nil
}

// enterEvents binds the following transaction items to the active account.
// A preceding account section names the account; without one an implicit
// account named after the type header is registered.
func (p *Parser) enterEvents(typ string) {
	if p.pending != nil {
		p.active = p.pending
	} else {
		p.active = p.file.RegisterAccount(typ, typ)
	}

	if p.active.IsInvestment() || typ == qif.AccountInvestment {
		p.section = secPortfolio
	} else {
		p.section = secEvent
	}
}

func (p *Parser) flush() error {
	if len(p.buf) == 0 {
		return nil
	}
	buf := p.buf
	p.buf = p.buf[:0]

	switch p.section {
	case secClass:
		return p.flushClass(buf)
	case secCategory:
		return p.flushCategory(buf)
	case secAccount:
		return p.flushAccount(buf)
	case secSecurity:
		return p.flushSecurity(buf)
	case secEvent:
		return p.flushEvent(buf)
	case secPortfolio:
		return p.flushPortfolio(buf)
	case secPrice:
		return p.flushPrice(buf)
	}
	return nil
}

func (p *Parser) flushClass(buf []field) error {
	var name, desc string
	for _, f := range buf {
		switch f.tag {
		case 'N':
			name = f.text
		case 'D':
			desc = f.text
		}
	}
	if name == "" {
		return p.errorf(nil, "class item without a name")
	}

	c := p.file.RegisterClass(name)
	if desc != "" {
		c.SetDesc(desc)
	}
	return nil
}

func (p *Parser) flushCategory(buf []field) error {
	var name, desc string
	income := false
	for _, f := range buf {
		switch f.tag {
		case 'N':
			name = f.text
		case 'D':
			desc = f.text
		case 'I':
			income = true
		case 'E':
			income = false
		}
	}
	if name == "" {
		return p.errorf(nil, "category item without a name")
	}

	c := p.file.RegisterCategory(name, income)
	if desc != "" {
		c.SetDesc(desc)
	}
	return nil
}

func (p *Parser) flushAccount(buf []field) error {
	var name, desc, typ string
	var limit decimal.Decimal
	hasLimit := false
	for _, f := range buf {
		switch f.tag {
		case 'N':
			name = f.text
		case 'D':
			desc = f.text
		case 'T':
			typ = f.text
		case 'L':
			v, err := qif.ParseMoney(f.text)
			if err != nil {
				return p.errorf(err, "account %q: %v", name, err)
			}
			limit, hasLimit = v, true
		}
	}
	if name == "" {
		return p.errorf(nil, "account item without a name")
	}
	if typ == "" {
		typ = qif.AccountBank
	}

	a := p.file.RegisterAccount(name, typ)
	if desc != "" {
		a.SetDesc(desc)
	}
	if hasLimit {
		a.SetCreditLimit(limit)
	}
	p.pending = a
	return nil
}

func (p *Parser) flushSecurity(buf []field) error {
	var name, symbol, typ string
	for _, f := range buf {
		switch f.tag {
		case 'N':
			name = f.text
		case 'S':
			symbol = f.text
		case 'T':
			typ = f.text
		}
	}
	if name == "" {
		return p.errorf(nil, "security item without a name")
	}

	p.file.RegisterSecurity(name, symbol, typ)
	return nil
}

// flushEvent assembles a cash transaction. The payee text is registered as
// a payee entity only when the category line is a plain category (or
// absent); transfer legs keep their synthesized payee text verbatim so a
// rewrite reproduces it.
func (p *Parser) flushEvent(buf []field) error {
	date, rest, err := p.takeDate(buf)
	if err != nil {
		return err
	}

	ev := qif.NewEvent(date)
	rec := ev.Record()

	var payee string
	var address []string
	var category *qif.Line
	var split *qif.Record[qif.EventLineType]

	for _, f := range rest {
		switch f.tag {
		case 'T', 'U':
			v, err := qif.ParseMoney(f.text)
			if err != nil {
				return p.errorAt(f, err)
			}
			ev.SetAmount(v)
		case 'C':
			ev.SetCleared(f.text != "")
		case 'N':
			ev.SetReference(f.text)
		case 'P':
			payee = f.text
		case 'M':
			ev.SetMemo(f.text)
		case 'A':
			if f.text != "" {
				address = append(address, f.text)
			}
		case 'L':
			category = p.file.ParseTransferLine(f.text)
			rec.Set(qif.EvtLineCategory, category)
		case 'S':
			split = qif.NewRecord[qif.EventLineType]()
			split.Set(qif.EvtLineSplitCategory, p.file.ParseTransferLine(f.text))
			rec.AddSplit(split)
		case 'E':
			if split != nil {
				split.Set(qif.EvtLineSplitMemo, qif.NewStringLine(f.text))
			}
		case '$':
			v, err := qif.ParseMoney(f.text)
			if err != nil {
				return p.errorAt(f, err)
			}
			if split == nil {
				split = qif.NewRecord[qif.EventLineType]()
				rec.AddSplit(split)
			}
			split.Set(qif.EvtLineSplitAmount, qif.NewMoneyLine(v))
			split = nil
		}
	}

	if payee != "" {
		if category == nil || category.Kind() == qif.KindCategory {
			ev.SetPayee(p.file.RegisterPayee(payee))
		} else {
			ev.SetPayeeText(payee)
		}
	}
	if len(address) > 0 {
		ev.SetAddress(strings.Join(address, ", "))
	}

	p.eventAccount().AddEvent(ev)
	return nil
}

func (p *Parser) flushPortfolio(buf []field) error {
	date, rest, err := p.takeDate(buf)
	if err != nil {
		return err
	}

	action := qif.Action("")
	for _, f := range rest {
		if f.tag == 'N' {
			action = qif.Action(f.text)
		}
	}

	ev := qif.NewPortfolioEvent(date, action)
	rec := ev.Record()

	var payee string
	var transfer *qif.Line

	for _, f := range rest {
		switch f.tag {
		case 'Y':
			ev.SetSecurity(p.file.RegisterSecurity(f.text, "", ""))
		case 'I':
			v, err := qif.ParseMoney(f.text)
			if err != nil {
				return p.errorAt(f, err)
			}
			ev.SetPrice(v)
		case 'Q':
			v, err := qif.ParseMoney(f.text)
			if err != nil {
				return p.errorAt(f, err)
			}
			// StkSplit carries a ratio in the quantity field.
			if action == qif.ActionStkSplit {
				ev.SetRatio(v)
			} else {
				ev.SetQuantity(v)
			}
		case 'T', 'U':
			v, err := qif.ParseMoney(f.text)
			if err != nil {
				return p.errorAt(f, err)
			}
			ev.SetAmount(v)
		case 'C':
			ev.SetCleared(f.text != "")
		case 'P':
			payee = f.text
		case 'M':
			ev.SetMemo(f.text)
		case 'O':
			v, err := qif.ParseMoney(f.text)
			if err != nil {
				return p.errorAt(f, err)
			}
			ev.SetCommission(v)
		case 'L':
			transfer = p.file.ParseTransferLine(f.text)
			rec.Set(qif.PortLineTransferAccount, transfer)
		case '$':
			v, err := qif.ParseMoney(f.text)
			if err != nil {
				return p.errorAt(f, err)
			}
			rec.Set(qif.PortLineTransferAmount, qif.NewMoneyLine(v))
		}
	}

	// Same payee rule as flushEvent: only a payee on a plain-category (or
	// transfer-free) record names a real counterparty.
	if payee != "" {
		if transfer == nil || transfer.Kind() == qif.KindCategory {
			ev.SetPayee(p.file.RegisterPayee(payee))
		} else {
			ev.SetPayeeText(payee)
		}
	}

	p.eventAccount().AddEvent(ev)
	return nil
}

// flushPrice parses the CSV price rows of a price item. Each row carries a
// quoted symbol, a price (quoted or not, per dialect leniency both are
// accepted) and a quoted date.
func (p *Parser) flushPrice(buf []field) error {
	for _, f := range buf {
		parts := strings.Split(f.full, ",")
		if len(parts) != 3 {
			return p.errorf(nil, "invalid price row %q", f.full)
		}

		symbol := unquote(parts[0])
		value, err := qif.ParseMoney(unquote(parts[1]))
		if err != nil {
			return p.errorAt(f, err)
		}
		date, err := qif.ParseDate(unquote(parts[2]), p.dialect.BaseYear)
		if err != nil {
			return p.errorAt(f, err)
		}

		s, ok := p.file.LookupSymbol(symbol)
		if !ok {
			// A price for a symbol with no security record; register a
			// minimal one named after the symbol.
			s = p.file.RegisterSecurity(symbol, symbol, "")
		}
		s.AddPrice(date, value)
	}
	return nil
}

// takeDate extracts and parses the date field of a transaction item,
// returning the remaining fields.
func (p *Parser) takeDate(buf []field) (date time.Time, rest []field, err error) {
	for _, f := range buf {
		if f.tag == 'D' {
			d, err := qif.ParseDate(f.text, p.dialect.BaseYear)
			if err != nil {
				return time.Time{}, nil, p.errorAt(f, err)
			}
			date = d
		} else {
			rest = append(rest, f)
		}
	}
	if date.IsZero() {
		return time.Time{}, nil, p.errorf(nil, "transaction item without a date")
	}
	return date, rest, nil
}

// eventAccount returns the active account, registering a fallback when
// transaction items appear before any mode header named one.
func (p *Parser) eventAccount() *qif.Account {
	if p.active == nil {
		p.active = p.file.RegisterAccount(qif.AccountBank, qif.AccountBank)
	}
	return p.active
}

func (p *Parser) errorAt(f field, err error) *ParseError {
	return &ParseError{
		Filename:   p.filename,
		Line:       f.line,
		Message:    err.Error(),
		Underlying: err,
	}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
