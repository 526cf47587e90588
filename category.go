package qif

import "strings"

// Category is a registered event category. The name is the full name: a
// category whose name contains the category separator is a child of the
// category named by the prefix. Only two levels are supported.
type Category struct {
	name   string
	desc   string
	income bool
}

// Name returns the full unique display name, e.g. "Income:Interest".
func (c *Category) Name() string { return c.name }

// Desc returns the optional description.
func (c *Category) Desc() string { return c.desc }

// SetDesc sets the optional description.
func (c *Category) SetDesc(desc string) { c.desc = desc }

// IsIncome reports whether the category is an income category.
func (c *Category) IsIncome() bool { return c.income }

// IsExpense reports whether the category is an expense category.
func (c *Category) IsExpense() bool { return !c.income }

// ParentName returns the parent portion of the name and whether the
// category is a child.
func (c *Category) ParentName() (string, bool) {
	idx := strings.Index(c.name, CategorySeparator)
	if idx < 0 {
		return "", false
	}
	return c.name[:idx], true
}

func (c *Category) record() *Record[CategoryLineType] {
	r := NewRecord[CategoryLineType]()
	r.Set(CatLineName, NewStringLine(c.name))
	if c.desc != "" {
		r.Set(CatLineDesc, NewStringLine(c.desc))
	}
	// The income and expense markers are bare tag lines.
	if c.income {
		r.Set(CatLineIncome, NewStringLine(""))
	} else {
		r.Set(CatLineExpense, NewStringLine(""))
	}
	return r
}

// FormatRecord renders the category record.
func (c *Category) FormatRecord(d *Dialect, b *strings.Builder) {
	c.record().Format(d, b)
}

// ParentCategory groups a top-level category with its ordered children.
// Children sort independently of the parent list.
type ParentCategory struct {
	parent   *Category
	children []*Category
}

// Parent returns the top-level category.
func (p *ParentCategory) Parent() *Category { return p.parent }

// Children returns the child categories. After File.SortAll they are in
// name order.
func (p *ParentCategory) Children() []*Category { return p.children }

func (p *ParentCategory) addChild(c *Category) {
	p.children = append(p.children, c)
}
