package qif

import "strings"

// Class is a registered class (tag).
type Class struct {
	name string
	desc string
}

// Name returns the unique display name.
func (c *Class) Name() string { return c.name }

// Desc returns the optional description.
func (c *Class) Desc() string { return c.desc }

// SetDesc sets the optional description.
func (c *Class) SetDesc(desc string) { c.desc = desc }

func (c *Class) record() *Record[ClassLineType] {
	r := NewRecord[ClassLineType]()
	r.Set(ClassLineName, NewStringLine(c.name))
	if c.desc != "" {
		r.Set(ClassLineDesc, NewStringLine(c.desc))
	}
	return r
}

// FormatRecord renders the class record.
func (c *Class) FormatRecord(d *Dialect, b *strings.Builder) {
	c.record().Format(d, b)
}
