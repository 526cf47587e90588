package qif

import "strings"

// EndOfItem is the record terminator line.
const EndOfItem = "^"

// Record is an ordered mapping from line type to line, representing one
// logical QIF record. Lines serialize in line-type ordinal order, not
// insertion order. A record may carry split sub-records; these follow the
// parent's own lines on the wire.
type Record[T LineType] struct {
	entries []recordEntry[T]
	splits  []*Record[T]
}

type recordEntry[T LineType] struct {
	typ  T
	line *Line
}

// NewRecord returns an empty record.
func NewRecord[T LineType]() *Record[T] {
	return &Record[T]{}
}

// Set stores a line under the given type, replacing any previous line of
// that type. Insertion keeps entries ordered by ordinal.
func (r *Record[T]) Set(t T, l *Line) {
	if l == nil {
		return
	}

	pos := len(r.entries)
	for i, e := range r.entries {
		if e.typ == t {
			r.entries[i].line = l
			return
		}
		if e.typ.Ordinal() > t.Ordinal() {
			pos = i
			break
		}
	}

	r.entries = append(r.entries, recordEntry[T]{})
	copy(r.entries[pos+1:], r.entries[pos:])
	r.entries[pos] = recordEntry[T]{typ: t, line: l}
}

// Get returns the line stored under the given type.
func (r *Record[T]) Get(t T) (*Line, bool) {
	for _, e := range r.entries {
		if e.typ == t {
			return e.line, true
		}
	}
	return nil, false
}

// Len returns the number of lines in the record, excluding splits.
func (r *Record[T]) Len() int { return len(r.entries) }

// AddSplit appends a split sub-record.
func (r *Record[T]) AddSplit(s *Record[T]) {
	r.splits = append(r.splits, s)
}

// Splits returns the split sub-records in insertion order.
func (r *Record[T]) Splits() []*Record[T] {
	return r.splits
}

// Format writes the record's lines in ordinal order, followed by the lines
// of each split sub-record, terminated by the end-of-item sentinel.
func (r *Record[T]) Format(d *Dialect, b *strings.Builder) {
	r.formatLines(d, b)
	for _, s := range r.splits {
		s.formatLines(d, b)
	}
	b.WriteString(EndOfItem)
	b.WriteByte('\n')
}

func (r *Record[T]) formatLines(d *Dialect, b *strings.Builder) {
	for _, e := range r.entries {
		b.WriteString(e.typ.Tag())
		b.WriteString(e.line.Format(d))
		b.WriteByte('\n')
	}
}
