package diag

import (
	"fortio.org/safecast"
)

type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	capped, err := safecast.Conv[uint16](max)
	if err != nil {
		capped = ^uint16(0)
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   capped,
	}
}

// Add appends a diagnostic, respecting the cap.
// Returns false if the diagnostic was dropped (cap reached).
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Dropped reports how many diagnostics were rejected at the cap.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors returns true if at least one diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if at least one diagnostic has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) ErrorCount() int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			n++
		}
	}
	return n
}

func (b *Bag) WarningCount() int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == SevWarning {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// Items returns a read-only slice of diagnostics.
// Do not modify the returned slice, it aliases the Bag's storage.
func (b *Bag) Items() []Diagnostic {
	return b.items
}
