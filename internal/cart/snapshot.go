package cart

import "github.com/shopspring/decimal"

// Snapshot is an immutable view of a cart at one point in time.
type Snapshot struct {
	lines []Line
}

// NewSnapshot builds a snapshot from lines, keeping their order.
func NewSnapshot(lines ...Line) Snapshot {
	out := make([]Line, len(lines))
	copy(out, lines)
	return Snapshot{lines: out}
}

// Lines returns a copy of the lines in insertion order.
func (s Snapshot) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s Snapshot) Len() int {
	return len(s.lines)
}

func (s Snapshot) IsEmpty() bool {
	return len(s.lines) == 0
}

// Count is the sum of all quantities.
func (s Snapshot) Count() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Total sums full-precision subtotals; round only when displaying.
func (s Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
