package cart

import (
	"sort"
	"sync"

	"github.com/excavacionesmoreno/quote-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Item is the catalog data copied into a line when it is first added.
type Item struct {
	ID        string
	Name      string
	Unit      enums.ProductUnit
	UnitLabel string
	Price     decimal.Decimal
	Category  enums.ProductCategory
}

// Line is a cart entry. Its Item fields are frozen at first insertion.
type Line struct {
	Item
	Quantity int

	seq uint64
}

// Subtotal is price × quantity at full precision.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Op names the mutation that produced a Change.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
)

// Change is delivered to observers after a mutation has been applied.
type Change struct {
	Op       Op
	ItemID   string
	Snapshot Snapshot
}

// Observer receives every effective change of a Store.
type Observer func(Change)

// Store holds the lines of one visitor's cart.
//
// Count and Total are always derived from the current lines; nothing stores them.
// Observers are called after the lock is released, so they may read the store.
type Store struct {
	mu        sync.Mutex
	lines     map[string]*Line
	seq       uint64
	observers map[uint64]Observer
	nextObs   uint64
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{
		lines:     map[string]*Line{},
		observers: map[uint64]Observer{},
	}
}

// Subscribe registers fn for future changes and returns a func that removes it.
func (s *Store) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// Add increments the quantity of an existing line or inserts a new one.
// Existing lines keep the name, unit and price they were first added with.
// A quantity below one leaves the cart untouched and returns false.
func (s *Store) Add(item Item, quantity int) bool {
	if quantity < 1 {
		return false
	}

	s.mu.Lock()
	if current, ok := s.lines[item.ID]; ok {
		current.Quantity += quantity
	} else {
		s.seq++
		s.lines[item.ID] = &Line{Item: item, Quantity: quantity, seq: s.seq}
	}
	s.commit(OpAdd, item.ID)
	return true
}

// Remove deletes the line for id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	if _, ok := s.lines[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.lines, id)
	s.commit(OpRemove, id)
}

// UpdateQuantity sets the absolute quantity of an existing line.
// A quantity of zero or less removes the line; unknown ids are ignored.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.Remove(id)
		return
	}

	s.mu.Lock()
	current, ok := s.lines[id]
	if !ok || current.Quantity == quantity {
		s.mu.Unlock()
		return
	}
	current.Quantity = quantity
	s.commit(OpUpdate, id)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	if len(s.lines) == 0 {
		s.mu.Unlock()
		return
	}
	s.lines = map[string]*Line{}
	s.commit(OpClear, "")
}

// Get returns a copy of the line for id.
func (s *Store) Get(id string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, ok := s.lines[id]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

// Count is the sum of all quantities.
func (s *Store) Count() int {
	return s.Snapshot().Count()
}

// Total is the sum of price × quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	return s.Snapshot().Total()
}

// Lines copies the current lines in insertion order.
func (s *Store) Lines() []Line {
	return s.Snapshot().Lines()
}

// Snapshot copies the current lines in insertion order.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	lines := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].seq < lines[j].seq })
	return Snapshot{lines: lines}
}

// commit must be called with s.mu held; it releases the lock before notifying.
func (s *Store) commit(op Op, id string) {
	snap := s.snapshotLocked()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	change := Change{Op: op, ItemID: id, Snapshot: snap}
	for _, fn := range observers {
		fn(change)
	}
}
