package cart

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("not enough stock for the requested quantity")
	ErrQuantityOverStock = errors.New("cart already holds the maximum available quantity")
)

// Line is a single cart entry: quantity plus the display snapshot taken when
// the product was added. The price here is advisory only; checkout re-reads
// the live product price.
type Line struct {
	ProductID int64           `json:"-"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	ImageURL  string          `json:"image_url"`
	Slug      string          `json:"slug"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

// Snapshot is the per-session cart, keyed by product id.
type Snapshot struct {
	lines map[int64]Line
}

func NewSnapshot() Snapshot {
	return Snapshot{lines: make(map[int64]Line)}
}

// Decode rebuilds a snapshot from its stored JSON form. A malformed payload
// or malformed entry yields an empty cart, never an error: a broken session
// cart must not take checkout down with it.
func Decode(data []byte) Snapshot {
	snap := NewSnapshot()
	if len(data) == 0 {
		return snap
	}

	var raw map[string]Line
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewSnapshot()
	}

	for key, line := range raw {
		productID, err := strconv.ParseInt(key, 10, 64)
		if err != nil || productID <= 0 || line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return NewSnapshot()
		}
		line.ProductID = productID
		snap.lines[productID] = line
	}
	return snap
}

func (s Snapshot) Encode() ([]byte, error) {
	raw := make(map[string]Line, len(s.lines))
	for id, line := range s.lines {
		raw[strconv.FormatInt(id, 10)] = line
	}
	return json.Marshal(raw)
}

func (s Snapshot) IsEmpty() bool {
	return len(s.lines) == 0
}

func (s Snapshot) Len() int {
	return len(s.lines)
}

func (s Snapshot) Get(productID int64) (Line, bool) {
	line, ok := s.lines[productID]
	return line, ok
}

// Lines returns cart entries ordered by product id so iteration order, and
// therefore row-lock order during checkout, is deterministic.
func (s Snapshot) Lines() []Line {
	out := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func (s Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Add merges quantity into the cart, capped by the product's current stock.
// The display snapshot is refreshed on every add.
func (s *Snapshot) Add(line Line, stock int32) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if line.Quantity > stock {
		return ErrInsufficientStock
	}

	if s.lines == nil {
		s.lines = make(map[int64]Line)
	}

	current := s.lines[line.ProductID]
	newQuantity := current.Quantity + line.Quantity
	if newQuantity > stock {
		return ErrQuantityOverStock
	}

	line.Quantity = newQuantity
	s.lines[line.ProductID] = line
	return nil
}

func (s *Snapshot) Remove(productID int64) (Line, bool) {
	line, ok := s.lines[productID]
	if ok {
		delete(s.lines, productID)
	}
	return line, ok
}
