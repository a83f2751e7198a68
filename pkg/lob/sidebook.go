package lob

import (
	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

// sideBook is the price index for one side of the book: a btree of price
// levels ordered best-first, a price-keyed map for O(1) level lookup and
// an order-id map for O(1) cancel-by-id. The three structures are mutated
// together and never diverge.
type sideBook struct {
	side    Side
	levels  *btree.BTreeG[*priceLevel]
	byPrice map[string]*priceLevel
	orders  map[string]*Order
}

func newSideBook(side Side) *sideBook {
	// Bids sort descending so Min() is the best (highest) bid; asks sort
	// ascending so Min() is the best (lowest) ask.
	less := func(a, b *priceLevel) bool { return a.price.LessThan(b.price) }
	if side == Bid {
		less = func(a, b *priceLevel) bool { return a.price.GreaterThan(b.price) }
	}

	return &sideBook{
		side:    side,
		levels:  btree.NewBTreeG(less),
		byPrice: make(map[string]*priceLevel),
		orders:  make(map[string]*Order),
	}
}

func priceKey(p decimal.Decimal) string {
	return p.String()
}

func (sb *sideBook) numOrders() int {
	return len(sb.orders)
}

func (sb *sideBook) level(price decimal.Decimal) (*priceLevel, bool) {
	l, ok := sb.byPrice[priceKey(price)]
	return l, ok
}

func (sb *sideBook) bestLevel() (*priceLevel, bool) {
	return sb.levels.MinMut()
}

func (sb *sideBook) bestPrice() (decimal.Decimal, bool) {
	l, ok := sb.levels.Min()
	if !ok {
		return decimal.Zero, false
	}
	return l.price, true
}

func (sb *sideBook) worstPrice() (decimal.Decimal, bool) {
	l, ok := sb.levels.Max()
	if !ok {
		return decimal.Zero, false
	}
	return l.price, true
}

func (sb *sideBook) orderByID(id string) (*Order, bool) {
	o, ok := sb.orders[id]
	return o, ok
}

// insert rests an order at its price, creating the level on first use.
// The order is always appended behind existing orders at that price.
func (sb *sideBook) insert(o *Order) {
	key := priceKey(o.Price)
	l, ok := sb.byPrice[key]
	if !ok {
		l = newPriceLevel(o.Price)
		sb.byPrice[key] = l
		sb.levels.Set(l)
	}
	l.append(o)
	sb.orders[o.ID] = o
}

// removeOrder takes an order out of its level and collapses the level if
// it became empty.
func (sb *sideBook) removeOrder(o *Order) {
	l := o.level
	l.remove(o)
	delete(sb.orders, o.ID)
	if l.len() == 0 {
		delete(sb.byPrice, priceKey(l.price))
		sb.levels.Delete(l)
	}
}

// scanBest iterates levels best-first and stops when fn returns false.
func (sb *sideBook) scanBest(fn func(*priceLevel) bool) {
	sb.levels.Scan(fn)
}
