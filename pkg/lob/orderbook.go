package lob

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Book is a single-instrument limit order book matching under strict
// price-time priority. It is not safe for concurrent use: exactly one
// mutating call (ProcessOrder or CancelOrder) may be in flight at a time,
// callers needing concurrency must serialize externally.
type Book struct {
	bids *sideBook
	asks *sideBook

	// timestamp of the most recently processed event, never rewound
	lastTime int64
}

func NewBook() *Book {
	return &Book{
		bids: newSideBook(Bid),
		asks: newSideBook(Ask),
	}
}

// ProcessOrder matches one incoming event against the opposing side and
// returns the fills in match order, plus the residual order now resting in
// the book (limit orders only, nil when fully filled). On a validation
// error the book is left untouched.
func (b *Book) ProcessOrder(ev Event) ([]Trade, *Order, error) {
	if ev.Quantity.Sign() <= 0 {
		return nil, nil, ErrInvalidQuantity
	}

	switch ev.Type {
	case Market:
		if !ev.Side.Valid() {
			return nil, nil, ErrInvalidSide
		}
		b.advanceTime(ev.Timestamp)
		return b.processMarket(ev), nil, nil
	case Limit:
		if !ev.Side.Valid() {
			return nil, nil, ErrInvalidSide
		}
		b.advanceTime(ev.Timestamp)
		trades, resting := b.processLimit(ev)
		return trades, resting, nil
	default:
		return nil, nil, ErrInvalidOrderType
	}
}

// CancelOrder removes a resting order by id. An unknown or already-filled
// id is not an error: orders can fill between a caller's decision to
// cancel and the cancel arriving, so it reports false and leaves the book
// unchanged.
func (b *Book) CancelOrder(side Side, orderID string) (bool, error) {
	sb, err := b.sideBook(side)
	if err != nil {
		return false, err
	}
	o, ok := sb.orderByID(orderID)
	if !ok {
		return false, nil
	}
	sb.removeOrder(o)
	return true, nil
}

// matchAtLevel is the matching kernel shared by the market and limit
// paths. It drains the head of one price level while quantity remains,
// emitting one trade per head order touched. Quantity is conserved
// exactly: the sum of emitted trade quantities plus the returned remainder
// equals qtyToTrade.
func (b *Book) matchAtLevel(resting *sideBook, level *priceLevel, qtyToTrade decimal.Decimal, ev Event) (decimal.Decimal, []Trade) {
	var trades []Trade

	for level.len() > 0 && qtyToTrade.Sign() > 0 {
		head := level.head()
		var traded decimal.Decimal
		var makerRemaining *decimal.Decimal

		switch qtyToTrade.Cmp(head.Quantity) {
		case -1:
			// head partially consumed, stays at the front of its queue
			traded = qtyToTrade
			level.reduce(head, qtyToTrade)
			remaining := head.Quantity
			makerRemaining = &remaining
			qtyToTrade = decimal.Zero
		case 0:
			traded = qtyToTrade
			resting.removeOrder(head)
			qtyToTrade = decimal.Zero
		default:
			traded = head.Quantity
			resting.removeOrder(head)
			qtyToTrade = qtyToTrade.Sub(traded)
		}

		trades = append(trades, Trade{
			Timestamp: b.lastTime,
			Price:     head.Price,
			Quantity:  traded,
			Maker: TradeParty{
				TraderID:  head.TraderID,
				Side:      resting.side,
				OrderID:   head.ID,
				Remaining: makerRemaining,
			},
			Taker: TradeParty{
				TraderID: ev.TraderID,
				Side:     resting.side.Opposite(),
			},
		})
	}

	return qtyToTrade, trades
}

// processMarket sweeps the opposing side best price first until the order
// is filled or the side is empty. Any unfilled remainder is dropped: a
// market order never rests.
func (b *Book) processMarket(ev Event) []Trade {
	var trades []Trade
	opp := b.opposite(ev.Side)
	qtyToTrade := ev.Quantity

	for qtyToTrade.Sign() > 0 {
		level, ok := opp.bestLevel()
		if !ok {
			break
		}
		var fills []Trade
		qtyToTrade, fills = b.matchAtLevel(opp, level, qtyToTrade, ev)
		trades = append(trades, fills...)
	}

	return trades
}

// processLimit crosses against the opposing side while the best opposing
// price is within the limit, then rests any remainder at the limit price.
func (b *Book) processLimit(ev Event) ([]Trade, *Order) {
	var trades []Trade
	opp := b.opposite(ev.Side)
	qtyToTrade := ev.Quantity

	for qtyToTrade.Sign() > 0 {
		level, ok := opp.bestLevel()
		if !ok || !crosses(ev.Side, ev.Price, level.price) {
			break
		}
		var fills []Trade
		qtyToTrade, fills = b.matchAtLevel(opp, level, qtyToTrade, ev)
		trades = append(trades, fills...)
	}

	if qtyToTrade.Sign() > 0 {
		resting := &Order{
			ID:        ev.OrderID,
			Side:      ev.Side,
			Price:     ev.Price,
			Quantity:  qtyToTrade,
			Timestamp: ev.Timestamp,
			TraderID:  ev.TraderID,
		}
		b.same(ev.Side).insert(resting)
		return trades, resting
	}

	return trades, nil
}

func crosses(side Side, limit, bookPrice decimal.Decimal) bool {
	if side == Bid {
		return bookPrice.LessThanOrEqual(limit)
	}
	return bookPrice.GreaterThanOrEqual(limit)
}

func (b *Book) advanceTime(ts int64) {
	if ts > b.lastTime {
		b.lastTime = ts
	}
}

// Time reports the timestamp of the most recently processed event.
func (b *Book) Time() int64 {
	return b.lastTime
}

func (b *Book) sideBook(side Side) (*sideBook, error) {
	switch side {
	case Bid:
		return b.bids, nil
	case Ask:
		return b.asks, nil
	default:
		return nil, ErrInvalidSide
	}
}

func (b *Book) same(side Side) *sideBook {
	if side == Bid {
		return b.bids
	}
	return b.asks
}

func (b *Book) opposite(side Side) *sideBook {
	if side == Bid {
		return b.asks
	}
	return b.bids
}

// BestBid reports the highest resting bid price, false when the side is
// empty.
func (b *Book) BestBid() (decimal.Decimal, bool) {
	return b.bids.bestPrice()
}

func (b *Book) WorstBid() (decimal.Decimal, bool) {
	return b.bids.worstPrice()
}

// BestAsk reports the lowest resting ask price, false when the side is
// empty.
func (b *Book) BestAsk() (decimal.Decimal, bool) {
	return b.asks.bestPrice()
}

func (b *Book) WorstAsk() (decimal.Decimal, bool) {
	return b.asks.worstPrice()
}

// VolumeAtPrice reports the aggregate resting quantity at one exact
// price, zero when no level exists there.
func (b *Book) VolumeAtPrice(side Side, price decimal.Decimal) (decimal.Decimal, error) {
	sb, err := b.sideBook(side)
	if err != nil {
		return decimal.Zero, err
	}
	l, ok := sb.level(price)
	if !ok {
		return decimal.Zero, nil
	}
	return l.volume, nil
}

// OrderExists reports whether an order id is currently resting on the
// given side.
func (b *Book) OrderExists(side Side, orderID string) (bool, error) {
	sb, err := b.sideBook(side)
	if err != nil {
		return false, err
	}
	_, ok := sb.orderByID(orderID)
	return ok, nil
}

// NumOrders reports the number of resting orders on one side.
func (b *Book) NumOrders(side Side) (int, error) {
	sb, err := b.sideBook(side)
	if err != nil {
		return 0, err
	}
	return sb.numOrders(), nil
}

// LevelInfo is one row of a depth snapshot.
type LevelInfo struct {
	Price  decimal.Decimal
	Volume decimal.Decimal
	Orders int
}

// Depth returns the side's levels best-first: bids high to low, asks low
// to high.
func (b *Book) Depth(side Side) ([]LevelInfo, error) {
	sb, err := b.sideBook(side)
	if err != nil {
		return nil, err
	}
	levels := make([]LevelInfo, 0, sb.levels.Len())
	sb.scanBest(func(l *priceLevel) bool {
		levels = append(levels, LevelInfo{Price: l.price, Volume: l.volume, Orders: l.len()})
		return true
	})
	return levels, nil
}

// String renders the full book for debugging: bids high to low, then asks
// low to high, one line per level with price, aggregate volume and order
// count.
func (b *Book) String() string {
	var sb strings.Builder
	sb.WriteString("*** bids ***\n")
	b.bids.scanBest(func(l *priceLevel) bool {
		fmt.Fprintf(&sb, "%s\n", l)
		return true
	})
	sb.WriteString("*** asks ***\n")
	b.asks.scanBest(func(l *priceLevel) bool {
		fmt.Fprintf(&sb, "%s\n", l)
		return true
	})
	return sb.String()
}
