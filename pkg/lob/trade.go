package lob

import "github.com/shopspring/decimal"

// TradeParty describes one side of a fill. For the resting (maker) party
// OrderID is the id of the order in the book and Remaining carries its new
// book quantity when the fill was partial. The incoming (taker) party has
// no book presence at trade time, so its OrderID is empty and Remaining is
// always nil; the taker's own residual is reported separately by
// ProcessOrder.
type TradeParty struct {
	TraderID  string
	Side      Side
	OrderID   string
	Remaining *decimal.Decimal
}

// Trade is one match emitted by the book. Price is always the resting
// order's price, never the incoming order's limit.
type Trade struct {
	Timestamp int64
	Price     decimal.Decimal
	Quantity  decimal.Decimal
	Maker     TradeParty
	Taker     TradeParty
}
