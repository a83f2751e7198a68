package lob

import (
	"container/list"

	"github.com/shopspring/decimal"
)

type Side string

const (
	Bid Side = "bid"
	Ask Side = "ask"
)

func (s Side) Valid() bool {
	return s == Bid || s == Ask
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

type OrderType string

const (
	Market OrderType = "market"
	Limit  OrderType = "limit"
)

// Event is one submission handed to the book. Price is only read for
// limit orders. Timestamp must be monotonic across submissions; the book
// uses it as the time-priority tie-break for resting orders.
type Event struct {
	Type      OrderType
	Side      Side
	OrderID   string
	TraderID  string
	Price     decimal.Decimal
	Quantity  decimal.Decimal
	Timestamp int64
}

// Order is one resting instruction in the book. Quantity is the remaining
// quantity and stays above zero for as long as the order rests; the book
// removes the order the moment it reaches zero.
type Order struct {
	ID        string
	Side      Side
	Price     decimal.Decimal
	Quantity  decimal.Decimal
	Timestamp int64
	TraderID  string

	level *priceLevel
	elem  *list.Element
}
