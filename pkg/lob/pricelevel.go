package lob

import (
	"container/list"
	"fmt"

	"github.com/shopspring/decimal"
)

// priceLevel is the FIFO queue of all resting orders at one exact price.
// Head of the queue is the oldest order and the next to match. volume is
// kept equal to the sum of member quantities on every mutation.
type priceLevel struct {
	price  decimal.Decimal
	orders *list.List
	volume decimal.Decimal
}

func newPriceLevel(price decimal.Decimal) *priceLevel {
	return &priceLevel{
		price:  price,
		orders: list.New(),
		volume: decimal.Zero,
	}
}

func (l *priceLevel) len() int {
	return l.orders.Len()
}

func (l *priceLevel) head() *Order {
	front := l.orders.Front()
	if front == nil {
		return nil
	}
	return front.Value.(*Order)
}

// append adds an order at the tail, behind every order already resting at
// this price.
func (l *priceLevel) append(o *Order) {
	o.elem = l.orders.PushBack(o)
	o.level = l
	l.volume = l.volume.Add(o.Quantity)
}

func (l *priceLevel) remove(o *Order) {
	l.orders.Remove(o.elem)
	l.volume = l.volume.Sub(o.Quantity)
	o.elem = nil
	o.level = nil
}

// reduce decrements a member order's quantity in place without touching
// its queue position.
func (l *priceLevel) reduce(o *Order, by decimal.Decimal) {
	o.Quantity = o.Quantity.Sub(by)
	l.volume = l.volume.Sub(by)
}

func (l *priceLevel) String() string {
	return fmt.Sprintf("%s\t%s\t%d", l.price.String(), l.volume.String(), l.orders.Len())
}
