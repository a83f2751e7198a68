package venue

import (
	"github.com/shopspring/decimal"

	"github.com/joripage/limitbook/pkg/lob"
)

type Status string

const (
	StatusNew             Status = "New"
	StatusPartiallyFilled Status = "PartiallyFilled"
	StatusFilled          Status = "Filled"
	StatusCanceled        Status = "Canceled"
	StatusRejected        Status = "Rejected"
)

// ExecutionReport is the venue's answer to one submission or cancel.
// CumQty + LeavesQty equals OrderQty except for market orders, whose
// unmatched remainder is dropped and reported as Canceled.
type ExecutionReport struct {
	ExecID   string
	Symbol   string
	OrderID  string
	TraderID string
	Side     lob.Side
	Type     lob.OrderType
	Status   Status

	OrderQty  decimal.Decimal
	CumQty    decimal.Decimal
	LeavesQty decimal.Decimal
	LastPrice decimal.Decimal
	LastQty   decimal.Decimal

	Trades   []lob.Trade
	BookTime int64
}
