package fixgateway

import (
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/fix44/executionreport"
	"github.com/shopspring/decimal"

	"github.com/joripage/limitbook/pkg/lob"
	"github.com/joripage/limitbook/pkg/venue"
)

var (
	statusToOrdStatus = map[venue.Status]enum.OrdStatus{
		venue.StatusNew:             enum.OrdStatus_NEW,
		venue.StatusPartiallyFilled: enum.OrdStatus_PARTIALLY_FILLED,
		venue.StatusFilled:          enum.OrdStatus_FILLED,
		venue.StatusCanceled:        enum.OrdStatus_CANCELED,
		venue.StatusRejected:        enum.OrdStatus_REJECTED,
	}

	statusToExecType = map[venue.Status]enum.ExecType{
		venue.StatusNew:             enum.ExecType_NEW,
		venue.StatusPartiallyFilled: enum.ExecType_TRADE,
		venue.StatusFilled:          enum.ExecType_TRADE,
		venue.StatusCanceled:        enum.ExecType_CANCELED,
		venue.StatusRejected:        enum.ExecType_REJECTED,
	}

	sideToFIX = map[lob.Side]enum.Side{
		lob.Bid: enum.Side_BUY,
		lob.Ask: enum.Side_SELL,
	}

	fixToSide = map[enum.Side]lob.Side{
		enum.Side_BUY:  lob.Bid,
		enum.Side_SELL: lob.Ask,
	}

	fixToOrderType = map[enum.OrdType]lob.OrderType{
		enum.OrdType_LIMIT:  lob.Limit,
		enum.OrdType_MARKET: lob.Market,
	}
)

func reportToExecutionReport(rep *venue.ExecutionReport, clOrdID string) executionreport.ExecutionReport {
	avgPx := decimal.Zero
	if rep.CumQty.Sign() > 0 {
		notional := decimal.Zero
		for _, tr := range rep.Trades {
			notional = notional.Add(tr.Price.Mul(tr.Quantity))
		}
		avgPx = notional.Div(rep.CumQty)
	}

	msg := executionreport.New(
		field.NewOrderID(rep.OrderID),
		field.NewExecID(rep.ExecID),
		field.NewExecType(statusToExecType[rep.Status]),
		field.NewOrdStatus(statusToOrdStatus[rep.Status]),
		field.NewSide(sideToFIX[rep.Side]),
		field.NewLeavesQty(rep.LeavesQty, 2),
		field.NewCumQty(rep.CumQty, 2),
		field.NewAvgPx(avgPx, 2),
	)

	msg.SetClOrdID(clOrdID)
	msg.SetSymbol(rep.Symbol)
	msg.SetAccount(rep.TraderID)
	msg.SetOrderQty(rep.OrderQty, 2)
	msg.SetTransactTime(time.Now())
	if rep.LastQty.Sign() > 0 {
		msg.SetLastQty(rep.LastQty, 2)
		msg.SetLastPx(rep.LastPrice, 2)
	}

	return msg
}
