package fixgateway

import (
	"testing"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/tag"
	"github.com/shopspring/decimal"

	"github.com/joripage/limitbook/pkg/lob"
	"github.com/joripage/limitbook/pkg/venue"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReportToExecutionReportPartialFill(t *testing.T) {
	rep := &venue.ExecutionReport{
		ExecID:    "E1",
		Symbol:    "ABC",
		OrderID:   "O1",
		TraderID:  "ACC1",
		Side:      lob.Bid,
		Status:    venue.StatusPartiallyFilled,
		OrderQty:  d("5"),
		CumQty:    d("3"),
		LeavesQty: d("2"),
		LastPrice: d("100"),
		LastQty:   d("3"),
		Trades: []lob.Trade{
			{Price: d("100"), Quantity: d("3")},
		},
	}

	msg := reportToExecutionReport(rep, "C1")

	if status, err := msg.GetOrdStatus(); err != nil || status != enum.OrdStatus_PARTIALLY_FILLED {
		t.Errorf("expected PARTIALLY_FILLED, got %v err=%v", status, err)
	}
	if execType, err := msg.GetExecType(); err != nil || execType != enum.ExecType_TRADE {
		t.Errorf("expected TRADE, got %v err=%v", execType, err)
	}
	if side, err := msg.GetSide(); err != nil || side != enum.Side_BUY {
		t.Errorf("expected BUY, got %v err=%v", side, err)
	}
	if clOrdID, err := msg.GetString(tag.ClOrdID); err != nil || clOrdID != "C1" {
		t.Errorf("expected ClOrdID C1, got %v err=%v", clOrdID, err)
	}
	if cum, err := msg.GetCumQty(); err != nil || !cum.Equal(d("3")) {
		t.Errorf("expected CumQty 3, got %v err=%v", cum, err)
	}
	if leaves, err := msg.GetLeavesQty(); err != nil || !leaves.Equal(d("2")) {
		t.Errorf("expected LeavesQty 2, got %v err=%v", leaves, err)
	}
	if avgPx, err := msg.GetAvgPx(); err != nil || !avgPx.Equal(d("100")) {
		t.Errorf("expected AvgPx 100, got %v err=%v", avgPx, err)
	}
	if lastQty, err := msg.GetLastQty(); err != nil || !lastQty.Equal(d("3")) {
		t.Errorf("expected LastQty 3, got %v err=%v", lastQty, err)
	}
}

func TestReportToExecutionReportRejected(t *testing.T) {
	rep := &venue.ExecutionReport{
		ExecID:   "E2",
		Symbol:   "ABC",
		OrderID:  "O2",
		Side:     lob.Ask,
		Status:   venue.StatusRejected,
		OrderQty: d("5"),
		CumQty:   decimal.Zero,
	}

	msg := reportToExecutionReport(rep, "C2")

	if status, err := msg.GetOrdStatus(); err != nil || status != enum.OrdStatus_REJECTED {
		t.Errorf("expected REJECTED, got %v err=%v", status, err)
	}
	if execType, err := msg.GetExecType(); err != nil || execType != enum.ExecType_REJECTED {
		t.Errorf("expected REJECTED exec type, got %v err=%v", execType, err)
	}
	if msg.HasLastQty() {
		t.Errorf("no fill, LastQty must be absent")
	}
}

func TestFIXTypeMappings(t *testing.T) {
	if fixToOrderType[enum.OrdType_LIMIT] != lob.Limit || fixToOrderType[enum.OrdType_MARKET] != lob.Market {
		t.Errorf("incorrect order type mapping")
	}
	if fixToSide[enum.Side_BUY] != lob.Bid || fixToSide[enum.Side_SELL] != lob.Ask {
		t.Errorf("incorrect side mapping")
	}
	// anything else maps to the zero value and is rejected by the book
	if fixToOrderType[enum.OrdType_STOP] != "" {
		t.Errorf("unsupported order types must map to the zero value")
	}
}
