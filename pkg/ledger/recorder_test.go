package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/limitbook/pkg/lob"
	"github.com/joripage/limitbook/pkg/venue"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecorderPersistsTrades(t *testing.T) {
	repo := NewInMemoryRepo()
	rec := NewRecorder(repo)

	ctx, cancel := context.WithCancel(context.Background())
	rec.Start(ctx)

	remaining := d("2")
	rec.OnTrades("ABC", []lob.Trade{
		{
			Timestamp: 7,
			Price:     d("100"),
			Quantity:  d("3"),
			Maker:     lob.TradeParty{TraderID: "A", Side: lob.Ask, OrderID: "S1", Remaining: &remaining},
			Taker:     lob.TradeParty{TraderID: "B", Side: lob.Bid},
		},
	})

	deadline := time.Now().Add(time.Second)
	var records []*TradeRecord
	for time.Now().Before(deadline) {
		records, _ = repo.Trade().FindBySymbol(ctx, "ABC", 10)
		if len(records) > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	rec.Wait()

	if len(records) != 1 {
		t.Fatalf("expected 1 persisted trade, got %d", len(records))
	}
	r := records[0]
	if !r.Price.Equal(d("100")) || !r.Quantity.Equal(d("3")) || r.BookTime != 7 {
		t.Errorf("incorrect trade row: %+v", r)
	}
	if r.MakerOrderID != "S1" || r.MakerSide != "ask" || r.TakerSide != "bid" {
		t.Errorf("incorrect parties: %+v", r)
	}
	if r.MakerRemaining == nil || !r.MakerRemaining.Equal(d("2")) {
		t.Errorf("maker remaining lost: %+v", r.MakerRemaining)
	}
}

func TestReportToRecord(t *testing.T) {
	rep := &venue.ExecutionReport{
		ExecID:    "E1",
		Symbol:    "ABC",
		OrderID:   "O1",
		TraderID:  "A",
		Side:      lob.Bid,
		Type:      lob.Limit,
		Status:    venue.StatusPartiallyFilled,
		OrderQty:  d("5"),
		CumQty:    d("3"),
		LastPrice: d("100"),
		BookTime:  9,
	}

	record := ReportToRecord(rep)
	if record.ExecID != "E1" || record.OrderID != "O1" || record.Status != "PartiallyFilled" {
		t.Errorf("incorrect record: %+v", record)
	}
	if !record.Quantity.Equal(d("5")) || !record.CumQty.Equal(d("3")) || record.BookTime != 9 {
		t.Errorf("incorrect quantities: %+v", record)
	}
}

func TestInMemoryFindBySymbolIsMostRecentFirst(t *testing.T) {
	repo := NewInMemoryRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		repo.Trade().Create(ctx, &TradeRecord{Symbol: "ABC", BookTime: int64(i)})
	}
	repo.Trade().Create(ctx, &TradeRecord{Symbol: "XYZ", BookTime: 99})

	records, err := repo.Trade().FindBySymbol(ctx, "ABC", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[0].BookTime != 2 || records[1].BookTime != 1 {
		t.Errorf("incorrect ordering: %+v", records)
	}
}
