package marketdata

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joripage/limitbook/pkg/lob"
)

func TestTradeToMessagePreservesMakerRemainingAsymmetry(t *testing.T) {
	remaining := decimal.RequireFromString("2")
	full := TradeToMessage("ABC", lob.Trade{
		Timestamp: 5,
		Price:     decimal.RequireFromString("100.5"),
		Quantity:  decimal.RequireFromString("3"),
		Maker:     lob.TradeParty{TraderID: "A", Side: lob.Ask, OrderID: "S1", Remaining: &remaining},
		Taker:     lob.TradeParty{TraderID: "B", Side: lob.Bid},
	})

	if full.Price != "100.5" || full.Quantity != "3" || full.BookTime != 5 {
		t.Errorf("incorrect message: %+v", full)
	}
	if full.MakerRemaining == nil || *full.MakerRemaining != "2" {
		t.Errorf("maker remaining lost: %+v", full.MakerRemaining)
	}

	consumed := TradeToMessage("ABC", lob.Trade{
		Price:    decimal.RequireFromString("100"),
		Quantity: decimal.RequireFromString("5"),
		Maker:    lob.TradeParty{TraderID: "A", Side: lob.Ask, OrderID: "S2"},
		Taker:    lob.TradeParty{TraderID: "B", Side: lob.Bid},
	})

	b, err := json.Marshal(consumed)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := DecodeTrade(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.MakerRemaining != nil {
		t.Errorf("fully consumed maker must have no remaining, got %v", *decoded.MakerRemaining)
	}
	if decoded.MakerOrderID != "S2" || decoded.TakerSide != "bid" {
		t.Errorf("incorrect round trip: %+v", decoded)
	}
}
