package marketdata

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	kafka_wrapper "github.com/joripage/limitbook/pkg/infra/kafka"
	"github.com/joripage/limitbook/pkg/lob"
	"github.com/joripage/limitbook/pkg/logging"
)

// TradeMessage is the wire shape of one fill on the trade feed topic.
// MakerRemaining is omitted when the resting order was fully consumed,
// mirroring the book's trade record.
type TradeMessage struct {
	Symbol         string  `json:"symbol"`
	Price          string  `json:"price"`
	Quantity       string  `json:"quantity"`
	MakerTraderID  string  `json:"maker_trader_id"`
	MakerOrderID   string  `json:"maker_order_id"`
	MakerSide      string  `json:"maker_side"`
	MakerRemaining *string `json:"maker_remaining,omitempty"`
	TakerTraderID  string  `json:"taker_trader_id"`
	TakerSide      string  `json:"taker_side"`
	BookTime       int64   `json:"book_time"`
}

// TradeFeed publishes fills to kafka, keyed by symbol so one instrument
// stays on one partition in arrival order.
type TradeFeed struct {
	producer *kafka_wrapper.Producer
	topic    string
	log      *logging.Logger
}

func NewTradeFeed(producer *kafka_wrapper.Producer, topic string) *TradeFeed {
	return &TradeFeed{
		producer: producer,
		topic:    topic,
		log:      logging.NewLogger(logging.INFO),
	}
}

// OnTrades is a venue.TradeCallback.
func (f *TradeFeed) OnTrades(symbol string, trades []lob.Trade) {
	ctx := context.Background()
	for _, tr := range trades {
		msg := TradeToMessage(symbol, tr)
		if err := f.producer.PublishJSON(ctx, f.topic, symbol, msg); err != nil {
			f.log.Warn(ctx, "publish trade", zap.String("symbol", symbol), zap.Error(err))
		}
	}
}

func TradeToMessage(symbol string, tr lob.Trade) TradeMessage {
	msg := TradeMessage{
		Symbol:        symbol,
		Price:         tr.Price.String(),
		Quantity:      tr.Quantity.String(),
		MakerTraderID: tr.Maker.TraderID,
		MakerOrderID:  tr.Maker.OrderID,
		MakerSide:     string(tr.Maker.Side),
		TakerTraderID: tr.Taker.TraderID,
		TakerSide:     string(tr.Taker.Side),
		BookTime:      tr.Timestamp,
	}
	if tr.Maker.Remaining != nil {
		remaining := tr.Maker.Remaining.String()
		msg.MakerRemaining = &remaining
	}
	return msg
}

// DecodeTrade parses one trade feed message.
func DecodeTrade(value []byte) (TradeMessage, error) {
	var msg TradeMessage
	err := json.Unmarshal(value, &msg)
	return msg, err
}
