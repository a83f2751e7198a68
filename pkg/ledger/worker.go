package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	kafka_wrapper "github.com/joripage/limitbook/pkg/infra/kafka"
	"github.com/joripage/limitbook/pkg/logging"
	"github.com/joripage/limitbook/pkg/marketdata"
)

// Worker consumes the trade feed topic and persists each fill. It is the
// off-venue ingestion path; the venue itself does not need to reach the
// worker's database.
type Worker struct {
	trades ITrade
	log    *logging.Logger
}

func NewWorker(repo IRepo) *Worker {
	return &Worker{
		trades: repo.Trade(),
		log:    logging.NewLogger(logging.INFO),
	}
}

// Run consumes until ctx is cancelled. Malformed messages are logged and
// skipped; database errors are returned to the consumer group for retry.
func (w *Worker) Run(ctx context.Context, cg *kafka_wrapper.ConsumerGroup) error {
	return cg.Run(ctx, func(ctx context.Context, m kafka_wrapper.Message) error {
		msg, err := marketdata.DecodeTrade(m.Value)
		if err != nil {
			w.log.Warn(ctx, "skip malformed trade message",
				zap.Int64("offset", m.Offset), zap.Error(err))
			return nil
		}
		record, err := MessageToRecord(msg)
		if err != nil {
			w.log.Warn(ctx, "skip unparsable trade message",
				zap.Int64("offset", m.Offset), zap.Error(err))
			return nil
		}
		_, err = w.trades.Create(ctx, record)
		return err
	})
}

// MessageToRecord converts one trade feed message to its persisted row.
func MessageToRecord(msg marketdata.TradeMessage) (*TradeRecord, error) {
	price, err := decimal.NewFromString(msg.Price)
	if err != nil {
		return nil, err
	}
	qty, err := decimal.NewFromString(msg.Quantity)
	if err != nil {
		return nil, err
	}
	record := &TradeRecord{
		ExecID:        uuid.NewString(),
		Symbol:        msg.Symbol,
		Price:         price,
		Quantity:      qty,
		MakerTraderID: msg.MakerTraderID,
		MakerOrderID:  msg.MakerOrderID,
		MakerSide:     msg.MakerSide,
		TakerTraderID: msg.TakerTraderID,
		TakerSide:     msg.TakerSide,
		BookTime:      msg.BookTime,
	}
	if msg.MakerRemaining != nil {
		remaining, err := decimal.NewFromString(*msg.MakerRemaining)
		if err != nil {
			return nil, err
		}
		record.MakerRemaining = &remaining
	}
	return record, nil
}
