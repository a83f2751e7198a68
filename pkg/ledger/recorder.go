package ledger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joripage/limitbook/pkg/lob"
	"github.com/joripage/limitbook/pkg/logging"
	"github.com/joripage/limitbook/pkg/venue"
)

// Recorder persists fills and execution reports off the matching path.
// Conversions happen on the caller's goroutine; writes go through a
// buffered channel so a slow database never blocks matching.
type Recorder struct {
	repo IRepo
	log  *logging.Logger

	trades chan []*TradeRecord
	events chan *OrderEventRecord
	done   chan struct{}
}

func NewRecorder(repo IRepo) *Recorder {
	return &Recorder{
		repo:   repo,
		log:    logging.NewLogger(logging.INFO),
		trades: make(chan []*TradeRecord, 1024),
		events: make(chan *OrderEventRecord, 1024),
		done:   make(chan struct{}),
	}
}

// Start runs the write loop until ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	go func() {
		defer close(r.done)
		for {
			select {
			case records := <-r.trades:
				if _, err := r.repo.Trade().BulkCreate(ctx, records); err != nil {
					r.log.Error(ctx, "persist trades", zap.Error(err))
				}
			case record := <-r.events:
				if _, err := r.repo.OrderEvent().Create(ctx, record); err != nil {
					r.log.Error(ctx, "persist order event", zap.Error(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Wait blocks until the write loop has exited.
func (r *Recorder) Wait() {
	<-r.done
}

// OnTrades is a venue.TradeCallback.
func (r *Recorder) OnTrades(symbol string, trades []lob.Trade) {
	records := make([]*TradeRecord, len(trades))
	for i, tr := range trades {
		records[i] = TradeToRecord(symbol, tr)
	}
	select {
	case r.trades <- records:
	default:
		r.log.Warn(context.Background(), "trade recorder backlog full, dropping",
			zap.String("symbol", symbol), zap.Int("count", len(records)))
	}
}

// OnReport records one execution report as an order event.
func (r *Recorder) OnReport(rep *venue.ExecutionReport) {
	record := ReportToRecord(rep)
	select {
	case r.events <- record:
	default:
		r.log.Warn(context.Background(), "order event backlog full, dropping",
			zap.String("order_id", rep.OrderID))
	}
}

// TradeToRecord converts one book fill to its persisted row.
func TradeToRecord(symbol string, tr lob.Trade) *TradeRecord {
	return &TradeRecord{
		ExecID:         uuid.NewString(),
		Symbol:         symbol,
		Price:          tr.Price,
		Quantity:       tr.Quantity,
		MakerTraderID:  tr.Maker.TraderID,
		MakerOrderID:   tr.Maker.OrderID,
		MakerSide:      string(tr.Maker.Side),
		MakerRemaining: tr.Maker.Remaining,
		TakerTraderID:  tr.Taker.TraderID,
		TakerSide:      string(tr.Taker.Side),
		BookTime:       tr.Timestamp,
	}
}

// ReportToRecord converts one execution report to its persisted row.
func ReportToRecord(rep *venue.ExecutionReport) *OrderEventRecord {
	return &OrderEventRecord{
		ExecID:   rep.ExecID,
		OrderID:  rep.OrderID,
		Symbol:   rep.Symbol,
		TraderID: rep.TraderID,
		Side:     string(rep.Side),
		Type:     string(rep.Type),
		Status:   string(rep.Status),
		Price:    rep.LastPrice,
		Quantity: rep.OrderQty,
		CumQty:   rep.CumQty,
		BookTime: rep.BookTime,
	}
}
