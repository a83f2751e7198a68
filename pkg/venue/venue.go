package venue

import (
	"context"
	"sync"

	"github.com/gammazero/deque"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joripage/limitbook/pkg/lob"
	"github.com/joripage/limitbook/pkg/logging"
)

const defaultTapeDepth = 1024

// Config configures a venue for one instrument.
type Config struct {
	Symbol string
	// TapeDepth bounds the recent-trades ring. Zero means the default.
	TapeDepth int
}

// TradeCallback receives the fills of one submission, in match order.
type TradeCallback func(symbol string, trades []lob.Trade)

// ReportCallback receives every execution report the venue emits.
type ReportCallback func(rep *ExecutionReport)

// Submission is one order intent handed to the venue. OrderID is optional;
// the venue assigns one when empty. Price is only read for limit orders.
type Submission struct {
	Type     lob.OrderType
	Side     lob.Side
	OrderID  string
	TraderID string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// Venue owns the book of one instrument and serializes all mutation into
// it. Matching is order-sensitive, so submissions and cancels take an
// exclusive lock and run to completion one at a time; read queries share
// a read lock (single-writer multiple-reader).
type Venue struct {
	symbol    string
	tapeDepth int

	mu    sync.RWMutex
	book  *lob.Book
	clock int64
	tape  deque.Deque[lob.Trade]

	callbacks       []TradeCallback
	reportCallbacks []ReportCallback
	log             *logging.Logger
}

func New(cfg *Config) *Venue {
	tapeDepth := cfg.TapeDepth
	if tapeDepth <= 0 {
		tapeDepth = defaultTapeDepth
	}

	return &Venue{
		symbol:    cfg.Symbol,
		tapeDepth: tapeDepth,
		book:      lob.NewBook(),
		log:       logging.NewLogger(logging.INFO),
	}
}

func (v *Venue) Symbol() string {
	return v.symbol
}

// RegisterTradeCallback registers a fill listener. Callbacks must be
// registered before the venue starts taking orders; they are invoked
// outside the book lock, after each mutating call.
func (v *Venue) RegisterTradeCallback(cb TradeCallback) {
	v.callbacks = append(v.callbacks, cb)
}

// RegisterReportCallback registers an execution report listener, under
// the same registration rules as RegisterTradeCallback.
func (v *Venue) RegisterReportCallback(cb ReportCallback) {
	v.reportCallbacks = append(v.reportCallbacks, cb)
}

func (v *Venue) emitReport(rep *ExecutionReport) *ExecutionReport {
	for _, cb := range v.reportCallbacks {
		cb(rep)
	}
	return rep
}

// Submit runs one order through the book and reports the outcome.
// Timestamps are assigned here from a monotonic clock, so callers never
// supply them and arrival order is exactly submission order.
func (v *Venue) Submit(ctx context.Context, sub Submission) (*ExecutionReport, error) {
	orderID := sub.OrderID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	v.mu.Lock()
	v.clock++
	ev := lob.Event{
		Type:      sub.Type,
		Side:      sub.Side,
		OrderID:   orderID,
		TraderID:  sub.TraderID,
		Price:     sub.Price,
		Quantity:  sub.Quantity,
		Timestamp: v.clock,
	}
	trades, resting, err := v.book.ProcessOrder(ev)
	if err != nil {
		v.mu.Unlock()
		v.log.Warn(ctx, "order rejected",
			zap.String("symbol", v.symbol),
			zap.String("order_id", orderID),
			zap.Error(err))
		return v.emitReport(v.buildReport(sub, orderID, trades, nil, StatusRejected, 0)), err
	}
	bookTime := v.book.Time()
	for _, tr := range trades {
		if v.tape.Len() == v.tapeDepth {
			v.tape.PopFront()
		}
		v.tape.PushBack(tr)
	}
	v.mu.Unlock()

	if len(trades) > 0 {
		for _, cb := range v.callbacks {
			cb(v.symbol, trades)
		}
	}

	return v.emitReport(v.buildReport(sub, orderID, trades, resting, "", bookTime)), nil
}

// Cancel removes a resting order. A nil report with nil error means the
// id was not in the book, which is a benign miss, not a failure.
func (v *Venue) Cancel(ctx context.Context, side lob.Side, orderID string) (*ExecutionReport, error) {
	v.mu.Lock()
	ok, err := v.book.CancelOrder(side, orderID)
	bookTime := v.book.Time()
	v.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return v.emitReport(&ExecutionReport{
		ExecID:   uuid.NewString(),
		Symbol:   v.symbol,
		OrderID:  orderID,
		Side:     side,
		Status:   StatusCanceled,
		BookTime: bookTime,
	}), nil
}

func (v *Venue) buildReport(sub Submission, orderID string, trades []lob.Trade, resting *lob.Order, status Status, bookTime int64) *ExecutionReport {
	cum := decimal.Zero
	for _, tr := range trades {
		cum = cum.Add(tr.Quantity)
	}
	leaves := decimal.Zero
	if resting != nil {
		leaves = resting.Quantity
	}

	if status == "" {
		switch {
		case resting != nil && cum.IsZero():
			status = StatusNew
		case resting != nil:
			status = StatusPartiallyFilled
		case cum.Equal(sub.Quantity):
			status = StatusFilled
		default:
			// market remainder is dropped, nothing rests
			status = StatusCanceled
		}
	}

	rep := &ExecutionReport{
		ExecID:    uuid.NewString(),
		Symbol:    v.symbol,
		OrderID:   orderID,
		TraderID:  sub.TraderID,
		Side:      sub.Side,
		Type:      sub.Type,
		Status:    status,
		OrderQty:  sub.Quantity,
		CumQty:    cum,
		LeavesQty: leaves,
		Trades:    trades,
		BookTime:  bookTime,
	}
	if n := len(trades); n > 0 {
		rep.LastPrice = trades[n-1].Price
		rep.LastQty = trades[n-1].Quantity
	}
	return rep
}

// RecentTrades returns up to n most recent fills, oldest first.
func (v *Venue) RecentTrades(n int) []lob.Trade {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if n <= 0 || n > v.tape.Len() {
		n = v.tape.Len()
	}
	trades := make([]lob.Trade, 0, n)
	for i := v.tape.Len() - n; i < v.tape.Len(); i++ {
		trades = append(trades, v.tape.At(i))
	}
	return trades
}

// TopOfBook is the best price and volume on each side; a nil price means
// the side is empty.
type TopOfBook struct {
	Symbol    string
	Bid       *decimal.Decimal
	BidVolume decimal.Decimal
	Ask       *decimal.Decimal
	AskVolume decimal.Decimal
	Time      int64
}

func (v *Venue) TopOfBook() TopOfBook {
	v.mu.RLock()
	defer v.mu.RUnlock()

	top := TopOfBook{Symbol: v.symbol, Time: v.book.Time()}
	if bid, ok := v.book.BestBid(); ok {
		top.Bid = &bid
		top.BidVolume, _ = v.book.VolumeAtPrice(lob.Bid, bid)
	}
	if ask, ok := v.book.BestAsk(); ok {
		top.Ask = &ask
		top.AskVolume, _ = v.book.VolumeAtPrice(lob.Ask, ask)
	}
	return top
}

// Snapshot is a full depth view of the book: bids high to low, asks low
// to high.
type Snapshot struct {
	Symbol string
	Time   int64
	Bids   []lob.LevelInfo
	Asks   []lob.LevelInfo
}

func (v *Venue) BookSnapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	bids, _ := v.book.Depth(lob.Bid)
	asks, _ := v.book.Depth(lob.Ask)
	return Snapshot{
		Symbol: v.symbol,
		Time:   v.book.Time(),
		Bids:   bids,
		Asks:   asks,
	}
}

// Render returns the human-readable book rendering for debugging.
func (v *Venue) Render() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.book.String()
}
