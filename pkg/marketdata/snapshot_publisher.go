package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/joripage/limitbook/pkg/logging"
	"github.com/joripage/limitbook/pkg/venue"
)

// SnapshotPublisher pushes book state to redis on an interval: the full
// depth snapshot and the top of book, each SET under a stable key and
// PUBLISHed for subscribers.
type SnapshotPublisher struct {
	rdb      *redis.Client
	interval time.Duration
	log      *logging.Logger
}

func NewSnapshotPublisher(rdb *redis.Client, interval time.Duration) *SnapshotPublisher {
	if interval <= 0 {
		interval = time.Second
	}
	return &SnapshotPublisher{
		rdb:      rdb,
		interval: interval,
		log:      logging.NewLogger(logging.INFO),
	}
}

// Start publishes v's book state until ctx is cancelled.
func (p *SnapshotPublisher) Start(ctx context.Context, v *venue.Venue) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := p.publishOnce(ctx, v); err != nil {
					p.log.Warn(ctx, "publish snapshot", zap.Error(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (p *SnapshotPublisher) publishOnce(ctx context.Context, v *venue.Venue) error {
	snap := v.BookSnapshot()
	top := v.TopOfBook()

	snapBytes, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	topBytes, err := json.Marshal(top)
	if err != nil {
		return err
	}

	pipe := p.rdb.Pipeline()
	pipe.Set(ctx, bookKey(snap.Symbol), snapBytes, 0)
	pipe.Set(ctx, topKey(snap.Symbol), topBytes, 0)
	pipe.Publish(ctx, bookChannel(snap.Symbol), snapBytes)
	_, err = pipe.Exec(ctx)
	return err
}

func bookKey(symbol string) string {
	return fmt.Sprintf("md:%s:book", symbol)
}

func topKey(symbol string) string {
	return fmt.Sprintf("md:%s:top", symbol)
}

func bookChannel(symbol string) string {
	return fmt.Sprintf("md.book.%s", symbol)
}
