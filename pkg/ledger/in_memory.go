package ledger

import (
	"context"
	"sync"
)

// InMemoryRepo keeps records in process memory. Used by tests and by the
// worker when no database is configured.
type InMemoryRepo struct {
	mu          sync.RWMutex
	trades      []*TradeRecord
	orderEvents []*OrderEventRecord
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) Trade() ITrade {
	return &inMemoryTrades{repo: r}
}

func (r *InMemoryRepo) OrderEvent() IOrderEvent {
	return &inMemoryOrderEvents{repo: r}
}

type inMemoryTrades struct {
	repo *InMemoryRepo
}

func (s *inMemoryTrades) Create(ctx context.Context, record *TradeRecord) (*TradeRecord, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	record.ID = int64(len(s.repo.trades) + 1)
	s.repo.trades = append(s.repo.trades, record)
	return record, nil
}

func (s *inMemoryTrades) BulkCreate(ctx context.Context, records []*TradeRecord) ([]*TradeRecord, error) {
	for _, record := range records {
		if _, err := s.Create(ctx, record); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (s *inMemoryTrades) FindBySymbol(ctx context.Context, symbol string, limit int) ([]*TradeRecord, error) {
	s.repo.mu.RLock()
	defer s.repo.mu.RUnlock()

	var records []*TradeRecord
	for i := len(s.repo.trades) - 1; i >= 0 && len(records) < limit; i-- {
		if s.repo.trades[i].Symbol == symbol {
			records = append(records, s.repo.trades[i])
		}
	}
	return records, nil
}

type inMemoryOrderEvents struct {
	repo *InMemoryRepo
}

func (s *inMemoryOrderEvents) Create(ctx context.Context, record *OrderEventRecord) (*OrderEventRecord, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	record.ID = int64(len(s.repo.orderEvents) + 1)
	s.repo.orderEvents = append(s.repo.orderEvents, record)
	return record, nil
}

func (s *inMemoryOrderEvents) BulkCreate(ctx context.Context, records []*OrderEventRecord) ([]*OrderEventRecord, error) {
	for _, record := range records {
		if _, err := s.Create(ctx, record); err != nil {
			return nil, err
		}
	}
	return records, nil
}
