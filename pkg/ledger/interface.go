package ledger

import "context"

type ITrade interface {
	Create(ctx context.Context, record *TradeRecord) (*TradeRecord, error)
	BulkCreate(ctx context.Context, records []*TradeRecord) ([]*TradeRecord, error)
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]*TradeRecord, error)
}

type IOrderEvent interface {
	Create(ctx context.Context, record *OrderEventRecord) (*OrderEventRecord, error)
	BulkCreate(ctx context.Context, records []*OrderEventRecord) ([]*OrderEventRecord, error)
}
