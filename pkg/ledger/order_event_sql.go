package ledger

import (
	"context"

	"gorm.io/gorm"
)

type OrderEventSQLRepo struct {
	db *gorm.DB
}

func NewOrderEventSQLRepo(db *gorm.DB) *OrderEventSQLRepo {
	return &OrderEventSQLRepo{
		db: db,
	}
}

func (s *OrderEventSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *OrderEventSQLRepo) Create(ctx context.Context, record *OrderEventRecord) (*OrderEventRecord, error) {
	return record, s.dbWithContext(ctx).Create(record).Error
}

func (s *OrderEventSQLRepo) BulkCreate(ctx context.Context, records []*OrderEventRecord) ([]*OrderEventRecord, error) {
	return records, s.dbWithContext(ctx).Create(records).Error
}
