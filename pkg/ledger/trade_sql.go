package ledger

import (
	"context"

	"gorm.io/gorm"
)

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{
		db: db,
	}
}

func (s *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *TradeSQLRepo) Create(ctx context.Context, record *TradeRecord) (*TradeRecord, error) {
	return record, s.dbWithContext(ctx).Create(record).Error
}

func (s *TradeSQLRepo) BulkCreate(ctx context.Context, records []*TradeRecord) ([]*TradeRecord, error) {
	return records, s.dbWithContext(ctx).Create(records).Error
}

func (s *TradeSQLRepo) FindBySymbol(ctx context.Context, symbol string, limit int) ([]*TradeRecord, error) {
	var records []*TradeRecord
	err := s.dbWithContext(ctx).
		Where("symbol = ?", symbol).
		Order("id desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}
