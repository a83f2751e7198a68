package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord is one executed match, persisted to the trades table.
// Maker fields describe the resting order, taker fields the incoming one;
// MakerRemaining is null unless the resting order was partially filled.
type TradeRecord struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	ExecID string `gorm:"index"`
	Symbol string `gorm:"index"`

	Price    decimal.Decimal `gorm:"type:numeric"`
	Quantity decimal.Decimal `gorm:"type:numeric"`

	MakerTraderID  string
	MakerOrderID   string
	MakerSide      string
	MakerRemaining *decimal.Decimal `gorm:"type:numeric"`
	TakerTraderID  string
	TakerSide      string

	BookTime  int64
	CreatedAt time.Time
}

func (TradeRecord) TableName() string {
	return "trades"
}

// OrderEventRecord is one lifecycle transition of a submitted order.
type OrderEventRecord struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	ExecID  string `gorm:"index"`
	OrderID string `gorm:"index"`
	Symbol  string

	TraderID string
	Side     string
	Type     string
	Status   string

	Price    decimal.Decimal `gorm:"type:numeric"`
	Quantity decimal.Decimal `gorm:"type:numeric"`
	CumQty   decimal.Decimal `gorm:"type:numeric"`

	BookTime  int64
	CreatedAt time.Time
}

func (OrderEventRecord) TableName() string {
	return "order_events"
}
