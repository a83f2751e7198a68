package ledger

import (
	"gorm.io/gorm"
)

type IRepo interface {
	Trade() ITrade
	OrderEvent() IOrderEvent
}

type Repo struct {
	ledgerDB *gorm.DB
}

func NewRepo(ledgerDB *gorm.DB) IRepo {
	return &Repo{
		ledgerDB: ledgerDB,
	}
}

func (r *Repo) Trade() ITrade {
	return NewTradeSQLRepo(r.ledgerDB)
}

func (r *Repo) OrderEvent() IOrderEvent {
	return NewOrderEventSQLRepo(r.ledgerDB)
}
