package fixgateway

import (
	"context"
	"log"

	"github.com/quickfixgo/quickfix"

	"github.com/joripage/limitbook/pkg/venue"
)

// FixGateway is the FIX 4.4 order entry front of one venue. NewOrderSingle
// becomes a submission, OrderCancelRequest a cancel, and every outcome goes
// back to the submitting session as an ExecutionReport.
type FixGateway struct {
	cfg   *FixGatewayConfig
	app   *Application
	venue *venue.Venue
}

type FixGatewayConfig struct {
	ConfigFilepath string
}

func NewFixGateway(cfg *FixGatewayConfig, v *venue.Venue) *FixGateway {
	return &FixGateway{
		cfg:   cfg,
		venue: v,
	}
}

func (s *FixGateway) Start(ctx context.Context) error {
	app, err := startApp(s.cfg.ConfigFilepath, s)
	if err != nil {
		log.Printf("start app err=%v", err)
		return err
	}
	s.app = app
	return nil
}

func (s *FixGateway) Stop() {
	if s.app != nil {
		stopApp(s.app)
	}
}

func (s *FixGateway) handleNewOrder(m *NewOrderSingle) {
	// unknown FIX values map to the zero value, which the book rejects
	sub := venue.Submission{
		Type:     fixToOrderType[m.OrdType],
		Side:     fixToSide[m.Side],
		OrderID:  m.ClOrdID,
		TraderID: m.Account,
		Price:    m.Price,
		Quantity: m.OrderQty,
	}

	rep, err := s.venue.Submit(context.Background(), sub)
	if err != nil {
		log.Printf("order %s rejected: %v", m.ClOrdID, err)
	}

	s.send(rep, m.ClOrdID, m.SessionID)
}

func (s *FixGateway) handleCancel(m *OrderCancelRequest) {
	rep, err := s.venue.Cancel(context.Background(), fixToSide[m.Side], m.OrigClOrdID)
	if err != nil {
		log.Printf("cancel %s rejected: %v", m.ClOrdID, err)
	}
	if rep == nil {
		// unknown or already-filled order id
		rep = &venue.ExecutionReport{
			Symbol:  m.Symbol,
			OrderID: m.OrigClOrdID,
			Side:    fixToSide[m.Side],
			Status:  venue.StatusRejected,
		}
	}

	s.send(rep, m.ClOrdID, m.SessionID)
}

func (s *FixGateway) send(rep *venue.ExecutionReport, clOrdID string, sessionID quickfix.SessionID) {
	msg := reportToExecutionReport(rep, clOrdID)
	if err := quickfix.SendToTarget(msg, sessionID); err != nil {
		log.Printf("send err=%v", err)
	}
}
