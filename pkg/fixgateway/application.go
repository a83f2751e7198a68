package fixgateway

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/quickfixgo/fix44/newordersingle"
	"github.com/quickfixgo/fix44/ordercancelrequest"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/quickfix/log/file"
)

// Application implements the quickfix.Application interface
type Application struct {
	*quickfix.MessageRouter
	gateway    *FixGateway
	quickEvent chan bool
	dispatcher chan *inboundMsg
}

type inboundMsg struct {
	msg       *quickfix.Message
	sessionID quickfix.SessionID
}

const queueSize = 1_000_000

func newApplication(gateway *FixGateway) *Application {
	app := &Application{
		MessageRouter: quickfix.NewMessageRouter(),
		gateway:       gateway,
		quickEvent:    make(chan bool, 1),
		dispatcher:    make(chan *inboundMsg, queueSize),
	}

	app.AddRoute(newordersingle.Route(app.onNewOrderSingle))
	app.AddRoute(ordercancelrequest.Route(app.onOrderCancelRequest))

	// a single dispatcher keeps FIX messages in arrival order, which the
	// book requires
	go app.runDispatcher()

	return app
}

func startApp(configFilepath string, gateway *FixGateway) (*Application, error) {
	cfg, err := os.Open(configFilepath)
	if err != nil {
		return nil, fmt.Errorf("error opening %v, %v", configFilepath, err)
	}
	defer cfg.Close() // nolint

	stringData, readErr := io.ReadAll(cfg)
	if readErr != nil {
		return nil, fmt.Errorf("error reading cfg: %s,", readErr)
	}

	appSettings, err := quickfix.ParseSettings(bytes.NewReader(stringData))
	if err != nil {
		return nil, fmt.Errorf("error reading cfg: %s,", err)
	}

	app := newApplication(gateway)

	logFactory, _ := file.NewLogFactory(appSettings)
	acceptor, err := quickfix.NewAcceptor(app, quickfix.NewMemoryStoreFactory(), appSettings, logFactory)
	if err != nil {
		return nil, fmt.Errorf("unable to create acceptor: %s", err)
	}

	err = acceptor.Start()
	if err != nil {
		return nil, fmt.Errorf("unable to start FIX acceptor: %s", err)
	}

	go func() {
		<-app.quickEvent
		acceptor.Stop()
	}()

	return app, nil
}

func stopApp(a *Application) {
	select {
	case a.quickEvent <- true:
	default:
	}
}

// OnCreate implemented as part of Application interface
func (a Application) OnCreate(sessionID quickfix.SessionID) {}

// OnLogon implemented as part of Application interface
func (a Application) OnLogon(sessionID quickfix.SessionID) {}

// OnLogout implemented as part of Application interface
func (a Application) OnLogout(sessionID quickfix.SessionID) {}

// ToAdmin implemented as part of Application interface
func (a Application) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {}

// ToApp implemented as part of Application interface
func (a Application) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return nil
}

// FromAdmin implemented as part of Application interface
func (a Application) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}

// FromApp implemented as part of Application interface, uses Router on incoming application messages
func (a *Application) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) (reject quickfix.MessageRejectError) {
	a.dispatcher <- &inboundMsg{msg, sessionID}
	return nil
}

func (a *Application) runDispatcher() {
	for msg := range a.dispatcher {
		if err := a.Route(msg.msg, msg.sessionID); err != nil {
			log.Println("Route error", err)
		}
	}
}

func (a *Application) onNewOrderSingle(msg newordersingle.NewOrderSingle, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	clOrdID, _ := msg.GetClOrdID()
	symbol, _ := msg.GetSymbol()
	side, _ := msg.GetSide()
	ordType, _ := msg.GetOrdType()
	price, _ := msg.GetPrice()
	orderQty, _ := msg.GetOrderQty()
	account, _ := msg.GetAccount()
	transactTime, _ := msg.GetTransactTime()

	m := &NewOrderSingle{
		SessionID: sessionID,

		Account:      account,
		ClOrdID:      clOrdID,
		Symbol:       symbol,
		OrdType:      ordType,
		Price:        price,
		Side:         side,
		TransactTime: transactTime,
		OrderQty:     orderQty,
	}

	a.gateway.handleNewOrder(m)
	return nil
}

func (a *Application) onOrderCancelRequest(msg ordercancelrequest.OrderCancelRequest, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	clOrdID, _ := msg.GetClOrdID()
	origClOrdID, _ := msg.GetOrigClOrdID()
	symbol, _ := msg.GetSymbol()
	side, _ := msg.GetSide()
	account, _ := msg.GetAccount()
	transactTime, _ := msg.GetTransactTime()

	m := &OrderCancelRequest{
		SessionID: sessionID,

		OrigClOrdID:  origClOrdID,
		ClOrdID:      clOrdID,
		Account:      account,
		Symbol:       symbol,
		Side:         side,
		TransactTime: transactTime,
	}

	a.gateway.handleCancel(m)
	return nil
}
