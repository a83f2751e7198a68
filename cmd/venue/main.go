package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/joripage/limitbook/config"
	"github.com/joripage/limitbook/pkg/fixgateway"
	kafka_wrapper "github.com/joripage/limitbook/pkg/infra/kafka"
	postgres_wrapper "github.com/joripage/limitbook/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/limitbook/pkg/infra/redis"
	"github.com/joripage/limitbook/pkg/ledger"
	"github.com/joripage/limitbook/pkg/marketdata"
	"github.com/joripage/limitbook/pkg/venue"
)

func main() {
	go func() {
		http.ListenAndServe("localhost:6060", nil)
	}()

	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// ledger database
	db, err := postgres_wrapper.InitPostgres(cfg.LedgerDB)
	if err != nil {
		zap.S().Errorf("init db fail with err: %v", err)
		panic(err)
	}
	recorder := ledger.NewRecorder(ledger.NewRepo(db))
	recorder.Start(ctx)

	// market data
	rdb, err := redis_wrapper.InitRedis(cfg.Redis)
	if err != nil {
		zap.S().Errorf("init redis fail with err: %v", err)
		panic(err)
	}
	producer := kafka_wrapper.NewProducer(kafka_wrapper.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
	})
	defer producer.Close()
	tradeFeed := marketdata.NewTradeFeed(producer, cfg.Kafka.TradeTopic)

	v := venue.New(&venue.Config{
		Symbol:    cfg.Symbol,
		TapeDepth: cfg.TapeDepth,
	})
	v.RegisterTradeCallback(recorder.OnTrades)
	v.RegisterTradeCallback(tradeFeed.OnTrades)
	v.RegisterReportCallback(recorder.OnReport)

	snapshotInterval := time.Duration(cfg.SnapshotIntervalMs) * time.Millisecond
	publisher := marketdata.NewSnapshotPublisher(rdb, snapshotInterval)
	publisher.Start(ctx, v)

	fixGateway := fixgateway.NewFixGateway(&fixgateway.FixGatewayConfig{
		ConfigFilepath: cfg.Fix.ConfigFilepath,
	}, v)
	if err := fixGateway.Start(ctx); err != nil {
		panic(err)
	}
	fmt.Println("Venue started. Press Ctrl+C to exit.")

	<-sigs
	fmt.Println("Shutting down...")

	fixGateway.Stop()
	cancel()
	recorder.Wait()

	fmt.Println("Exited cleanly.")
}
