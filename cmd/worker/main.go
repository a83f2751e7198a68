package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/joripage/limitbook/config"
	kafka_wrapper "github.com/joripage/limitbook/pkg/infra/kafka"
	postgres_wrapper "github.com/joripage/limitbook/pkg/infra/postgres"
	"github.com/joripage/limitbook/pkg/ledger"
)

func main() {
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
	go func() {
		<-sigs
		cancel()
	}()

	db, err := postgres_wrapper.InitPostgres(cfg.LedgerDB)
	if err != nil {
		zap.S().Errorf("init db fail with err: %v", err)
		panic(err)
	}

	cg := kafka_wrapper.NewConsumerGroup(kafka_wrapper.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
		Topic:   cfg.Kafka.TradeTopic,
	})
	defer cg.Close()

	w := ledger.NewWorker(ledger.NewRepo(db))
	if err := w.Run(ctx, cg); err != nil && err != context.Canceled {
		zap.S().Errorf("worker stopped with err: %v", err)
	}
}
