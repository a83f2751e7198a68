package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	postgres_wrapper "github.com/joripage/limitbook/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/limitbook/pkg/infra/redis"
)

type AppConfig struct {
	ServiceName string `yaml:"service_name"`
	Symbol      string `yaml:"symbol"`
	TapeDepth   int    `yaml:"tape_depth"`

	LedgerDB *postgres_wrapper.PostgresConfig `yaml:"ledger_db"`
	Redis    *redis_wrapper.RedisConfig       `yaml:"redis"`
	Kafka    *KafkaConfig                     `yaml:"kafka"`
	Fix      *FixConfig                       `yaml:"fix"`

	SnapshotIntervalMs int `yaml:"snapshot_interval_ms"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	TradeTopic string   `yaml:"trade_topic"`
	GroupID    string   `yaml:"group_id"`
}

type FixConfig struct {
	ConfigFilepath string `yaml:"config_filepath"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	return cfg, nil
}
