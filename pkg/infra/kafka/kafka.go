package kafka_wrapper

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Time      time.Time
}

type ProducerConfig struct {
	Brokers      []string `yaml:"brokers"`
	BatchSize    int      `yaml:"batch_size"`
	BatchTimeout time.Duration
}

type Producer struct {
	w *kafka.Writer
}

func NewProducer(cfg ProducerConfig) *Producer {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 50 * time.Millisecond
	}
	wr := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireNone,
		Async:                  true,
	}
	return &Producer{w: wr}
}

func (p *Producer) Publish(ctx context.Context, topic string, key []byte, value []byte) error {
	if p == nil || p.w == nil {
		return errors.New("producer not initialized")
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
}

func (p *Producer) PublishJSON(ctx context.Context, topic string, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.Publish(ctx, topic, []byte(key), b)
}

func (p *Producer) Close() error {
	if p == nil || p.w == nil {
		return nil
	}
	return p.w.Close()
}

type ConsumerConfig struct {
	Brokers    []string `yaml:"brokers"`
	GroupID    string   `yaml:"group_id"`
	Topic      string   `yaml:"topic"`
	MaxRetries int      `yaml:"max_retries"`
	BackoffMin time.Duration
	BackoffMax time.Duration
}

type ConsumerGroup struct {
	r   *kafka.Reader
	cfg ConsumerConfig
}

func NewConsumerGroup(cfg ConsumerConfig) *ConsumerGroup {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackoffMin == 0 {
		cfg.BackoffMin = 100 * time.Millisecond
	}
	if cfg.BackoffMax == 0 {
		cfg.BackoffMax = 10 * time.Second
	}

	rd := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		MaxWait:     500 * time.Millisecond,
		MinBytes:    1,
		MaxBytes:    10 << 20,
	})

	return &ConsumerGroup{r: rd, cfg: cfg}
}

func (cg *ConsumerGroup) Close() error {
	if cg == nil || cg.r == nil {
		return nil
	}
	return cg.r.Close()
}

// Run fetches messages one at a time, retries the handler with
// exponential backoff and commits on success. Messages that exhaust
// their retries are committed anyway so the consumer keeps moving.
func (cg *ConsumerGroup) Run(ctx context.Context, handler func(context.Context, Message) error) error {
	if cg == nil || cg.r == nil {
		return errors.New("consumer not initialized")
	}

	for {
		m, err := cg.r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			zap.S().Warnf("fetch error: %v", err)
			time.Sleep(200 * time.Millisecond)
			continue
		}

		wrapped := Message{
			Topic:     m.Topic,
			Partition: m.Partition,
			Offset:    m.Offset,
			Key:       m.Key,
			Value:     m.Value,
			Time:      m.Time,
		}

		wait := cg.cfg.BackoffMin
		for attempt := 0; ; attempt++ {
			err = handler(ctx, wrapped)
			if err == nil {
				break
			}
			if attempt >= cg.cfg.MaxRetries {
				zap.S().Errorf("handler failed after %d attempts, skipping offset %d: %v", attempt+1, m.Offset, err)
				break
			}
			time.Sleep(wait)
			wait *= 2
			if wait > cg.cfg.BackoffMax {
				wait = cg.cfg.BackoffMax
			}
		}

		if err := cg.r.CommitMessages(ctx, m); err != nil {
			zap.S().Warnf("commit error: %v", err)
		}
	}
}
