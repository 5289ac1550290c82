package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/kbukum/elevenlabs-stt/component"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
)

// ErrDisabled is returned by NewProducer when Kafka is not enabled.
var ErrDisabled = errors.New("kafka: disabled")

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("kafka: producer closed")

// Writer is the part of kafka-go's Writer the producer uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer writes messages to one topic with retries.
type Producer struct {
	writer Writer
	cfg    Config
	log    *logger.Logger

	mu     sync.RWMutex
	closed bool
}

var (
	_ component.Component   = (*Producer)(nil)
	_ component.Describable = (*Producer)(nil)
)

// ProducerOption configures a Producer.
type ProducerOption func(*Producer)

// WithWriter replaces the kafka-go writer, mainly for tests.
func WithWriter(w Writer) ProducerOption {
	return func(p *Producer) { p.writer = w }
}

// NewProducer creates a producer. The kafka-go writer connects lazily on the
// first write, so brokers need not be reachable yet.
func NewProducer(cfg Config, log *logger.Logger, opts ...ProducerOption) (*Producer, error) {
	cfg.ApplyDefaults()
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka producer config: %w", err)
	}
	if log == nil {
		log = logger.Get("kafka")
	}

	p := &Producer{cfg: cfg, log: log.WithComponent("kafka.producer")}
	for _, opt := range opts {
		opt(p)
	}
	if p.writer != nil {
		return p, nil
	}

	transport, err := newTransport(&cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer transport: %w", err)
	}
	p.writer = &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Transport:    transport,
		Balancer:     &kafkago.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafkago.RequiredAcks(cfg.RequiredAcks),
		Compression:  compression(cfg.Compression),
		WriteTimeout: cfg.WriteTimeout,
		ErrorLogger: kafkago.LoggerFunc(func(msg string, args ...interface{}) {
			p.log.Error("writer: "+fmt.Sprintf(msg, args...))
		}),
	}
	p.log.Info("kafka producer initialized", logger.Fields(
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
		"compression", cfg.Compression,
	))
	return p, nil
}

// Topic returns the topic messages are written to.
func (p *Producer) Topic() string { return p.cfg.Topic }

// WriteMessages sends msgs, retrying with a linear backoff.
func (p *Producer) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	var lastErr error
	for attempt := 1; attempt <= p.cfg.Retries; attempt++ {
		lastErr = p.writer.WriteMessages(ctx, msgs...)
		if lastErr == nil {
			return nil
		}
		if attempt == p.cfg.Retries {
			break
		}
		p.log.Warn("kafka write failed, retrying", logger.Fields("attempt", attempt, logger.FieldError, lastErr.Error()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return fmt.Errorf("kafka write after %d attempts: %w", p.cfg.Retries, lastErr)
}

// Close flushes pending messages and closes the writer. Safe to call
// multiple times.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.log.Info("kafka producer closing")
	return p.writer.Close()
}

func (p *Producer) Name() string { return "kafka" }

func (p *Producer) Start(context.Context) error { return nil }

func (p *Producer) Stop(context.Context) error { return p.Close() }

func (p *Producer) Health(context.Context) observability.Health {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return observability.Health{Name: p.Name(), Status: observability.HealthStatusDown, Message: "closed"}
	}
	return observability.Health{Name: p.Name(), Status: observability.HealthStatusUp}
}

func (p *Producer) Describe() component.Description {
	return component.Description{Type: "kafka", Details: fmt.Sprintf("topic=%s brokers=%v", p.cfg.Topic, p.cfg.Brokers)}
}
