package emitter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-registry/internal/adapter"
	"github.com/feral-file/ff-nft-registry/internal/logger"
	"github.com/feral-file/ff-nft-registry/internal/messaging"
	"github.com/feral-file/ff-nft-registry/internal/store"
)

// Config holds the configuration for the outbox relay
type Config struct {
	BatchSize      int
	PollInterval   time.Duration
	WorkerPoolSize int
	// MaxRetryElapsed bounds how long one message is retried within a batch
	MaxRetryElapsed time.Duration
}

// Emitter defines the interface for the outbox relay
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Emitter=MockEmitter
type Emitter interface {
	// Run relays outbox messages until ctx is canceled
	Run(ctx context.Context) error
	// RelayBatch publishes one batch of pending messages and returns how many were acknowledged
	RelayBatch(ctx context.Context) (int, error)
	// Close closes the publisher
	Close()
}

// emitter moves committed outbox messages to the message broker
type emitter struct {
	outbox    store.Outbox
	publisher messaging.Publisher
	config    Config
	clock     adapter.Clock
	pool      pond.Pool
}

// NewEmitter creates a new outbox relay
func NewEmitter(
	outbox store.Outbox,
	pub messaging.Publisher,
	cfg Config,
	clock adapter.Clock,
) Emitter {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.MaxRetryElapsed <= 0 {
		cfg.MaxRetryElapsed = 30 * time.Second
	}

	return &emitter{
		outbox:    outbox,
		publisher: pub,
		config:    cfg,
		clock:     clock,
		pool:      pond.NewPool(cfg.WorkerPoolSize, pond.WithQueueSize(cfg.BatchSize)),
	}
}

// Run relays outbox messages until ctx is canceled
func (e *emitter) Run(ctx context.Context) error {
	cursor, err := e.outbox.Cursor(ctx)
	if err != nil {
		return fmt.Errorf("failed to get relay cursor: %w", err)
	}
	logger.InfoCtx(ctx, "Starting outbox relay",
		zap.Uint64("cursor", cursor),
		zap.Int("batch_size", e.config.BatchSize),
		zap.Int("worker_pool_size", e.config.WorkerPoolSize))

	for {
		acked, err := e.RelayBatch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			logger.ErrorCtx(ctx, err)
		}

		// a full batch means more may be waiting
		if err == nil && acked == e.config.BatchSize {
			continue
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Outbox relay stopping", zap.Error(ctx.Err()))
			return ctx.Err()
		case <-e.clock.After(e.config.PollInterval):
		}
	}
}

// RelayBatch publishes one batch of pending messages concurrently and
// acknowledges the longest delivered prefix. Messages after the first failure
// stay in the outbox and are published again on the next batch.
func (e *emitter) RelayBatch(ctx context.Context) (int, error) {
	pending, err := e.outbox.Pending(ctx, e.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to read outbox: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	start := e.clock.Now()
	delivered := make([]bool, len(pending))

	group := e.pool.NewGroup()
	for i, msg := range pending {
		group.Submit(func() {
			if err := e.publishWithRetry(ctx, msg); err != nil {
				logger.ErrorCtx(ctx, err, zap.Uint64("seq", msg.Seq), zap.String("subject", msg.Subject))
				return
			}
			delivered[i] = true
		})
	}
	if err := group.Wait(); err != nil {
		return 0, fmt.Errorf("relay batch interrupted: %w", err)
	}

	acked := 0
	for acked < len(delivered) && delivered[acked] {
		acked++
	}

	if acked > 0 {
		if err := e.outbox.Ack(ctx, pending[acked-1].Seq); err != nil {
			return 0, fmt.Errorf("failed to acknowledge outbox: %w", err)
		}
	}

	logger.InfoCtx(ctx, "Relayed outbox batch",
		zap.Int("pending", len(pending)),
		zap.Int("acknowledged", acked),
		zap.Duration("elapsed", e.clock.Since(start)))

	if acked < len(pending) {
		return acked, fmt.Errorf("relayed %d of %d messages", acked, len(pending))
	}
	return acked, nil
}

func (e *emitter) publishWithRetry(ctx context.Context, msg *store.OutboxMessage) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = e.config.MaxRetryElapsed

	var attempts int
	operation := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		return e.publisher.Publish(ctx, msg)
	}
	notify := func(err error, next time.Duration) {
		attempts++
		logger.WarnCtx(ctx, "Publish failed, retrying",
			zap.Error(err),
			zap.String("id", msg.ID),
			zap.Int("attempt", attempts),
			zap.Duration("next_retry_in", next))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("failed to publish %s after %d attempts: %w", msg.ID, attempts+1, err)
	}
	return nil
}

// Close stops the worker pool and closes the publisher
func (e *emitter) Close() {
	e.pool.StopAndWait()
	e.publisher.Close()
}
