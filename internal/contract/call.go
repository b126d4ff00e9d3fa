package contract

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/events"
	"github.com/feral-file/ff-nft-registry/internal/logger"
	"github.com/feral-file/ff-nft-registry/internal/store"
)

const (
	eventSubjectPrefix  = "registry.events."
	refundSubjectPrefix = "registry.refunds."
)

// RefundRequest is relayed to the value-transfer system when a caller overpaid
type RefundRequest struct {
	AccountID domain.AccountID `json:"account_id"`
	Amount    domain.Balance   `json:"amount"`
	Reason    string           `json:"reason"`
	TokenID   domain.TokenID   `json:"token_id,omitempty"`
}

// scope is the state of one call between begin and commit
type scope struct {
	ctx   context.Context
	tx    store.Txn
	call  Call
	lines []string
}

// execute runs fn inside a single transaction. Every write, outbox message
// and log line staged by fn is kept only if fn succeeds and the commit does.
func (r *registry) execute(ctx context.Context, call Call, op string, fn func(sc *scope) error) error {
	ctx = logger.WithFields(ctx,
		zap.String("operation", op),
		zap.String("signer", call.Signer.String()))

	tx, err := r.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin %s: %w", op, err)
	}
	defer tx.Discard()

	sc := &scope{ctx: ctx, tx: tx, call: call}
	if err := fn(sc); err != nil {
		logger.WarnCtx(ctx, "Call aborted", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", op, err)
	}

	for _, line := range sc.lines {
		r.sink.Write(ctx, line)
	}

	return nil
}

// emit stages an event: its log line is written after commit and its body
// is queued for the relay
func (r *registry) emit(sc *scope, event events.EventLog) error {
	body, err := r.encoder.Body(event)
	if err != nil {
		return err
	}

	now := r.clock.Now()
	msg := &store.OutboxMessage{
		ID:        ulid.MustNewDefault(now).String(),
		Kind:      store.OutboxKindEvent,
		Subject:   eventSubjectPrefix + string(event.Event),
		Payload:   body,
		CreatedAt: now,
	}
	if err := sc.tx.Enqueue(msg); err != nil {
		return fmt.Errorf("failed to queue %s event: %w", event.Event, err)
	}

	sc.lines = append(sc.lines, events.LogPrefix+string(body))
	return nil
}

// refund queues a refund of amount to account, committed with the call
func (r *registry) refund(sc *scope, account domain.AccountID, amount domain.Balance, tokenID domain.TokenID) error {
	payload, err := r.json.Marshal(RefundRequest{
		AccountID: account,
		Amount:    amount,
		Reason:    "storage_deposit_refund",
		TokenID:   tokenID,
	})
	if err != nil {
		return fmt.Errorf("failed to encode refund: %w", err)
	}

	now := r.clock.Now()
	msg := &store.OutboxMessage{
		ID:        ulid.MustNewDefault(now).String(),
		Kind:      store.OutboxKindRefund,
		Subject:   refundSubjectPrefix + account.String(),
		Payload:   payload,
		CreatedAt: now,
	}
	if err := sc.tx.Enqueue(msg); err != nil {
		return fmt.Errorf("failed to queue refund: %w", err)
	}

	logger.InfoCtx(sc.ctx, "Queued storage refund",
		zap.String("account_id", account.String()),
		zap.String("amount", amount.String()))
	return nil
}
