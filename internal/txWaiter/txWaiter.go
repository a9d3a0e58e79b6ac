package txWaiter

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/meme_launchpad_bot/internal/service"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type Confirmer interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

type SubmitFn func(ctx context.Context) (*types.Transaction, error)

// Milestones are optional progress callbacks. A nil field is skipped.
type Milestones struct {
	OnSubmitted func(hash common.Hash)
	OnFinalized func(receipt *types.Receipt)
}

type Waiter struct {
	confirmer Confirmer
}

func New(confirmer Confirmer) *Waiter {
	return &Waiter{confirmer: confirmer}
}

// SubmitAndWait sends a transaction and blocks until it is mined.
// A mined but reverted transaction is returned together with an ErrReverted chain error.
func (w *Waiter) SubmitAndWait(ctx context.Context, op string, submit SubmitFn, ms Milestones) (*types.Receipt, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("SubmitAndWait start", slog.String("rqID", rqID), slog.String("op", op))

	tx, err := submit(ctx)
	if err != nil {
		slog.Error("tx submission failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, service.NewChainError(op, common.Hash{}, err)
	}

	hash := tx.Hash()
	slog.Info("tx submitted", slog.String("rqID", rqID), slog.String("op", op), slog.String("hash", hash.Hex()))
	if ms.OnSubmitted != nil {
		ms.OnSubmitted(hash)
	}

	receipt, err := w.confirmer.WaitMined(ctx, tx)
	if err != nil {
		slog.Error("waiting for tx failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, service.NewChainError(op, hash, err)
	}

	if ms.OnFinalized != nil {
		ms.OnFinalized(receipt)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		slog.Warn("tx reverted", slog.String("rqID", rqID), slog.String("op", op), slog.String("hash", hash.Hex()))
		return receipt, service.NewChainError(op, hash, service.ErrReverted)
	}

	slog.Debug("SubmitAndWait finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("hash", hash.Hex()))

	return receipt, nil
}
