package txWaiter

import (
	"context"
	"errors"
	"testing"

	"github.com/KotFed0t/meme_launchpad_bot/internal/service"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfirmer struct {
	receipt *types.Receipt
	err     error
	calls   int
}

func (f *fakeConfirmer) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	r := *f.receipt
	r.TxHash = tx.Hash()
	return &r, nil
}

func submitTx(nonce uint64) SubmitFn {
	return func(ctx context.Context) (*types.Transaction, error) {
		return types.NewTx(&types.LegacyTx{Nonce: nonce}), nil
	}
}

func TestSubmitAndWait_Success(t *testing.T) {
	confirmer := &fakeConfirmer{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful}}
	w := New(confirmer)

	var events []string
	var submitted common.Hash
	receipt, err := w.SubmitAndWait(context.Background(), "buy", submitTx(1), Milestones{
		OnSubmitted: func(hash common.Hash) {
			submitted = hash
			events = append(events, "submitted")
		},
		OnFinalized: func(r *types.Receipt) { events = append(events, "finalized") },
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"submitted", "finalized"}, events)
	assert.Equal(t, submitted, receipt.TxHash)
	assert.Equal(t, types.NewTx(&types.LegacyTx{Nonce: 1}).Hash(), submitted)
}

func TestSubmitAndWait_NilMilestones(t *testing.T) {
	w := New(&fakeConfirmer{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful}})

	_, err := w.SubmitAndWait(context.Background(), "set fee", submitTx(2), Milestones{})
	require.NoError(t, err)
}

func TestSubmitAndWait_SubmitFails(t *testing.T) {
	confirmer := &fakeConfirmer{}
	w := New(confirmer)

	called := false
	_, err := w.SubmitAndWait(context.Background(), "buy", func(ctx context.Context) (*types.Transaction, error) {
		return nil, errors.New("insufficient funds for gas")
	}, Milestones{OnSubmitted: func(common.Hash) { called = true }})

	require.ErrorIs(t, err, service.ErrChain)
	assert.False(t, called)
	assert.Zero(t, confirmer.calls)
}

func TestSubmitAndWait_Reverted(t *testing.T) {
	w := New(&fakeConfirmer{receipt: &types.Receipt{Status: types.ReceiptStatusFailed}})

	finalized := false
	receipt, err := w.SubmitAndWait(context.Background(), "buy", submitTx(3), Milestones{
		OnFinalized: func(*types.Receipt) { finalized = true },
	})

	require.ErrorIs(t, err, service.ErrReverted)
	require.ErrorIs(t, err, service.ErrChain)
	require.NotNil(t, receipt)
	assert.True(t, finalized)

	var chainErr *service.ChainError
	require.ErrorAs(t, err, &chainErr)
	assert.Equal(t, receipt.TxHash, chainErr.TxHash)
}

func TestSubmitAndWait_WaitFails(t *testing.T) {
	w := New(&fakeConfirmer{err: context.DeadlineExceeded})

	_, err := w.SubmitAndWait(context.Background(), "buy", submitTx(4), Milestones{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.ErrorIs(t, err, service.ErrChain)
}
