package allowanceGuard

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/KotFed0t/meme_launchpad_bot/internal/service"
	"github.com/KotFed0t/meme_launchpad_bot/internal/txWaiter"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wsol      = common.HexToAddress("0x1000000000000000000000000000000000000001")
	wallet    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	launchpad = common.HexToAddress("0x3000000000000000000000000000000000000003")
)

type fakeToken struct {
	allowance    *big.Int
	allowanceErr error
	approvals    []*big.Int
}

func (f *fakeToken) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	return f.allowance, f.allowanceErr
}

func (f *fakeToken) Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	f.approvals = append(f.approvals, amount)
	return types.NewTx(&types.LegacyTx{Nonce: uint64(len(f.approvals))}), nil
}

type minedConfirmer struct {
	status uint64
}

func (c minedConfirmer) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return &types.Receipt{Status: c.status, TxHash: tx.Hash()}, nil
}

func TestEnsure_SufficientAllowance(t *testing.T) {
	token := &fakeToken{allowance: big.NewInt(1000)}
	g := New(token, txWaiter.New(minedConfirmer{status: types.ReceiptStatusSuccessful}))

	approved, err := g.Ensure(context.Background(), wsol, wallet, launchpad, big.NewInt(1000), txWaiter.Milestones{})

	require.NoError(t, err)
	assert.False(t, approved)
	assert.Empty(t, token.approvals)
}

func TestEnsure_ApprovesMax(t *testing.T) {
	token := &fakeToken{allowance: big.NewInt(999)}
	g := New(token, txWaiter.New(minedConfirmer{status: types.ReceiptStatusSuccessful}))

	submitted := 0
	approved, err := g.Ensure(context.Background(), wsol, wallet, launchpad, big.NewInt(1000), txWaiter.Milestones{
		OnSubmitted: func(common.Hash) { submitted++ },
	})

	require.NoError(t, err)
	assert.True(t, approved)
	require.Len(t, token.approvals, 1)
	assert.Equal(t, 0, token.approvals[0].Cmp(abi.MaxUint256))
	assert.Equal(t, 1, submitted)
}

func TestEnsure_ApprovalReverted(t *testing.T) {
	token := &fakeToken{allowance: big.NewInt(0)}
	g := New(token, txWaiter.New(minedConfirmer{status: types.ReceiptStatusFailed}))

	approved, err := g.Ensure(context.Background(), wsol, wallet, launchpad, big.NewInt(1), txWaiter.Milestones{})

	require.ErrorIs(t, err, service.ErrReverted)
	assert.False(t, approved)
}

func TestEnsure_AllowanceReadFails(t *testing.T) {
	token := &fakeToken{allowanceErr: errors.New("rpc down")}
	g := New(token, txWaiter.New(minedConfirmer{status: types.ReceiptStatusSuccessful}))

	_, err := g.Ensure(context.Background(), wsol, wallet, launchpad, big.NewInt(1), txWaiter.Milestones{})

	require.ErrorIs(t, err, service.ErrChain)
	assert.Empty(t, token.approvals)
}
