package allowanceGuard

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/KotFed0t/meme_launchpad_bot/internal/service"
	"github.com/KotFed0t/meme_launchpad_bot/internal/txWaiter"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type Token interface {
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*types.Transaction, error)
}

type Waiter interface {
	SubmitAndWait(ctx context.Context, op string, submit txWaiter.SubmitFn, ms txWaiter.Milestones) (*types.Receipt, error)
}

type Guard struct {
	token  Token
	waiter Waiter
}

func New(token Token, waiter Waiter) *Guard {
	return &Guard{token: token, waiter: waiter}
}

// Ensure makes sure spender may pull at least required of token from owner.
// When the allowance is short it approves the maximum uint256 so later calls skip the approval.
func (g *Guard) Ensure(
	ctx context.Context,
	token, owner, spender common.Address,
	required *big.Int,
	ms txWaiter.Milestones,
) (approved bool, err error) {
	op := "Guard.Ensure"
	rqID := utils.GetRequestIDFromCtx(ctx)

	allowance, err := g.token.Allowance(ctx, token, owner, spender)
	if err != nil {
		slog.Error("failed to read allowance", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return false, service.NewChainError("read allowance", common.Hash{}, err)
	}

	if allowance.Cmp(required) >= 0 {
		slog.Debug("allowance sufficient", slog.String("rqID", rqID), slog.String("allowance", allowance.String()))
		return false, nil
	}

	slog.Info("allowance too low, approving", slog.String("rqID", rqID), slog.String("allowance", allowance.String()), slog.String("required", required.String()))

	_, err = g.waiter.SubmitAndWait(ctx, "approve", func(ctx context.Context) (*types.Transaction, error) {
		return g.token.Approve(ctx, token, spender, abi.MaxUint256)
	}, ms)
	if err != nil {
		return false, fmt.Errorf("approve %s: %w", token.Hex(), err)
	}

	return true, nil
}
