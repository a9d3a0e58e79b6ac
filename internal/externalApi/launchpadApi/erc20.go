package launchpadApi

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func (a *LaunchpadApi) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	return callSingle[*big.Int](ctx, a, a.erc20, token, "balanceOf", account)
}

func (a *LaunchpadApi) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	return callSingle[*big.Int](ctx, a, a.erc20, token, "allowance", owner, spender)
}

func (a *LaunchpadApi) TokenSymbol(ctx context.Context, token common.Address) (string, error) {
	return callSingle[string](ctx, a, a.erc20, token, "symbol")
}

func (a *LaunchpadApi) Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	contract := bind.NewBoundContract(token, a.erc20, a.backend, a.backend, a.backend)
	return a.transact(ctx, contract, "approve", spender, amount)
}
