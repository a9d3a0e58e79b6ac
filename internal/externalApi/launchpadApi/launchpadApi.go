package launchpadApi

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the slice of an Ethereum JSON-RPC client the launchpad needs.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

type LaunchpadApi struct {
	backend  Backend
	address  common.Address
	abi      abi.ABI
	erc20    abi.ABI
	contract *bind.BoundContract
	signer   *bind.TransactOpts
}

func Dial(ctx context.Context, cfg *config.Config) (*LaunchpadApi, func(), error) {
	client, err := ethclient.DialContext(ctx, cfg.Chain.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", cfg.Chain.RPCURL, err)
	}

	api, err := New(cfg, client)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	slog.Info("connected to chain", slog.String("rpc", cfg.Chain.RPCURL), slog.String("wallet", api.Wallet().Hex()))

	return api, client.Close, nil
}

func New(cfg *config.Config, backend Backend) (*LaunchpadApi, error) {
	if !common.IsHexAddress(cfg.Chain.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.Chain.ContractAddress)
	}

	parsed, err := loadLaunchpadABI(cfg.Chain.ABIPath)
	if err != nil {
		return nil, err
	}

	erc20, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.Chain.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	signer, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.Chain.ChainID))
	if err != nil {
		return nil, fmt.Errorf("create transactor: %w", err)
	}

	address := common.HexToAddress(cfg.Chain.ContractAddress)

	return &LaunchpadApi{
		backend:  backend,
		address:  address,
		abi:      parsed,
		erc20:    erc20,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		signer:   signer,
	}, nil
}

func (a *LaunchpadApi) Address() common.Address {
	return a.address
}

func (a *LaunchpadApi) Wallet() common.Address {
	return a.signer.From
}

func (a *LaunchpadApi) call(ctx context.Context, contractABI abi.ABI, to common.Address, method string, args ...any) ([]byte, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	res, err := a.backend.CallContract(ctx, ethereum.CallMsg{From: a.signer.From, To: &to, Data: data}, nil)
	if err != nil {
		slog.Error("eth_call failed", slog.String("rqID", rqID), slog.String("method", method), slog.String("err", err.Error()))
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	return res, nil
}

func callSingle[T any](ctx context.Context, a *LaunchpadApi, contractABI abi.ABI, to common.Address, method string, args ...any) (T, error) {
	var zero T

	raw, err := a.call(ctx, contractABI, to, method, args...)
	if err != nil {
		return zero, err
	}

	outs, err := contractABI.Unpack(method, raw)
	if err != nil {
		return zero, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(outs) == 0 {
		return zero, fmt.Errorf("unpack %s: empty result", method)
	}

	v, ok := outs[0].(T)
	if !ok {
		return zero, fmt.Errorf("unpack %s: unexpected type %T", method, outs[0])
	}

	return v, nil
}

func (a *LaunchpadApi) Owner(ctx context.Context) (common.Address, error) {
	return callSingle[common.Address](ctx, a, a.abi, a.address, "owner")
}

func (a *LaunchpadApi) FeePercent(ctx context.Context) (*big.Int, error) {
	return callSingle[*big.Int](ctx, a, a.abi, a.address, "feePercent")
}

func (a *LaunchpadApi) AccumulatedFee(ctx context.Context) (*big.Int, error) {
	return callSingle[*big.Int](ctx, a, a.abi, a.address, "fee")
}

func (a *LaunchpadApi) FeeDenominator(ctx context.Context) (*big.Int, error) {
	return callSingle[*big.Int](ctx, a, a.abi, a.address, "FEE_DENOMINATOR")
}

func (a *LaunchpadApi) Payer(ctx context.Context) ([32]byte, error) {
	return callSingle[[32]byte](ctx, a, a.abi, a.address, "getPayer")
}

func (a *LaunchpadApi) ContractAddresses(ctx context.Context) (model.ContractAddresses, error) {
	quote, err := callSingle[common.Address](ctx, a, a.abi, a.address, "wsolToken")
	if err != nil {
		return model.ContractAddresses{}, err
	}

	curve, err := callSingle[common.Address](ctx, a, a.abi, a.address, "bondingCurve")
	if err != nil {
		return model.ContractAddresses{}, err
	}

	factory, err := callSingle[common.Address](ctx, a, a.abi, a.address, "erc20ForSplFactory")
	if err != nil {
		return model.ContractAddresses{}, err
	}

	return model.ContractAddresses{QuoteToken: quote, BondingCurve: curve, Factory: factory}, nil
}

func (a *LaunchpadApi) TokenSale(ctx context.Context, token common.Address) (model.TokenSale, error) {
	raw, err := a.call(ctx, a.abi, a.address, "tokens", token)
	if err != nil {
		return model.TokenSale{}, err
	}

	var out struct {
		FundingGoal      *big.Int
		CollateralAmount *big.Int
		InitialSupply    *big.Int
		FundingSupply    *big.Int
		State            uint8
	}
	if err := a.abi.UnpackIntoInterface(&out, "tokens", raw); err != nil {
		return model.TokenSale{}, fmt.Errorf("unpack tokens: %w", err)
	}

	return model.TokenSale{
		FundingGoal:      out.FundingGoal,
		CollateralAmount: out.CollateralAmount,
		InitialSupply:    out.InitialSupply,
		FundingSupply:    out.FundingSupply,
		State:            model.SaleState(out.State),
	}, nil
}

func (a *LaunchpadApi) NeonAddress(ctx context.Context, token common.Address) ([32]byte, error) {
	return callSingle[[32]byte](ctx, a, a.abi, a.address, "getNeonAddress", token)
}

func (a *LaunchpadApi) CalculateBuy(ctx context.Context, token common.Address, amount *big.Int) (model.BuyQuote, error) {
	raw, err := a.call(ctx, a.abi, a.address, "calculateBuyAmount", token, amount)
	if err != nil {
		return model.BuyQuote{}, err
	}

	var out model.BuyQuote
	if err := a.abi.UnpackIntoInterface(&out, "calculateBuyAmount", raw); err != nil {
		return model.BuyQuote{}, fmt.Errorf("unpack calculateBuyAmount: %w", err)
	}

	return out, nil
}

// EstimateBuyGas runs the buy through eth_estimateGas without sending it.
func (a *LaunchpadApi) EstimateBuyGas(ctx context.Context, token common.Address, amount *big.Int) (uint64, error) {
	data, err := a.abi.Pack("buy", token, amount)
	if err != nil {
		return 0, fmt.Errorf("pack buy: %w", err)
	}

	return a.backend.EstimateGas(ctx, ethereum.CallMsg{From: a.signer.From, To: &a.address, Data: data})
}

func (a *LaunchpadApi) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return a.backend.BalanceAt(ctx, account, nil)
}

func (a *LaunchpadApi) BlockNumber(ctx context.Context) (uint64, error) {
	return a.backend.BlockNumber(ctx)
}

func (a *LaunchpadApi) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(ctx, a.backend, tx)
}

func (a *LaunchpadApi) transact(ctx context.Context, contract *bind.BoundContract, method string, args ...any) (*types.Transaction, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("sending tx", slog.String("rqID", rqID), slog.String("method", method))

	opts := *a.signer
	opts.Context = ctx

	return contract.Transact(&opts, method, args...)
}

func (a *LaunchpadApi) CreateTokenSale(ctx context.Context, params model.SaleParams) (*types.Transaction, error) {
	return a.transact(ctx, a.contract, "createTokenSale",
		params.Name, params.Symbol, params.Decimals, params.FundingGoal, params.InitialSupply, params.FundingSupply)
}

func (a *LaunchpadApi) Buy(ctx context.Context, token common.Address, amount *big.Int) (*types.Transaction, error) {
	return a.transact(ctx, a.contract, "buy", token, amount)
}

func (a *LaunchpadApi) SetFeePercent(ctx context.Context, bps *big.Int) (*types.Transaction, error) {
	return a.transact(ctx, a.contract, "setFeePercent", bps)
}

func (a *LaunchpadApi) ClaimTokenSaleFee(ctx context.Context) (*types.Transaction, error) {
	return a.transact(ctx, a.contract, "claimTokenSaleFee")
}
