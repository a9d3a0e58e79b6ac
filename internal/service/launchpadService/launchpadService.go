package launchpadService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/data/cache"
	"github.com/KotFed0t/meme_launchpad_bot/internal/allowanceGuard"
	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/amountConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/keyConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/eventExtractor"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model/explorerModel"
	"github.com/KotFed0t/meme_launchpad_bot/internal/service"
	"github.com/KotFed0t/meme_launchpad_bot/internal/txWaiter"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/errgroup"
)

type Chain interface {
	allowanceGuard.Token
	txWaiter.Confirmer
	eventExtractor.LogDecoder

	Address() common.Address
	Wallet() common.Address

	Owner(ctx context.Context) (common.Address, error)
	FeePercent(ctx context.Context) (*big.Int, error)
	AccumulatedFee(ctx context.Context) (*big.Int, error)
	FeeDenominator(ctx context.Context) (*big.Int, error)
	Payer(ctx context.Context) ([32]byte, error)
	ContractAddresses(ctx context.Context) (model.ContractAddresses, error)
	TokenSale(ctx context.Context, token common.Address) (model.TokenSale, error)
	NeonAddress(ctx context.Context, token common.Address) ([32]byte, error)
	CalculateBuy(ctx context.Context, token common.Address, amount *big.Int) (model.BuyQuote, error)
	EstimateBuyGas(ctx context.Context, token common.Address, amount *big.Int) (uint64, error)
	NativeBalance(ctx context.Context, account common.Address) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error)
	TokenSymbol(ctx context.Context, token common.Address) (string, error)

	CreateTokenSale(ctx context.Context, params model.SaleParams) (*types.Transaction, error)
	Buy(ctx context.Context, token common.Address, amount *big.Int) (*types.Transaction, error)
	SetFeePercent(ctx context.Context, bps *big.Int) (*types.Transaction, error)
	ClaimTokenSaleFee(ctx context.Context) (*types.Transaction, error)
}

type Cache interface {
	GetContractAddresses(ctx context.Context, contract common.Address) (model.ContractAddresses, error)
	SetContractAddresses(ctx context.Context, contract common.Address, addrs model.ContractAddresses) error
}

type Explorer interface {
	GetTransaction(ctx context.Context, hash common.Hash) (explorerModel.Transaction, error)
}

type LaunchpadService struct {
	cfg      *config.Config
	chain    Chain
	cache    Cache
	explorer Explorer
	waiter   *txWaiter.Waiter
	guard    *allowanceGuard.Guard
	events   *eventExtractor.Extractor
}

// New wires the service. explorer may be nil, then reverted transactions are reported without a reason.
func New(cfg *config.Config, chain Chain, cache Cache, explorer Explorer) *LaunchpadService {
	waiter := txWaiter.New(chain)
	return &LaunchpadService{
		cfg:      cfg,
		chain:    chain,
		cache:    cache,
		explorer: explorer,
		waiter:   waiter,
		guard:    allowanceGuard.New(chain, waiter),
		events:   eventExtractor.New(chain),
	}
}

func (s *LaunchpadService) Status(ctx context.Context) (model.ChainStatus, error) {
	block, err := s.chain.BlockNumber(ctx)
	if err != nil {
		return model.ChainStatus{}, service.NewChainError("read block number", common.Hash{}, err)
	}
	return model.ChainStatus{BlockNumber: block, Contract: s.chain.Address(), Wallet: s.chain.Wallet()}, nil
}

// contractAddresses reads the immutable launchpad addresses through the cache.
func (s *LaunchpadService) contractAddresses(ctx context.Context) (model.ContractAddresses, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	addrs, err := s.cache.GetContractAddresses(ctx, s.chain.Address())
	if err == nil {
		return addrs, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		slog.Warn("contract addresses cache failed, reading chain", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}

	addrs, err = s.chain.ContractAddresses(ctx)
	if err != nil {
		return model.ContractAddresses{}, service.NewChainError("read contract addresses", common.Hash{}, err)
	}

	go func() {
		if err := s.cache.SetContractAddresses(context.WithoutCancel(ctx), s.chain.Address(), addrs); err != nil {
			slog.Error("failed to cache contract addresses", slog.String("rqID", rqID), slog.String("err", err.Error()))
		}
	}()

	return addrs, nil
}

func (s *LaunchpadService) ContractInfo(ctx context.Context, n model.Notifier) error {
	op := "LaunchpadService.ContractInfo"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug(op+" start", slog.String("rqID", rqID))
	defer slog.Debug(op+" finished", slog.String("rqID", rqID))

	var (
		owner                      common.Address
		feePercent, denom, accrued *big.Int
		payer                      [32]byte
		addrs                      model.ContractAddresses
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { owner, err = s.chain.Owner(gctx); return })
	g.Go(func() (err error) { feePercent, err = s.chain.FeePercent(gctx); return })
	g.Go(func() (err error) { denom, err = s.chain.FeeDenominator(gctx); return })
	g.Go(func() (err error) { accrued, err = s.chain.AccumulatedFee(gctx); return })
	g.Go(func() (err error) { payer, err = s.chain.Payer(gctx); return })
	g.Go(func() (err error) { addrs, err = s.contractAddresses(gctx); return })
	if err := g.Wait(); err != nil {
		var chainErr *service.ChainError
		if errors.As(err, &chainErr) {
			return err
		}
		return service.NewChainError("read contract info", common.Hash{}, err)
	}

	var sb strings.Builder
	sb.WriteString("📋 *Contract Information*\n\n")
	sb.WriteString(fmt.Sprintf("📍 Address: `%s`\n", s.chain.Address().Hex()))
	sb.WriteString(fmt.Sprintf("👤 Owner: `%s`\n", owner.Hex()))
	sb.WriteString(fmt.Sprintf("💸 Fee: %s (%s bp)\n", feePercentText(feePercent, denom), feePercent.String()))
	sb.WriteString(fmt.Sprintf("💰 Accumulated fees: %s %s\n", amountConverter.Quote.Format(accrued), model.QuoteSymbol))
	sb.WriteString(fmt.Sprintf("🪙 %s: `%s`\n", model.QuoteSymbol, addrs.QuoteToken.Hex()))
	sb.WriteString(fmt.Sprintf("📈 Bonding curve: `%s`\n", addrs.BondingCurve.Hex()))
	sb.WriteString(fmt.Sprintf("🏭 Factory: `%s`\n", addrs.Factory.Hex()))
	sb.WriteString(fmt.Sprintf("💳 Payer: `%s`\n", keyConverter.Base58(payer)))
	sb.WriteString(fmt.Sprintf("🔗 %s", s.addressLink("Explorer", s.chain.Address())))

	return n.Notify(ctx, model.Message{Text: sb.String(), Markdown: true, Menu: true})
}

func (s *LaunchpadService) TokenInfo(ctx context.Context, n model.Notifier, form model.TradeForm) error {
	op := "LaunchpadService.TokenInfo"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug(op+" start", slog.String("rqID", rqID))
	defer slog.Debug(op+" finished", slog.String("rqID", rqID))

	token, err := parseToken(form.Token)
	if err != nil {
		return err
	}

	var (
		sale model.TokenSale
		neon [32]byte
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { sale, err = s.chain.TokenSale(gctx, token); return })
	g.Go(func() (err error) { neon, err = s.chain.NeonAddress(gctx, token); return })
	if err := g.Wait(); err != nil {
		return service.NewChainError("read token sale", common.Hash{}, err)
	}

	var sb strings.Builder
	sb.WriteString("🪙 *Token Sale Info*\n\n")
	sb.WriteString(fmt.Sprintf("📍 Address: `%s`\n", token.Hex()))
	sb.WriteString(fmt.Sprintf("📊 State: %s\n", sale.State))
	sb.WriteString(fmt.Sprintf("🎯 Funding goal: %s %s\n", amountConverter.Quote.Format(sale.FundingGoal), model.QuoteSymbol))
	sb.WriteString(fmt.Sprintf("💰 Collateral: %s %s\n", amountConverter.Quote.Format(sale.CollateralAmount), model.QuoteSymbol))
	sb.WriteString(fmt.Sprintf("📦 Initial supply: %s\n", amountConverter.Quote.Format(sale.InitialSupply)))
	sb.WriteString(fmt.Sprintf("🧮 Funding supply: %s\n", amountConverter.Quote.Format(sale.FundingSupply)))
	sb.WriteString(fmt.Sprintf("🔑 Neon address: `%s`\n", keyConverter.Base58(neon)))
	sb.WriteString(fmt.Sprintf("🔗 %s", s.addressLink("Explorer", token)))

	return n.Notify(ctx, model.Message{Text: sb.String(), Markdown: true, Menu: true})
}

func (s *LaunchpadService) Quote(ctx context.Context, n model.Notifier, form model.TradeForm) error {
	op := "LaunchpadService.Quote"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug(op+" start", slog.String("rqID", rqID))
	defer slog.Debug(op+" finished", slog.String("rqID", rqID))

	token, err := parseToken(form.Token)
	if err != nil {
		return err
	}

	amount, err := parsePositiveAmount(form.Amount)
	if err != nil {
		return err
	}

	quote, err := s.chain.CalculateBuy(ctx, token, amount)
	if err != nil {
		return service.NewChainError("calculate buy amount", common.Hash{}, err)
	}

	var sb strings.Builder
	sb.WriteString("💰 *Buy Calculation*\n\n")
	sb.WriteString(fmt.Sprintf("💸 Spend: %s %s\n", amountConverter.Quote.Format(amount), model.QuoteSymbol))
	sb.WriteString(fmt.Sprintf("🎁 Receive: %s tokens\n", amountConverter.Quote.Format(quote.ReceiveAmount)))
	sb.WriteString(fmt.Sprintf("📦 Available supply: %s\n", amountConverter.Quote.Format(quote.AvailableSupply)))
	sb.WriteString(fmt.Sprintf("🧮 Total supply: %s\n", amountConverter.Quote.Format(quote.TotalSupply)))
	sb.WriteString(fmt.Sprintf("🧾 Contribution without fee: %s %s", amountConverter.Quote.Format(quote.ContributionWithoutFee), model.QuoteSymbol))

	return n.Notify(ctx, model.Message{Text: sb.String(), Markdown: true, Menu: true})
}

func (s *LaunchpadService) WalletSetup(ctx context.Context, n model.Notifier) error {
	op := "LaunchpadService.WalletSetup"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug(op+" start", slog.String("rqID", rqID))
	defer slog.Debug(op+" finished", slog.String("rqID", rqID))

	wallet := s.chain.Wallet()

	addrs, err := s.contractAddresses(ctx)
	if err != nil {
		return err
	}

	var (
		native, balance, allowance *big.Int
		symbol                     string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { native, err = s.chain.NativeBalance(gctx, wallet); return })
	g.Go(func() (err error) { balance, err = s.chain.BalanceOf(gctx, addrs.QuoteToken, wallet); return })
	g.Go(func() (err error) { allowance, err = s.chain.Allowance(gctx, addrs.QuoteToken, wallet, s.chain.Address()); return })
	g.Go(func() (err error) { symbol, err = s.chain.TokenSymbol(gctx, addrs.QuoteToken); return })
	if err := g.Wait(); err != nil {
		return service.NewChainError("read wallet balances", common.Hash{}, err)
	}

	var sb strings.Builder
	sb.WriteString("👛 *Wallet Setup*\n\n")
	sb.WriteString(fmt.Sprintf("📍 Wallet: `%s`\n", wallet.Hex()))
	sb.WriteString(fmt.Sprintf("⛽ %s balance: %s\n", model.NativeSymbol, amountConverter.Native.Format(native)))
	sb.WriteString(fmt.Sprintf("🪙 %s balance: %s\n", symbol, amountConverter.Quote.Format(balance)))
	sb.WriteString(fmt.Sprintf("✅ Launchpad allowance: %s\n", allowanceText(allowance)))
	sb.WriteString(fmt.Sprintf("🪙 %s token: `%s`\n", symbol, addrs.QuoteToken.Hex()))

	if native.Sign() == 0 {
		sb.WriteString(fmt.Sprintf("\n⚠️ No %s for gas. Get some at https://neonfaucet.org/", model.NativeSymbol))
	}
	if balance.Sign() == 0 {
		sb.WriteString(fmt.Sprintf("\n⚠️ No %s. Wrap SOL into %s before buying.", symbol, symbol))
	}

	return n.Notify(ctx, model.Message{Text: sb.String(), Markdown: true, Menu: true})
}

func parseToken(text string) (common.Address, error) {
	text = strings.TrimSpace(text)
	if !common.IsHexAddress(text) {
		return common.Address{}, service.Validationf("invalid token address %q", text)
	}
	return common.HexToAddress(text), nil
}

func parsePositiveAmount(text string) (*big.Int, error) {
	amount, err := amountConverter.Quote.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrValidation, err)
	}
	if amount.Sign() <= 0 {
		return nil, service.Validationf("amount must be positive, got %s", text)
	}
	return amount, nil
}
