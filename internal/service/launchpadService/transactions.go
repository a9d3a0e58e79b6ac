package launchpadService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"

	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/amountConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/keyConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/errorDecoder"
	"github.com/KotFed0t/meme_launchpad_bot/internal/externalApi/launchpadApi"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/internal/service"
	"github.com/KotFed0t/meme_launchpad_bot/internal/txWaiter"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const defaultSaleDecimals = 9

func (s *LaunchpadService) CreateSale(ctx context.Context, n model.Notifier, form model.SaleForm) error {
	op := "LaunchpadService.CreateSale"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug(op+" start", slog.String("rqID", rqID))
	defer slog.Debug(op+" finished", slog.String("rqID", rqID))

	params, err := parseSaleParams(form)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🚀 Creating token sale *%s (%s)*\n\n", params.Name, params.Symbol))
	sb.WriteString(fmt.Sprintf("🔢 Decimals: %d\n", params.Decimals))
	sb.WriteString(fmt.Sprintf("🎯 Funding goal: %s %s\n", amountConverter.Quote.Format(params.FundingGoal), model.QuoteSymbol))
	sb.WriteString(fmt.Sprintf("📦 Initial supply: %s\n", amountConverter.Quote.Format(params.InitialSupply)))
	sb.WriteString(fmt.Sprintf("🧮 Funding supply: %s", amountConverter.Quote.Format(params.FundingSupply)))
	s.progress(ctx, n, sb.String())

	receipt, err := s.waiter.SubmitAndWait(ctx, "create token sale", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.CreateTokenSale(ctx, params)
	}, s.txMilestones(ctx, n, "⏳ Waiting for confirmation..."))
	if err != nil {
		return s.explainRevert(ctx, err)
	}

	tokenText := "N/A"
	if ev, ok := s.events.Find(receipt, launchpadApi.EventTokenSaleCreated); ok {
		if token, ok := ev.Address("token"); ok {
			tokenText = fmt.Sprintf("`%s`", token.Hex())
		}
	}

	text := fmt.Sprintf("✅ *Token sale created!*\n\n📍 Token: %s\n🔗 %s", tokenText, s.txLink(receipt.TxHash))
	return n.Notify(ctx, model.Message{Text: text, Markdown: true, Menu: true})
}

func (s *LaunchpadService) Buy(ctx context.Context, n model.Notifier, form model.TradeForm) error {
	op := "LaunchpadService.Buy"
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

	addrs, err := s.contractAddresses(ctx)
	if err != nil {
		return err
	}

	wallet := s.chain.Wallet()

	balance, err := s.chain.BalanceOf(ctx, addrs.QuoteToken, wallet)
	if err != nil {
		return service.NewChainError("read balance", common.Hash{}, err)
	}
	if balance.Cmp(amount) < 0 {
		return &service.PreconditionError{Reason: fmt.Sprintf(
			"insufficient %s balance: have %s, need %s",
			model.QuoteSymbol, amountConverter.Quote.Format(balance), amountConverter.Quote.Format(amount),
		)}
	}

	s.progress(ctx, n, fmt.Sprintf("🛒 Buying with *%s %s*\n📍 Token: `%s`", amountConverter.Quote.Format(amount), model.QuoteSymbol, token.Hex()))

	approved, err := s.guard.Ensure(ctx, addrs.QuoteToken, wallet, s.chain.Address(), amount,
		s.txMilestones(ctx, n, fmt.Sprintf("⏳ Approving %s...", model.QuoteSymbol)))
	if err != nil {
		return s.explainRevert(ctx, err)
	}
	if approved {
		s.progress(ctx, n, fmt.Sprintf("✅ %s approved", model.QuoteSymbol))
	}

	receipt, err := s.waiter.SubmitAndWait(ctx, "buy", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.Buy(ctx, token, amount)
	}, s.txMilestones(ctx, n, "⏳ Waiting for confirmation..."))
	if err != nil {
		return s.explainRevert(ctx, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ *Tokens purchased!*\n\n🔗 %s", s.txLink(receipt.TxHash)))

	if ev, ok := s.events.Find(receipt, launchpadApi.EventLiquidityAdded); ok {
		sb.WriteString("\n\n🎉 *Funding goal reached!* Liquidity added.")
		if pool, ok := ev.Bytes32("poolId"); ok {
			sb.WriteString(fmt.Sprintf("\n🏊 Pool: `%s`", keyConverter.Base58(pool)))
		}
	}

	return n.Notify(ctx, model.Message{Text: sb.String(), Markdown: true, Menu: true})
}

// ApproveQuote grants the launchpad an unlimited quote-token allowance unless it already has one,
// then reports the allowance read back from the chain.
func (s *LaunchpadService) ApproveQuote(ctx context.Context, n model.Notifier) error {
	op := "LaunchpadService.ApproveQuote"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug(op+" start", slog.String("rqID", rqID))
	defer slog.Debug(op+" finished", slog.String("rqID", rqID))

	addrs, err := s.contractAddresses(ctx)
	if err != nil {
		return err
	}

	wallet := s.chain.Wallet()

	s.progress(ctx, n, fmt.Sprintf("🔓 Approving launchpad to spend %s\n📍 Spender: `%s`", model.QuoteSymbol, s.chain.Address().Hex()))

	approved, err := s.guard.Ensure(ctx, addrs.QuoteToken, wallet, s.chain.Address(), abi.MaxUint256,
		s.txMilestones(ctx, n, fmt.Sprintf("⏳ Approving %s...", model.QuoteSymbol)))
	if err != nil {
		return s.explainRevert(ctx, err)
	}

	allowance, err := s.chain.Allowance(ctx, addrs.QuoteToken, wallet, s.chain.Address())
	if err != nil {
		return service.NewChainError("read allowance", common.Hash{}, err)
	}

	status := fmt.Sprintf("✅ %s approved", model.QuoteSymbol)
	if !approved {
		status = fmt.Sprintf("ℹ️ %s allowance already unlimited, nothing sent", model.QuoteSymbol)
	}

	text := fmt.Sprintf("%s\n\n✅ Launchpad allowance: %s", status, allowanceText(allowance))
	return n.Notify(ctx, model.Message{Text: text, Markdown: true, Menu: true})
}

func (s *LaunchpadService) SetFee(ctx context.Context, n model.Notifier, form model.FeeForm) error {
	op := "LaunchpadService.SetFee"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug(op+" start", slog.String("rqID", rqID))
	defer slog.Debug(op+" finished", slog.String("rqID", rqID))

	bps, err := strconv.ParseInt(strings.TrimSpace(form.Bps), 10, 64)
	if err != nil || bps < 0 {
		return service.Validationf("fee must be a non-negative whole number of basis points, got %q", form.Bps)
	}

	s.progress(ctx, n, fmt.Sprintf("⚙️ Setting fee to %d bp...", bps))

	receipt, err := s.waiter.SubmitAndWait(ctx, "set fee", func(ctx context.Context) (*types.Transaction, error) {
		return s.chain.SetFeePercent(ctx, big.NewInt(bps))
	}, s.txMilestones(ctx, n, "⏳ Waiting for confirmation..."))
	if err != nil {
		return s.explainRevert(ctx, err)
	}

	text := fmt.Sprintf("✅ *Fee updated* to %d bp\n🔗 %s", bps, s.txLink(receipt.TxHash))
	return n.Notify(ctx, model.Message{Text: text, Markdown: true, Menu: true})
}

func (s *LaunchpadService) ClaimFees(ctx context.Context, n model.Notifier) error {
	op := "LaunchpadService.ClaimFees"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug(op+" start", slog.String("rqID", rqID))
	defer slog.Debug(op+" finished", slog.String("rqID", rqID))

	owner, err := s.chain.Owner(ctx)
	if err != nil {
		return service.NewChainError("read owner", common.Hash{}, err)
	}
	if owner != s.chain.Wallet() {
		return fmt.Errorf("%w: only the contract owner %s can claim fees", service.ErrAuthorization, owner.Hex())
	}

	s.progress(ctx, n, "💰 Claiming accumulated fees...")

	receipt, err := s.waiter.SubmitAndWait(ctx, "claim fees", s.chain.ClaimTokenSaleFee,
		s.txMilestones(ctx, n, "⏳ Waiting for confirmation..."))
	if err != nil {
		return s.explainRevert(ctx, err)
	}

	text := fmt.Sprintf("✅ *Fees claimed!*\n🔗 %s", s.txLink(receipt.TxHash))
	return n.Notify(ctx, model.Message{Text: text, Markdown: true, Menu: true})
}

func parseSaleParams(form model.SaleForm) (model.SaleParams, error) {
	params := model.SaleParams{
		Name:     strings.TrimSpace(form.Name),
		Symbol:   strings.TrimSpace(form.Symbol),
		Decimals: defaultSaleDecimals,
	}
	if params.Name == "" {
		return model.SaleParams{}, service.Validationf("token name is empty")
	}
	if params.Symbol == "" {
		return model.SaleParams{}, service.Validationf("token symbol is empty")
	}

	if d := strings.TrimSpace(form.Decimals); d != "" {
		decimals, err := strconv.ParseUint(d, 10, 8)
		if err != nil {
			return model.SaleParams{}, service.Validationf("decimals must be between 0 and 255, got %q", d)
		}
		params.Decimals = uint8(decimals)
	}

	amounts := []struct {
		name string
		text string
		dst  **big.Int
	}{
		{"funding goal", form.FundingGoal, &params.FundingGoal},
		{"initial supply", form.InitialSupply, &params.InitialSupply},
		{"funding supply", form.FundingSupply, &params.FundingSupply},
	}
	for _, a := range amounts {
		v, err := amountConverter.Quote.Parse(a.text)
		if err != nil {
			return model.SaleParams{}, fmt.Errorf("%w: %s: %w", service.ErrValidation, a.name, err)
		}
		if v.Sign() < 0 {
			return model.SaleParams{}, service.Validationf("%s must not be negative", a.name)
		}
		*a.dst = v
	}

	if params.FundingGoal.Sign() == 0 {
		return model.SaleParams{}, service.Validationf("funding goal must be positive")
	}

	return params, nil
}

// progress sends an intermediate update. A failed delivery does not abort the action.
func (s *LaunchpadService) progress(ctx context.Context, n model.Notifier, text string) {
	if err := n.Notify(ctx, model.Message{Text: text, Markdown: true}); err != nil {
		slog.Warn("progress notification failed", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("err", err.Error()))
	}
}

func (s *LaunchpadService) txMilestones(ctx context.Context, n model.Notifier, waiting string) txWaiter.Milestones {
	return txWaiter.Milestones{
		OnSubmitted: func(hash common.Hash) {
			s.progress(ctx, n, fmt.Sprintf("📝 Tx submitted: %s\n%s", s.txLink(hash), waiting))
		},
		OnFinalized: func(receipt *types.Receipt) {
			if receipt.BlockNumber == nil {
				s.progress(ctx, n, "⛓️ Tx mined")
				return
			}
			s.progress(ctx, n, fmt.Sprintf("⛓️ Tx mined in block %s", receipt.BlockNumber))
		},
	}
}

// explainRevert asks the explorer why a mined transaction reverted when the node gave no revert data.
func (s *LaunchpadService) explainRevert(ctx context.Context, err error) error {
	var chainErr *service.ChainError
	if s.explorer == nil || !errors.As(err, &chainErr) {
		return err
	}
	if chainErr.Revert.Known() || chainErr.TxHash == (common.Hash{}) || !errors.Is(chainErr.Err, service.ErrReverted) {
		return err
	}

	rqID := utils.GetRequestIDFromCtx(ctx)

	tx, xerr := s.explorer.GetTransaction(ctx, chainErr.TxHash)
	if xerr != nil {
		slog.Warn("explorer lookup failed", slog.String("rqID", rqID), slog.String("hash", chainErr.TxHash.Hex()), slog.String("err", xerr.Error()))
		return err
	}

	if tx.RevertData != "" {
		revert := errorDecoder.DecodeHex(tx.RevertData)
		if revert.Known() {
			chainErr.Revert = revert
			return err
		}
		chainErr.Reason = revert.String()
	}
	if tx.RevertMessage != "" {
		chainErr.Reason = tx.RevertMessage
	}

	return err
}
