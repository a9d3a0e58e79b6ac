package launchpadService

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/amountConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/errorDecoder"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"github.com/ethereum/go-ethereum/common"
)

// Fragment is the outcome of one debug check.
type Fragment struct {
	Title  string
	Lines  []string
	Failed bool
}

type DebugReport struct {
	Token     string
	Amount    string
	Fragments []Fragment
	Passed    bool
}

func (r DebugReport) Text() string {
	var sb strings.Builder
	sb.WriteString("🩺 *Debug Buy Report*\n")
	sb.WriteString(fmt.Sprintf("Token: `%s`\n", r.Token))
	sb.WriteString(fmt.Sprintf("Amount: %s %s\n", r.Amount, model.QuoteSymbol))

	for i, f := range r.Fragments {
		sb.WriteString(fmt.Sprintf("\n*%d. %s*\n", i+1, f.Title))
		for _, line := range f.Lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if r.Passed {
		sb.WriteString("✅ All checks passed, the buy should go through.")
	} else if n := len(r.Fragments); n > 0 {
		sb.WriteString(fmt.Sprintf("❌ Buy would fail at step %d: %s", n, r.Fragments[n-1].Title))
	}

	return sb.String()
}

// debugRun carries values parsed by earlier checks to later ones.
type debugRun struct {
	token      common.Address
	amount     *big.Int
	quoteToken common.Address
}

type debugCheck func(ctx context.Context, form model.TradeForm, run *debugRun) Fragment

func (s *LaunchpadService) debugChecks() []debugCheck {
	return []debugCheck{
		s.checkSaleState,
		s.checkAmount,
		s.checkBalances,
		s.checkQuote,
		s.probeGas,
	}
}

// RunDebugPipeline runs the buy pre-flight checks in order and stops at the first failing one.
// It never returns an error: read failures become failed fragments.
func (s *LaunchpadService) RunDebugPipeline(ctx context.Context, form model.TradeForm) DebugReport {
	rqID := utils.GetRequestIDFromCtx(ctx)
	report := DebugReport{Token: strings.TrimSpace(form.Token), Amount: strings.TrimSpace(form.Amount)}
	run := &debugRun{}

	for _, check := range s.debugChecks() {
		f := check(ctx, form, run)
		report.Fragments = append(report.Fragments, f)
		if f.Failed {
			slog.Info("debug buy halted", slog.String("rqID", rqID), slog.String("check", f.Title))
			return report
		}
	}

	report.Passed = true
	return report
}

func (s *LaunchpadService) DebugBuy(ctx context.Context, n model.Notifier, form model.TradeForm) error {
	op := "LaunchpadService.DebugBuy"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug(op+" start", slog.String("rqID", rqID))
	defer slog.Debug(op+" finished", slog.String("rqID", rqID))

	s.progress(ctx, n, "🩺 Running buy diagnostics...")

	report := s.RunDebugPipeline(ctx, form)

	return n.Notify(ctx, model.Message{Text: report.Text(), Markdown: true, Menu: true})
}

func failed(title string, lines ...string) Fragment {
	return Fragment{Title: title, Lines: lines, Failed: true}
}

func (s *LaunchpadService) checkSaleState(ctx context.Context, form model.TradeForm, run *debugRun) Fragment {
	const title = "Token state"

	token, err := parseToken(form.Token)
	if err != nil {
		return failed(title, "❌ "+err.Error())
	}
	run.token = token

	sale, err := s.chain.TokenSale(ctx, token)
	if err != nil {
		return failed(title, "❌ Could not read token sale: "+err.Error())
	}

	lines := []string{
		"State: " + sale.State.String(),
		fmt.Sprintf("Collateral: %s / %s %s",
			amountConverter.Quote.Format(sale.CollateralAmount), amountConverter.Quote.Format(sale.FundingGoal), model.QuoteSymbol),
	}

	if sale.State != model.SaleFunding {
		return failed(title, append(lines, "❌ Token sale is not in FUNDING state")...)
	}

	return Fragment{Title: title, Lines: append(lines, "✅ Sale is accepting buys")}
}

func (s *LaunchpadService) checkAmount(ctx context.Context, form model.TradeForm, run *debugRun) Fragment {
	const title = "Amount"

	amount, err := amountConverter.Quote.Parse(form.Amount)
	if err != nil {
		return failed(title, "❌ "+err.Error())
	}
	if amount.Sign() <= 0 {
		return failed(title, fmt.Sprintf("❌ Amount must be positive, got %s", amountConverter.Quote.Format(amount)))
	}
	run.amount = amount

	return Fragment{Title: title, Lines: []string{
		fmt.Sprintf("%s %s (%s wei)", amountConverter.Quote.Format(amount), model.QuoteSymbol, amount.String()),
		"✅ Amount is valid",
	}}
}

func (s *LaunchpadService) checkBalances(ctx context.Context, form model.TradeForm, run *debugRun) Fragment {
	const title = "Balances"

	addrs, err := s.contractAddresses(ctx)
	if err != nil {
		return failed(title, "❌ Could not read quote token: "+err.Error())
	}
	run.quoteToken = addrs.QuoteToken

	wallet := s.chain.Wallet()

	native, err := s.chain.NativeBalance(ctx, wallet)
	if err != nil {
		return failed(title, "❌ Could not read native balance: "+err.Error())
	}

	balance, err := s.chain.BalanceOf(ctx, addrs.QuoteToken, wallet)
	if err != nil {
		return failed(title, "❌ Could not read balance: "+err.Error())
	}

	allowance, err := s.chain.Allowance(ctx, addrs.QuoteToken, wallet, s.chain.Address())
	if err != nil {
		return failed(title, "❌ Could not read allowance: "+err.Error())
	}

	lines := []string{
		fmt.Sprintf("%s: %s", model.NativeSymbol, amountConverter.Native.Format(native)),
		fmt.Sprintf("%s: %s", model.QuoteSymbol, amountConverter.Quote.Format(balance)),
		"Allowance: " + allowanceText(allowance),
	}

	if allowance.Cmp(run.amount) < 0 {
		lines = append(lines, "⚠️ Allowance is below the amount, a real buy approves first")
	}

	if balance.Cmp(run.amount) < 0 {
		return failed(title, append(lines, fmt.Sprintf("❌ Insufficient %s balance", model.QuoteSymbol))...)
	}

	return Fragment{Title: title, Lines: append(lines, "✅ Balance is sufficient")}
}

func (s *LaunchpadService) checkQuote(ctx context.Context, form model.TradeForm, run *debugRun) Fragment {
	const title = "Buy calculation"

	quote, err := s.chain.CalculateBuy(ctx, run.token, run.amount)
	if err != nil {
		return failed(title, "❌ calculateBuyAmount failed: "+describeCallError(err))
	}

	return Fragment{Title: title, Lines: []string{
		"Receive: " + amountConverter.Quote.Format(quote.ReceiveAmount),
		"Available supply: " + amountConverter.Quote.Format(quote.AvailableSupply),
		fmt.Sprintf("Contribution without fee: %s %s", amountConverter.Quote.Format(quote.ContributionWithoutFee), model.QuoteSymbol),
		"✅ Calculation succeeded",
	}}
}

func (s *LaunchpadService) probeGas(ctx context.Context, form model.TradeForm, run *debugRun) Fragment {
	const title = "Gas estimation"

	gas, err := s.chain.EstimateBuyGas(ctx, run.token, run.amount)
	if err != nil {
		return failed(title, "❌ Estimation failed: "+describeCallError(err))
	}

	return Fragment{Title: title, Lines: []string{
		fmt.Sprintf("Gas: %d", gas),
		"✅ Estimation succeeded",
	}}
}

func describeCallError(err error) string {
	if revert, ok := errorDecoder.FromError(err); ok && revert.String() != "" {
		return fmt.Sprintf("%s (decoded: %s)", err.Error(), revert.String())
	}
	return err.Error()
}
