package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/KotFed0t/meme_launchpad_bot/data/session"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/internal/service"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
)

type SessionStore interface {
	GetSession(ctx context.Context, userID int64) (model.Session, error)
	SetSession(ctx context.Context, userID int64, s model.Session) error
	DeleteSession(ctx context.Context, userID int64) error
}

type Executor interface {
	ContractInfo(ctx context.Context, n model.Notifier) error
	TokenInfo(ctx context.Context, n model.Notifier, form model.TradeForm) error
	Quote(ctx context.Context, n model.Notifier, form model.TradeForm) error
	CreateSale(ctx context.Context, n model.Notifier, form model.SaleForm) error
	Buy(ctx context.Context, n model.Notifier, form model.TradeForm) error
	SetFee(ctx context.Context, n model.Notifier, form model.FeeForm) error
	ClaimFees(ctx context.Context, n model.Notifier) error
	WalletSetup(ctx context.Context, n model.Notifier) error
	DebugBuy(ctx context.Context, n model.Notifier, form model.TradeForm) error
}

const HelpText = `🤖 *Meme Launchpad Bot*

📋 Contract Info: launchpad settings and fees
🪙 Token Info: state of a token sale
💰 Calculate Buy: tokens you get for an amount
🚀 Create Token: start a new token sale
🛒 Buy Tokens: buy into a sale (approves WSOL when needed)
💸 Claim Fees: owner only
⚙️ Set Fee: owner only, in basis points
👛 Wallet Setup: balances and allowance
🩺 Debug Buy: dry-run every buy check`

// Engine drives the multi-step conversations. Inputs of one user are handled one at a time.
type Engine struct {
	sessions SessionStore
	executor Executor
	locks    *userLocks
	now      func() time.Time
}

func New(sessions SessionStore, executor Executor) *Engine {
	return &Engine{
		sessions: sessions,
		executor: executor,
		locks:    newUserLocks(),
		now:      time.Now,
	}
}

// Select handles a main menu choice.
func (e *Engine) Select(ctx context.Context, userID int64, action model.Action, n model.Notifier) error {
	unlock := e.locks.lock(userID)
	defer unlock()

	return e.selectLocked(ctx, userID, action, n)
}

// Handle feeds free text from the user into their active session.
func (e *Engine) Handle(ctx context.Context, userID int64, text string, n model.Notifier) error {
	unlock := e.locks.lock(userID)
	defer unlock()

	text = strings.TrimSpace(text)
	rqID := utils.GetRequestIDFromCtx(ctx)

	if action, ok := model.ParseAction(text); ok {
		return e.selectLocked(ctx, userID, action, n)
	}

	s, err := e.sessions.GetSession(ctx, userID)
	if errors.Is(err, session.ErrNotFound) {
		return n.Notify(ctx, model.Message{Text: "Please choose an action from the menu.", Menu: true})
	}
	if err != nil {
		slog.Error("got error from sessions.GetSession", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return n.Notify(ctx, model.Message{Text: "❌ Something went wrong, please try again.", Menu: true})
	}

	def, ok := steps[s.Step]
	if !ok {
		slog.Error("unexpected session step", slog.String("rqID", rqID), slog.Any("step", s.Step))
		_ = e.sessions.DeleteSession(ctx, userID)
		return n.Notify(ctx, model.Message{Text: "Please choose an action from the menu.", Menu: true})
	}

	value, ok := def.validate(text)
	if !ok {
		return n.Notify(ctx, model.Message{Text: def.reprompt})
	}
	def.store(s, value)

	if def.next != model.DefaultStep {
		s.Step = def.next
		s.UpdatedAt = e.now()
		if err := e.sessions.SetSession(ctx, userID, s); err != nil {
			slog.Error("got error from sessions.SetSession", slog.String("rqID", rqID), slog.String("err", err.Error()))
			return n.Notify(ctx, model.Message{Text: "❌ Something went wrong, please try again.", Menu: true})
		}
		return n.Notify(ctx, model.Message{Text: steps[def.next].prompt})
	}

	defer func() {
		if err := e.sessions.DeleteSession(ctx, userID); err != nil {
			slog.Error("got error from sessions.DeleteSession", slog.String("rqID", rqID), slog.String("err", err.Error()))
		}
	}()

	return e.run(ctx, n, s.Step.Flow().String(), func() error { return e.complete(ctx, s, n) })
}

// HasSession reports whether the user is in the middle of a flow.
func (e *Engine) HasSession(ctx context.Context, userID int64) bool {
	_, err := e.sessions.GetSession(ctx, userID)
	return err == nil
}

func (e *Engine) selectLocked(ctx context.Context, userID int64, action model.Action, n model.Notifier) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Info("menu action", slog.String("rqID", rqID), slog.Int64("userID", userID), slog.String("action", string(action)))

	switch action {
	case model.ActionHelp:
		return n.Notify(ctx, model.Message{Text: HelpText, Markdown: true, Menu: true})
	case model.ActionContractInfo:
		return e.run(ctx, n, string(action), func() error { return e.executor.ContractInfo(ctx, n) })
	case model.ActionClaimFees:
		return e.run(ctx, n, string(action), func() error { return e.executor.ClaimFees(ctx, n) })
	case model.ActionWalletSetup:
		return e.run(ctx, n, string(action), func() error { return e.executor.WalletSetup(ctx, n) })
	}

	step, ok := action.FirstStep()
	if !ok {
		slog.Error("unknown action", slog.String("rqID", rqID), slog.String("action", string(action)))
		return n.Notify(ctx, model.Message{Text: "Please choose an action from the menu.", Menu: true})
	}

	// a new flow replaces any unfinished one
	if err := e.sessions.SetSession(ctx, userID, model.NewSession(userID, step, e.now())); err != nil {
		slog.Error("got error from sessions.SetSession", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return n.Notify(ctx, model.Message{Text: "❌ Something went wrong, please try again.", Menu: true})
	}

	return n.Notify(ctx, model.Message{Text: steps[step].prompt})
}

func (e *Engine) complete(ctx context.Context, s model.Session, n model.Notifier) error {
	switch s.Step.Flow() {
	case model.TokenInfoFlow:
		return e.executor.TokenInfo(ctx, n, *s.Trade())
	case model.QuoteFlow:
		return e.executor.Quote(ctx, n, *s.Trade())
	case model.CreateSaleFlow:
		return e.executor.CreateSale(ctx, n, *s.Sale())
	case model.BuyFlow:
		return e.executor.Buy(ctx, n, *s.Trade())
	case model.SetFeeFlow:
		return e.executor.SetFee(ctx, n, *s.Fee())
	case model.DebugBuyFlow:
		return e.executor.DebugBuy(ctx, n, *s.Trade())
	default:
		return fmt.Errorf("no executor for step %d", s.Step)
	}
}

// run executes an action and turns its failure into a message. Only a failed delivery is returned.
func (e *Engine) run(ctx context.Context, n model.Notifier, name string, fn func() error) (err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	defer func() {
		if r := recover(); r != nil {
			slog.Error(
				"Panic recovered in action",
				slog.String("rqID", rqID),
				slog.String("action", name),
				slog.Any("panic", r),
				slog.String("stacktrace", string(debug.Stack())),
			)
			err = n.Notify(ctx, model.Message{Text: "❌ Error: internal error", Menu: true})
		}
	}()

	actionErr := fn()
	if actionErr == nil {
		return nil
	}

	slog.Error("action failed", slog.String("rqID", rqID), slog.String("action", name), slog.String("err", actionErr.Error()))

	return n.Notify(ctx, model.Message{Text: FailureText(actionErr), Menu: true})
}

// FailureText renders an action error for the user.
func FailureText(err error) string {
	var chainErr *service.ChainError
	switch {
	case errors.As(err, &chainErr):
		// the decoded revert name is already part of ChainError.Error
		return "❌ Error: " + chainErr.Error()
	case errors.Is(err, service.ErrAuthorization):
		return "⛔ " + err.Error()
	case errors.Is(err, service.ErrPrecondition):
		return "⚠️ " + err.Error()
	default:
		return "❌ Error: " + err.Error()
	}
}
