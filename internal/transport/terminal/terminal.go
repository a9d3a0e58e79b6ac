package terminal

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"golang.org/x/term"
)

// user is the session key of the single terminal operator.
const user int64 = 0

var menuTitles = map[model.Action]string{
	model.ActionContractInfo: "Get Contract Info",
	model.ActionTokenInfo:    "Get Token Info",
	model.ActionQuote:        "Calculate Buy Amount",
	model.ActionCreateSale:   "Create Token Sale",
	model.ActionBuy:          "Buy Tokens",
	model.ActionClaimFees:    "Claim Token Sale Fee (Owner)",
	model.ActionSetFee:       "Set Fee Percent (Owner)",
	model.ActionWalletSetup:  "Wallet Setup",
	model.ActionDebugBuy:     "Debug Buy",
	model.ActionHelp:         "Help",
}

type Engine interface {
	Select(ctx context.Context, userID int64, action model.Action, n model.Notifier) error
	Handle(ctx context.Context, userID int64, text string, n model.Notifier) error
	HasSession(ctx context.Context, userID int64) bool
}

type Terminal struct {
	engine  Engine
	in      io.Reader
	printer *Printer
}

func New(engine Engine, in io.Reader, out io.Writer, colors bool) *Terminal {
	return &Terminal{engine: engine, in: in, printer: NewPrinter(out, colors)}
}

// NewStdio colours the output only when stdout is a terminal.
func NewStdio(engine Engine) *Terminal {
	return New(engine, os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

// Run reads lines until "0", EOF or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	t.printer.Title("🚀 Meme Launchpad")
	t.showMenu()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := t.handleLine(ctx, strings.TrimSpace(line)); quit {
				t.printer.Line("Goodbye!")
				return nil
			}
			if !t.engine.HasSession(ctx, user) {
				t.showMenu()
			}
		}
	}
}

// handleLine reports whether the operator asked to exit.
func (t *Terminal) handleLine(ctx context.Context, line string) bool {
	ctx = utils.WithNewRqID(ctx)
	rqID := utils.GetRequestIDFromCtx(ctx)

	var err error
	if t.engine.HasSession(ctx, user) {
		err = t.engine.Handle(ctx, user, line, t.printer)
	} else {
		if line == "0" || strings.EqualFold(line, "exit") {
			return true
		}
		if action, ok := menuChoice(line); ok {
			err = t.engine.Select(ctx, user, action, t.printer)
		} else {
			err = t.engine.Handle(ctx, user, line, t.printer)
		}
	}

	if err != nil {
		slog.Error("failed to write to terminal", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}
	return false
}

func (t *Terminal) showMenu() {
	t.printer.Line("")
	for i, action := range model.MenuActions {
		t.printer.Line("%d. %s", i+1, menuTitles[action])
	}
	t.printer.Line("0. Exit")
	t.printer.Line("Choose an option:")
}

func menuChoice(line string) (model.Action, bool) {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(model.MenuActions) {
		return "", false
	}
	return model.MenuActions[n-1], true
}
