package telegram

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/telebotConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	tele "gopkg.in/telebot.v4"
)

const internalErrMsg = "❌ Something went wrong, please try again."

type Engine interface {
	Select(ctx context.Context, userID int64, action model.Action, n model.Notifier) error
	Handle(ctx context.Context, userID int64, text string, n model.Notifier) error
}

type StatusReader interface {
	Status(ctx context.Context) (model.ChainStatus, error)
}

type Controller struct {
	engine Engine
	status StatusReader
}

func NewController(engine Engine, status StatusReader) *Controller {
	return &Controller{
		engine: engine,
		status: status,
	}
}

func (ctrl *Controller) Start(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	status, err := ctrl.status.Status(ctx)
	if err != nil {
		slog.Error("got error from status.Status", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send("❌ Cannot reach the network right now: "+err.Error(), telebotConverter.MainMenu())
	}

	text, markup := telebotConverter.WelcomeResponse(status)
	return c.Send(text, tele.ModeMarkdown, markup)
}

func (ctrl *Controller) Help(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	return ctrl.engine.Select(ctx, userID(c), model.ActionHelp, NewNotifier(c))
}

// Menu handles an inline button of the main menu.
func (ctrl *Controller) Menu(action model.Action) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := utils.CreateCtxWithRqID(c)
		rqID := utils.GetRequestIDFromCtx(ctx)

		if err := c.Respond(); err != nil {
			slog.Warn("failed to answer callback", slog.String("rqID", rqID), slog.String("err", err.Error()))
		}

		return ctrl.engine.Select(ctx, userID(c), action, NewNotifier(c))
	}
}

// Command handles a slash command that names a menu action.
func (ctrl *Controller) Command(action model.Action) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := utils.CreateCtxWithRqID(c)
		return ctrl.engine.Select(ctx, userID(c), action, NewNotifier(c))
	}
}

func (ctrl *Controller) Text(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	return ctrl.engine.Handle(ctx, userID(c), c.Text(), NewNotifier(c))
}

func userID(c tele.Context) int64 {
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return c.Chat().ID
}
