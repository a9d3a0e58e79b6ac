package tgbot

import (
	"fmt"
	"log/slog"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/telebotConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/internal/transport/telegram"
	customMW "github.com/KotFed0t/meme_launchpad_bot/internal/transport/telegram/middleware"
	tele "gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"
)

type TGBot struct {
	bot  *tele.Bot
	ctrl *telegram.Controller
}

func New(cfg *config.Config, ctrl *telegram.Controller) (*TGBot, error) {
	settings := tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &tele.LongPoller{Timeout: cfg.Telegram.UpdTimeout},
		// updates are handled concurrently, the engine serializes per user
		Synchronous: false,
		OnError: func(err error, c tele.Context) {
			slog.Error("telebot error", slog.String("err", err.Error()))
		},
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("tele.NewBot: %w", err)
	}

	return &TGBot{bot: b, ctrl: ctrl}, nil
}

func (b *TGBot) Start() {
	b.bot.Use(middleware.Recover(), customMW.Logger())

	b.setupRoutes()

	go b.bot.Start()
	slog.Info("tgbot started!", slog.String("username", b.bot.Me.Username))
}

func (b *TGBot) Stop() {
	slog.Info("start stopping tgbot")
	b.bot.Stop()
	slog.Info("tgbot stopped")
}

func (b *TGBot) setupRoutes() {
	b.bot.Handle("/start", b.ctrl.Start)
	b.bot.Handle("/help", b.ctrl.Help)

	for _, action := range model.MenuActions {
		btn := telebotConverter.Button(action)
		b.bot.Handle(&btn, b.ctrl.Menu(action))

		if action != model.ActionHelp {
			b.bot.Handle("/"+string(action), b.ctrl.Command(action))
		}
	}

	b.bot.Handle(tele.OnText, b.ctrl.Text)
}
