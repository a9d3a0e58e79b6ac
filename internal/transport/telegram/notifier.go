package telegram

import (
	"context"
	"log/slog"

	"github.com/KotFed0t/meme_launchpad_bot/internal/converter/telebotConverter"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	tele "gopkg.in/telebot.v4"
)

type sender interface {
	Send(what interface{}, opts ...interface{}) error
}

// Notifier sends engine and service messages to the chat of one update.
type Notifier struct {
	chat sender
}

func NewNotifier(c sender) *Notifier {
	return &Notifier{chat: c}
}

// Notify falls back to plain text when telegram rejects the markdown (token names may carry '_' or '*').
func (n *Notifier) Notify(ctx context.Context, msg model.Message) error {
	err := n.chat.Send(msg.Text, telebotConverter.SendOptions(msg)...)
	if err == nil || !msg.Markdown {
		return err
	}

	slog.Warn(
		"markdown message rejected, resending as plain text",
		slog.String("rqID", utils.GetRequestIDFromCtx(ctx)),
		slog.String("err", err.Error()),
	)

	msg.Markdown = false
	return n.chat.Send(msg.Text, telebotConverter.SendOptions(msg)...)
}

var _ sender = (tele.Context)(nil)
