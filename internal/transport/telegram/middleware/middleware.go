package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"
)

func Logger() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			now := time.Now()

			rqID := uuid.NewString()
			c.Set("rqID", rqID)

			var userID int64
			if sender := c.Sender(); sender != nil {
				userID = sender.ID
			}

			slog.Info(
				"start request",
				slog.String("rqID", rqID),
				slog.Int64("userID", userID),
			)

			defer func() {
				slog.Info(
					"request finished",
					slog.String("rqID", rqID),
					slog.String("request duration", fmt.Sprintf("%.2fs", time.Since(now).Seconds())),
				)
			}()

			err := next(c)
			if err != nil {
				slog.Error("handler failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
			}
			return err
		}
	}
}
