package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", slog.String("err", err.Error()))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "launchpad",
		Short:         "Drive the meme launchpad token-sale contract from telegram or a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			*cfg = *config.MustLoad()

			// the interactive front-ends own stdout
			logOut := io.Writer(os.Stderr)
			if cmd.Name() == "telegram" {
				logOut = os.Stdout
			}
			setupLogger(cfg, logOut)
			slog.Debug("config loaded", slog.String("rpc", cfg.Chain.RPCURL), slog.String("contract", cfg.Chain.ContractAddress))
		},
	}

	root.AddCommand(
		newTelegramCmd(cfg),
		newTerminalCmd(cfg),
		newDebugBuyCmd(cfg),
		newWalletCmd(cfg),
	)

	return root
}

func setupLogger(cfg *config.Config, out io.Writer) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
