package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/internal/scheduler"
	"github.com/KotFed0t/meme_launchpad_bot/internal/tgbot"
	"github.com/KotFed0t/meme_launchpad_bot/internal/transport/telegram"
	"github.com/KotFed0t/meme_launchpad_bot/internal/transport/terminal"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"github.com/spf13/cobra"
)

func newTelegramCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Run the telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Telegram.Token == "" {
				return errors.New("TELEGRAM_BOT_TOKEN is not set")
			}

			ctx := cmd.Context()

			a, err := buildApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			sched, err := scheduler.New()
			if err != nil {
				return err
			}
			err = sched.NewIntervalJob(
				"expire stale sessions",
				scheduler.SweepSessions(a.sessions, cfg.SessionExpiration, time.Now),
				cfg.Jobs.SessionSweepInterval,
				false,
			)
			if err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			tgController := telegram.NewController(a.engine, a.service)

			tgBot, err := tgbot.New(cfg, tgController)
			if err != nil {
				return err
			}
			tgBot.Start()
			defer tgBot.Stop()

			<-ctx.Done()
			slog.Info("shutting down")
			return nil
		},
	}
}

func newTerminalCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "terminal",
		Short: "Run the interactive terminal menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := buildApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			err = terminal.NewStdio(a.engine).Run(ctx)
			if errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		},
	}
}

func newDebugBuyCmd(cfg *config.Config) *cobra.Command {
	var form model.TradeForm

	cmd := &cobra.Command{
		Use:   "debug-buy",
		Short: "Run every buy pre-check for a token and amount without sending a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := utils.WithNewRqID(cmd.Context())

			a, err := buildApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			report := a.service.RunDebugPipeline(ctx, form)
			fmt.Fprintln(cmd.OutOrStdout(), report.Text())

			if !report.Passed {
				return errors.New("debug buy found a problem")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Token, "token", "", "token sale address")
	cmd.Flags().StringVar(&form.Amount, "amount", "", model.QuoteSymbol+" amount to test")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newWalletCmd(cfg *config.Config) *cobra.Command {
	var approve bool

	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Show NEON and " + model.QuoteSymbol + " balances and the launchpad allowance of the signer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := utils.WithNewRqID(cmd.Context())

			a, err := buildApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			printer := terminal.NewPrinter(cmd.OutOrStdout(), false)
			if approve {
				return a.service.ApproveQuote(ctx, printer)
			}
			return a.service.WalletSetup(ctx, printer)
		},
	}

	cmd.Flags().BoolVar(&approve, "approve", false, "approve an unlimited "+model.QuoteSymbol+" allowance for the launchpad")

	return cmd
}
