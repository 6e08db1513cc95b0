package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lac-hong-legacy/ven_shop/services"
	"github.com/lac-hong-legacy/ven_shop/services/repositories"
)

// SweepCmd runs one abandoned cart reminder sweep, for schedulers that prefer a
// process over the HTTP cron endpoint.
var SweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Send reminders for stale abandoned carts once",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer closeDB(db)

		cfg := services.CartConfigFromEnv()
		if v := viper.GetInt("cart-reminder-batch"); v > 0 {
			cfg.BatchSize = v
		}
		if v := viper.GetDuration("cart-stale-after"); v > 0 {
			cfg.StaleAfter = v
		}
		if viper.IsSet("cart-reminder-send-rate") {
			cfg.SendRate = viper.GetFloat64("cart-reminder-send-rate")
		}

		repo := repositories.NewCartRepository(db)
		if viper.GetBool("dry-run") {
			return previewReminders(cmd.Context(), cmd.OutOrStdout(), repo, cfg, time.Now().UTC())
		}

		mailer := services.NewEmailServiceFromEnv()
		if !mailer.Enabled() {
			return fmt.Errorf("no email transport configured, set RESEND_API_KEY or SMTP_HOST")
		}

		cart := services.NewCartService(repo, mailer, cfg)
		summary, err := cart.RunReminderSweep(cmd.Context())
		if err != nil {
			return fmt.Errorf("sweep: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "sent=%d failed=%d skipped=%d\n", summary.Sent, summary.Failed, summary.Skipped)
		return nil
	},
}

func init() {
	flags := SweepCmd.Flags()
	flags.Int("batch", 0, "maximum carts per sweep (env CART_REMINDER_BATCH)")
	flags.Duration("stale-after", 0, "idle time before a cart is abandoned, e.g. 1h (env CART_STALE_AFTER)")
	flags.Float64("send-rate", 2, "reminders per second, 0 disables pacing (env CART_REMINDER_SEND_RATE)")
	flags.Bool("dry-run", false, "list the carts a sweep would remind without sending or marking them")

	_ = viper.BindPFlag("cart-reminder-batch", flags.Lookup("batch"))
	_ = viper.BindPFlag("cart-stale-after", flags.Lookup("stale-after"))
	_ = viper.BindPFlag("cart-reminder-send-rate", flags.Lookup("send-rate"))
	_ = viper.BindPFlag("dry-run", flags.Lookup("dry-run"))

	RootCmd.AddCommand(SweepCmd)
}

// previewReminders lists what a sweep would send. It only reads: no mail goes out
// and no cart is marked, so every listed cart stays eligible.
func previewReminders(ctx context.Context, out io.Writer, repo *repositories.CartRepository, cfg services.CartConfig, now time.Time) error {
	carts, err := repo.FindStale(ctx, now.Add(-cfg.StaleAfter), cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("select stale carts: %w", err)
	}

	var eligible, skipped int
	for _, cart := range carts {
		if len(cart.Items) == 0 || cart.Email == nil || *cart.Email == "" {
			skipped++
			continue
		}
		eligible++
		fmt.Fprintf(out, "would remind %s about cart %s (%.2f)\n", *cart.Email, cart.SessionID, cart.TotalAmount)
	}

	fmt.Fprintf(out, "dry run: would_send=%d skipped=%d\n", eligible, skipped)
	return nil
}
