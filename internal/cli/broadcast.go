package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rsvp-whatsapp/internal/broadcast"
	"rsvp-whatsapp/internal/config"
	"rsvp-whatsapp/internal/storage"
)

// NewBroadcastCommand creates the broadcast command.
func NewBroadcastCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast",
		Short: "Send the invitation to every guest who has not responded",
		Long: `Send the invitation to every guest whose status is still not_responded.

Sends are paced (BROADCAST_DELAY_MS, default 3000) to respect WhatsApp
rate limits. Guests whose invitation cannot be delivered are recorded in
the undelivered ledger for manual follow-up; see the undelivered command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBroadcast(cmd)
		},
	}
}

func runBroadcast(cmd *cobra.Command) error {
	cfg := config.Load()

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open guest directory: %w", err)
	}
	defer store.Close()

	service, err := newService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize WhatsApp service: %w", err)
	}

	fmt.Println("Connecting to WhatsApp...")
	if err := service.Connect(); err != nil {
		return fmt.Errorf("failed to connect to WhatsApp: %w", err)
	}
	defer service.Disconnect()

	dispatcher := broadcast.NewDispatcher(service, store, &broadcast.Config{
		Delay:       cfg.BroadcastDelay,
		InviteImage: cfg.InviteImage,
		Messages:    messagesConfig(cfg),
	}, componentLogger("Broadcast"))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := dispatcher.Run(ctx)
	fmt.Printf("\n📨 Broadcast finished: %d sent, %d undelivered.\n", report.Sent, report.Failed)
	if report.Failed > 0 {
		fmt.Println("Run 'rsvp-bot undelivered' to see who needs manual follow-up.")
	}
	return err
}
