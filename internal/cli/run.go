package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rsvp-whatsapp/internal/config"
	"rsvp-whatsapp/internal/handler"
	"rsvp-whatsapp/internal/storage"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to WhatsApp and answer RSVP replies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot()
		},
	}
}

func runBot() error {
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

	rsvpHandler := handler.NewRSVPHandler(service, store, &handler.Config{
		CountryCode: cfg.CountryCode,
		Messages:    messagesConfig(cfg),
	}, componentLogger("RSVP"))

	service.SetMessageHandler(rsvpHandler.HandleMessage)

	fmt.Println("Connecting to WhatsApp...")
	if err := service.Connect(); err != nil {
		return fmt.Errorf("failed to connect to WhatsApp: %w", err)
	}

	fmt.Println("\n✅ Connected to WhatsApp!")
	fmt.Println("The bot is now listening for RSVP responses. Press Ctrl+C to stop.")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("\nShutting down...")
	service.Disconnect()
	return nil
}
