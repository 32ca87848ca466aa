// Package cli wires the bot's commands: run, broadcast, import and the
// reporting views.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rsvp-whatsapp/internal/config"
	"rsvp-whatsapp/internal/messages"
	"rsvp-whatsapp/internal/whatsapp"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "rsvp-bot",
		Short:         "WhatsApp RSVP bot",
		Long:          "Tracks RSVP responses for an event over WhatsApp: imports the guest list, broadcasts the invitation and runs the reply conversation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if opts.Verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		NewRunCommand(opts),
		NewBroadcastCommand(opts),
		NewImportCommand(opts),
		NewGuestsCommand(opts),
		NewUndeliveredCommand(opts),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func componentLogger(name string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Str("component", name).Logger()
}

func messagesConfig(cfg *config.Config) *messages.Config {
	return &messages.Config{
		EventDate:     cfg.EventDate,
		EventLocation: cfg.EventLocation,
		WazeLink:      cfg.WazeLink,
		ResetKeyword:  cfg.ResetKeyword,
		MaxAttendees:  cfg.MaxAttendees,
	}
}

func newService(cfg *config.Config) (*whatsapp.Service, error) {
	return whatsapp.NewService(&whatsapp.Config{
		DataDir:     cfg.DataDir,
		CountryCode: cfg.CountryCode,
		SendTimeout: cfg.SendTimeout,
	})
}
