package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rsvp-whatsapp/internal/config"
	"rsvp-whatsapp/internal/storage"
)

// NewUndeliveredCommand creates the undelivered command.
func NewUndeliveredCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "undelivered",
		Short: "List guests whose invitation could not be delivered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUndelivered()
		},
	}
}

func runUndelivered() error {
	cfg := config.Load()

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open guest directory: %w", err)
	}
	defer store.Close()

	entries, err := store.ListFailures()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No undelivered invitations. 🎉")
		return nil
	}

	fmt.Printf("❌ Undelivered invitations (%d total):\n", len(entries))
	fmt.Println(strings.Repeat("-", 60))
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "(no name)"
		}
		fmt.Printf("Name: %s\n", name)
		fmt.Printf("Phone: %s\n", e.Phone)
		if e.Category != "" {
			fmt.Printf("Category: %s\n", e.Category)
		}
		fmt.Printf("First failure: %s\n", e.FailedAt.Format("2006-01-02 15:04:05"))
		fmt.Println(strings.Repeat("-", 60))
	}
	return nil
}
