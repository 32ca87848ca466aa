package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rsvp-whatsapp/internal/config"
	"rsvp-whatsapp/internal/models"
	"rsvp-whatsapp/internal/storage"
)

// NewGuestsCommand creates the guests command.
func NewGuestsCommand(rootOpts *RootOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "guests",
		Short: "List guests and their RSVP state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuests(status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (not_responded, yes, no, maybe)")
	return cmd
}

func runGuests(status string) error {
	cfg := config.Load()

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open guest directory: %w", err)
	}
	defer store.Close()

	var guests []models.Guest
	if status == "" {
		guests, err = store.ListAll()
	} else {
		parsed, perr := parseStatus(status)
		if perr != nil {
			return perr
		}
		guests, err = store.ListByStatus(parsed)
	}
	if err != nil {
		return err
	}

	if len(guests) == 0 {
		fmt.Println("No guests found.")
		return nil
	}

	fmt.Printf("📋 Guests (%d total):\n", len(guests))
	fmt.Println(strings.Repeat("-", 60))
	for _, g := range guests {
		name := g.Name
		if name == "" {
			name = "(no name)"
		}
		fmt.Printf("Name: %s\n", name)
		fmt.Printf("Phone: %s\n", g.Phone)
		fmt.Printf("Status: %s\n", g.Status)
		if g.Status == models.RSVPYes {
			fmt.Printf("Attendees: %d\n", g.Attendees)
		}
		if g.Category != "" {
			fmt.Printf("Category: %s\n", g.Category)
		}
		if !g.RespondedAt.IsZero() {
			fmt.Printf("Responded: %s\n", g.RespondedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Println(strings.Repeat("-", 60))
	}
	return nil
}

func parseStatus(s string) (models.RSVPStatus, error) {
	switch models.RSVPStatus(strings.ToLower(s)) {
	case models.RSVPNotResponded:
		return models.RSVPNotResponded, nil
	case models.RSVPYes:
		return models.RSVPYes, nil
	case models.RSVPNo:
		return models.RSVPNo, nil
	case models.RSVPMaybe:
		return models.RSVPMaybe, nil
	}
	return "", fmt.Errorf("unknown status %q (want not_responded, yes, no or maybe)", s)
}
