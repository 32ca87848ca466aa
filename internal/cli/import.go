package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rsvp-whatsapp/internal/config"
	"rsvp-whatsapp/internal/importer"
	"rsvp-whatsapp/internal/storage"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <guest-list.xlsx>",
		Short: "Import the guest list from a spreadsheet",
		Long: `Import guests from an .xlsx sheet with name / phone / attendees /
category columns (Hebrew or English headers). Phones are normalized and
existing guests are updated in place; answers already given are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0])
		},
	}
}

func runImport(path string) error {
	cfg := config.Load()

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open guest directory: %w", err)
	}
	defer store.Close()

	res, err := importer.ImportFile(store, path, cfg.CountryCode)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Imported %d guests", res.Imported)
	if res.Skipped > 0 {
		fmt.Printf(" (%d rows skipped, no usable phone number)", res.Skipped)
	}
	fmt.Println(".")
	return nil
}
