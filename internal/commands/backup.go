package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/backup"
)

func newExportCommand(configPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full books to a JSON backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			archive, err := backup.Export(cmd.Context(), a.db, a.cfg.Institution.Tenant)
			if err != nil {
				return err
			}
			data, err := backup.Encode(archive)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing backup: %w", err)
			}
			fmt.Printf("Exported %d collections to %s\n", len(archive.Collections), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "schoolbooks-backup.json", "backup file to write")
	return cmd
}

func newRestoreCommand(configPath *string) *cobra.Command {
	var in string
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the books with a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("restore replaces all current data; re-run with --yes to confirm")
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("reading backup: %w", err)
			}
			archive, err := backup.Decode(data)
			if err != nil {
				return err
			}
			if err := backup.Restore(cmd.Context(), a.db, a.cfg.Institution.Tenant, archive); err != nil {
				return err
			}
			fmt.Printf("Restored books from %s\n", in)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "backup file to restore (required)")
	_ = cmd.MarkFlagRequired("in")
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the destructive restore")
	return cmd
}
