package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/importer"
)

func newImportCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import entries from a spreadsheet export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			rows, err := importer.ReadRows(f)
			if err != nil {
				return err
			}

			im := importer.New(a.chart, a.ledger)
			res, err := im.Import(cmd.Context(), rows)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d rows\n", res.Imported)
			for _, s := range res.Skipped {
				fmt.Printf("  skipped row %d: %s\n", s.Line, s.Reason)
			}
			return nil
		},
	}
}
