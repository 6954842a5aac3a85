package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the server's dataset as a zip archive",
	Long: `Download the complete dataset from the server as a zip archive.

The archive contains one CSV file per entity kind: locations, totes, items
and users. It is self-contained and can be imported into any stow server
with 'stowctl import'.

Examples:
  stowctl export                          # writes inventory-export-<date>.zip
  stowctl export -o backup.zip            # explicit output path
  stowctl export --server http://host:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway()
		if err != nil {
			return err
		}

		blob, err := gw.ExportArchive(cmd.Context())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		output := flagOutput
		if output == "" {
			output = fmt.Sprintf("inventory-export-%s.zip", time.Now().UTC().Format("2006-01-02"))
		}
		if err := os.WriteFile(output, blob, 0o644); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}

		fmt.Printf("wrote %s (%d bytes)\n", output, len(blob))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file path")
}
