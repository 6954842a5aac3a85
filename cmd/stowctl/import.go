package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/stow/internal/interchange"
	"github.com/spf13/cobra"
)

var flagIncludeUsers bool

var importCmd = &cobra.Command{
	Use:   "import <archive.zip>",
	Short: "Replay an exported archive into a server",
	Long: `Import a previously exported zip archive into the server.

Entities that already exist at the destination are matched by natural key
(location name, tote name, user email) and reused rather than duplicated.
Items are always created. Rows that cannot be imported are skipped and
reported; they never abort the rest of the run.

User rows are ignored unless --include-users is set. Imported users get a
random placeholder password and must reset it before logging in.

Examples:
  stowctl import backup.zip
  stowctl import backup.zip --include-users`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway()
		if err != nil {
			return err
		}

		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read archive: %w", err)
		}

		report, err := interchange.Import(cmd.Context(), gw, blob, interchange.Options{
			IncludeUsers: flagIncludeUsers,
		})
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("locations created: %d\n", report.LocationsCreated)
		fmt.Printf("totes created:     %d\n", report.TotesCreated)
		fmt.Printf("items created:     %d\n", report.ItemsCreated)
		fmt.Printf("users created:     %d\n", report.UsersCreated)
		if len(report.Notes) > 0 {
			fmt.Printf("\n%d note(s):\n", len(report.Notes))
			for _, n := range report.Notes {
				fmt.Printf("  - %s\n", n)
			}
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&flagIncludeUsers, "include-users", false, "also import user accounts")
}
