package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

// dbInitCmd represents the db init command
var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema and seed the store",
	Long: `Create the schema and seed the store.

The schema is brought to the version this build expects and the seed is
written in a single transaction. Running the command again on a seeded
store changes nothing.

With --wait a seed file that does not exist yet is waited for. Provision
it atomically (write to a temporary name, then rename) so it is never read
half written.

Example:
  umsctl db init
  umsctl db init --seed https://example.com/seed.json
  umsctl db init --seed /run/seed/seed.json --wait --timeout 5m`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		location := cfg.SeedLocation
		if cmd.Flags().Changed("seed") {
			location, _ = cmd.Flags().GetString("seed")
		}
		wait, _ := cmd.Flags().GetBool("wait")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if err := initializeStore(ctx, newConnector(cfg), location, wait); err != nil {
			fmt.Fprintf(os.Stderr, "Initialization failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Store initialized at schema version %d\n", gormstore.SchemaVersion)
	},
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().String("seed", "", "seed file or URL (default from configuration)")
	dbInitCmd.Flags().Bool("wait", false, "wait for a seed file to appear")
	dbInitCmd.Flags().Duration("timeout", 0, "give up after this long (0 waits forever)")
}
