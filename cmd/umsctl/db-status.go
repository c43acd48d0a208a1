package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/ums-in-go/pkg/store"
	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

var (
	statusOK   = color.New(color.FgGreen, color.Bold)
	statusWarn = color.New(color.FgYellow, color.Bold)
	statusErr  = color.New(color.FgRed, color.Bold)
)

// dbStatusCmd represents the db status command
var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the store's schema version",
	Long: `Show the schema version recorded in the store and compare it with the
version this build expects.

Example:
  umsctl db status`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		version, dirty, err := newConnector(cfg).Version(context.Background())
		if err != nil && !errors.Is(err, store.ErrNotInitialized) {
			fmt.Fprintf(os.Stderr, "Failed to get status: %v\n", err)
			os.Exit(1)
		}
		if !printStatus(os.Stdout, version, dirty, err) {
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbStatusCmd)
}

// printStatus reports the schema state and whether it is usable
func printStatus(w io.Writer, version int64, dirty bool, err error) bool {
	if errors.Is(err, store.ErrNotInitialized) {
		statusWarn.Fprintln(w, "Store has not been initialized yet")
		return false
	}

	fmt.Fprintf(w, "Current version:  %d\n", version)
	fmt.Fprintf(w, "Expected version: %d\n", gormstore.SchemaVersion)

	switch {
	case dirty:
		statusErr.Fprintln(w, "Warning: store is in a dirty state")
		return false
	case version > gormstore.SchemaVersion:
		statusErr.Fprintln(w, "Store was written by a newer build")
		return false
	case version < gormstore.SchemaVersion:
		statusWarn.Fprintln(w, "Store needs 'umsctl db init'")
		return false
	default:
		statusOK.Fprintln(w, "Store is up to date")
		return true
	}
}
