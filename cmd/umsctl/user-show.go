package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

// userShowCmd represents the user show command
var userShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one user",
	Long: `Show one user and the groups it belongs to.

Example:
  umsctl user show 1
  umsctl user show 1 --output json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		if err := showUser(cmd.Context(), args[0], output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show user: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userShowCmd)
}

func showUser(ctx context.Context, rawID, output string) error {
	if err := validOutput(output); err != nil {
		return err
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", rawID)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	connector := newConnector(cfg)
	user, err := gormstore.NewUsersStore(connector).Find(ctx, id)
	if err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}

	if output == outputJSON {
		return writeJSON(os.Stdout, user)
	}
	groups, err := gormstore.NewGroupsStore(connector).GetAll(ctx)
	if err != nil {
		return err
	}
	formatUser(os.Stdout, user, groups)
	return nil
}
