package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

// groupShowCmd represents the group show command
var groupShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one group and its members",
	Long: `Show one group and the users that list it.

Example:
  umsctl group show 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		if err := showGroup(cmd.Context(), args[0], output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show group: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	groupCmd.AddCommand(groupShowCmd)
}

func showGroup(ctx context.Context, rawID, output string) error {
	if err := validOutput(output); err != nil {
		return err
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid group id %q", rawID)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	connector := newConnector(cfg)
	group, err := gormstore.NewGroupsStore(connector).Find(ctx, id)
	if err != nil {
		return fmt.Errorf("group %d: %w", id, err)
	}

	if output == outputJSON {
		return writeJSON(os.Stdout, group)
	}
	users, err := gormstore.NewUsersStore(connector).GetAll(ctx)
	if err != nil {
		return err
	}
	formatGroup(os.Stdout, group, users)
	return nil
}
