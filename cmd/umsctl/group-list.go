package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

// groupListCmd represents the group list command
var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all groups with their member counts",
	Long: `List all groups in storage order with the number of users in each.

Example:
  umsctl group list
  umsctl group list --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		if err := listGroups(cmd.Context(), output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list groups: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	groupCmd.AddCommand(groupListCmd)
}

func listGroups(ctx context.Context, output string) error {
	if err := validOutput(output); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	connector := newConnector(cfg)
	groups, err := gormstore.NewGroupsStore(connector).GetAll(ctx)
	if err != nil {
		return err
	}

	if output == outputJSON {
		return writeJSON(os.Stdout, groups)
	}
	users, err := gormstore.NewUsersStore(connector).GetAll(ctx)
	if err != nil {
		return err
	}
	formatGroupList(os.Stdout, groups, users)
	return nil
}
