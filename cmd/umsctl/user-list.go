package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

// userListCmd represents the user list command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Long: `List all users in storage order.

Example:
  umsctl user list
  umsctl user list --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		if err := listUsers(cmd.Context(), output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list users: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
}

func listUsers(ctx context.Context, output string) error {
	if err := validOutput(output); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	users, err := gormstore.NewUsersStore(newConnector(cfg)).GetAll(ctx)
	if err != nil {
		return err
	}

	if output == outputJSON {
		return writeJSON(os.Stdout, users)
	}
	formatUserList(os.Stdout, users)
	return nil
}
