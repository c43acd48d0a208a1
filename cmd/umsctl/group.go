package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// groupCmd represents the group command
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Inspect groups",
	Long:  `Inspect the groups collection and derived membership.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'group' requires a subcommand (list, show)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.PersistentFlags().StringP("output", "o", outputText, "Output format (text or json)")
}
