package cmd

import "github.com/spf13/cobra"

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive list",
	Long: `Open the interactive view. Type and press Enter to add an entry, Tab to
move to the list, arrow keys to move and change pages, and d to delete.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
