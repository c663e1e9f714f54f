package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a new entry",
	Long: `Add a new entry to the end of the list. All arguments are joined with
single spaces. Blank text is ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		e, ok, err := a.session.SubmitNewEntry(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to add entry: %w", err)
		}

		out := cmd.OutOrStdout()

		if !ok {
			_, _ = fmt.Fprintln(out, "Nothing to add.")
			return nil
		}

		_, _ = fmt.Fprintf(out, "Added #%d: %s\n", e.ID, e.Value)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
