package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete an entry by id",
	Long: `Delete the entry with the given id. Removing an id that does not exist
is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: must be an integer", args[0])
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.session.DeleteEntry(id)
		if err != nil {
			return fmt.Errorf("failed to remove entry: %w", err)
		}

		out := cmd.OutOrStdout()

		if !removed {
			_, _ = fmt.Fprintf(out, "No entry with id %d\n", id)
			return nil
		}

		_, _ = fmt.Fprintf(out, "Removed #%d\n", id)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
