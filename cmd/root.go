package cmd

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inovacc/memolist/internal/application"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A paginated list of short notes",
	Long: `Memolist keeps a list of short text entries on disk and shows them
five to a page. Entries can be added, listed page by page and deleted,
either with subcommands or in the interactive view.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return cmd.Help()
		}

		return runInteractive(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	bindGlobalFlags(rootCmd.PersistentFlags(), &globals)
}

func runInteractive(cmd *cobra.Command) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	_, err = tea.NewProgram(newEntryList(a), tea.WithAltScreen()).Run()

	return err
}
