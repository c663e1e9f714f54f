package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inovacc/memolist/internal/model"
	"github.com/inovacc/memolist/internal/session"
)

const listValueWidth = 60

var (
	listPage int
	listJSON bool
)

// listOutput is the --json shape of one page.
type listOutput struct {
	Entries     []model.Entry `json:"entries"`
	CurrentPage int           `json:"current_page"`
	PageCount   int           `json:"page_count"`
	Total       int           `json:"total"`
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print one page of entries",
	Long: `Print the entries on one page. Pages are numbered from 1; a page past
the end shows the last page instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.session.ChangePage(listPage)
		v := a.session.View()

		if listJSON {
			return printListJSON(cmd, v)
		}

		printList(cmd, v)

		return nil
	},
}

func printListJSON(cmd *cobra.Command, v session.View) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	out := listOutput{
		Entries:     v.Entries,
		CurrentPage: v.CurrentPage,
		PageCount:   v.PageCount,
		Total:       v.Total,
	}
	if out.Entries == nil {
		out.Entries = []model.Entry{}
	}

	return enc.Encode(out)
}

func printList(cmd *cobra.Command, v session.View) {
	out := cmd.OutOrStdout()

	if v.Total == 0 {
		printEmptyResult(out, "entries", "memolist add <text>")
		return
	}

	for _, e := range v.Entries {
		_, _ = fmt.Fprintf(out, "%6d  %s\n", e.ID, truncateString(e.Value, listValueWidth))
	}

	if v.ShowPagination {
		_, _ = fmt.Fprintf(out, "\nPage %d of %d (%d entries)\n", v.CurrentPage, v.PageCount, v.Total)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page number to show")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the page as JSON")
}
