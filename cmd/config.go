package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inovacc/memolist/internal/application"
	"github.com/inovacc/memolist/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after defaults, the config file and flags are
applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		printInfoBox(cmd.OutOrStdout(), "memolist configuration", map[string]string{
			"Backend":    cfg.Storage.Backend,
			"Database":   cfg.Storage.Path,
			"Page size":  strconv.Itoa(cfg.Paging.PageSize),
			"Ids":        cfg.Entries.IDs,
			"Log format": cfg.Log.Format,
			"Log level":  cfg.Log.Level,
		}, []string{"Backend", "Database", "Page size", "Ids", "Log format", "Log level"})

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		path := globals.ConfigPath
		if path == "" {
			if path, err = application.DefaultConfigPath(); err != nil {
				return err
			}
		}

		if path, err = expandPath(path); err != nil {
			return err
		}

		if fileExists(path) && !configInitForce {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
