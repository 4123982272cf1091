package app

import (
	"github.com/spf13/cobra"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/daemon"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/logger"
)

func init() { //nolint: gochecknoinits
	seedCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")

	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the permission catalog, baseline roles and the default admin user",
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}

		if err = logger.Init(cfg.Log); err != nil {
			panic(err)
		}
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return daemon.Seed(&cfg)
	},
}
