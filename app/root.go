// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-warehouse-admin",
	Short: "GoWarehouse-Admin is a web-based warehouse and inventory management tool",
	Long: `GoWarehouse-Admin is a web-based warehouse and inventory management tool
that provides a REST API for managing products, categories, warehouses,
stock movements, dynamic product attributes and role-based user access.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
