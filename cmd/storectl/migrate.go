package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lac-hong-legacy/ven_shop/services"
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the storefront tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer closeDB(db)

		if err := services.Migrate(db); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Database migrations executed successfully.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(MigrateCmd)
}
