package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lac-hong-legacy/ven_shop/seed/seeders"
	"github.com/lac-hong-legacy/ven_shop/services"
)

var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty catalog with starter products",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer closeDB(db)

		if err := services.Migrate(db); err != nil {
			return err
		}
		return seeders.NewMainSeeder(db).SeedAll(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(SeedCmd)
}
