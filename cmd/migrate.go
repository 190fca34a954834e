package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rohingrover/absuma/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(&cfg.Database)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("Database migration completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
