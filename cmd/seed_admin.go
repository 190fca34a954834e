package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rohingrover/absuma/internal/database"
	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
	"github.com/rohingrover/absuma/internal/service"
)

var (
	seedUsername string
	seedPassword string
	seedFullName string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create an initial admin user",
	RunE:  runSeedAdmin,
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedUsername, "username", "admin", "admin username")
	seedAdminCmd.Flags().StringVar(&seedPassword, "password", "", "admin password (required)")
	seedAdminCmd.Flags().StringVar(&seedFullName, "full-name", "Administrator", "admin display name")
	_ = seedAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(seedAdminCmd)
}

func runSeedAdmin(cmd *cobra.Command, args []string) error {
	db, err := database.Connect(&cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	auth := service.NewAuthService(repository.NewUserRepository(db), &cfg.Auth)
	user, err := auth.CreateUser(context.Background(), &service.CreateUserInput{
		Username: seedUsername,
		Password: seedPassword,
		FullName: seedFullName,
		Role:     string(models.RoleAdmin),
	})
	if err != nil {
		return err
	}

	log.WithField("username", user.Username).Info("Admin user created")
	return nil
}
