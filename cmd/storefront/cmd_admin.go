package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/auth"
	"github.com/Skotchmaster/storefront/internal/users"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/hash"
)

var adminInput users.RegisterInput

// storefront create-admin
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator without an existing admin session",
	Long:  "Creates an administrator directly in the database. The password is read from ADMIN_PASSWORD.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		adminInput.Password = os.Getenv("ADMIN_PASSWORD")
		if adminInput.Password == "" {
			return errors.New("ADMIN_PASSWORD is not set")
		}

		rt, err := boot(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		pub := events.New(rt.cfg.KafkaBrokers)
		defer pub.Close()

		svc := users.NewService(
			users.NewGormRepo(rt.db),
			hash.New(rt.cfg.BcryptCost, rt.cfg.HashWorkers),
			auth.NewTokenService(rt.cfg.JWTSecret, rt.cfg.TokenTTL),
			events.NewEmitter(pub, nil),
		)
		admin, err := svc.Bootstrap(ctx, adminInput)
		if err != nil {
			return err
		}
		rt.logger.Info("create_admin_success", "user_id", admin.ID.String(), "email", admin.Email)
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminInput.Email, "email", "", "admin email")
	f.StringVar(&adminInput.FirstName, "fname", "", "admin first name")
	f.StringVar(&adminInput.LastName, "lname", "", "admin last name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("fname")
	_ = createAdminCmd.MarkFlagRequired("lname")
}
