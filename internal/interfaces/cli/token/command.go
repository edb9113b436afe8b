// Package token issues access tokens for existing accounts. It exists for
// local development and smoke tests; there is no login endpoint.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minerepair/repairhub/internal/domain/user"
	"github.com/minerepair/repairhub/internal/infrastructure/auth"
	"github.com/minerepair/repairhub/internal/infrastructure/config"
	"github.com/minerepair/repairhub/internal/infrastructure/database"
	"github.com/minerepair/repairhub/internal/infrastructure/repository"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

var (
	configPath string
	userID     uint
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user",
		Long:  `Issue a signed access token for an active user. The role claim is taken from the stored account.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "User id (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, "")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepository(database.Get(), log)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	token, expiresAt, err := issue(ctx, users, jwtSvc, userID)
	if err != nil {
		return err
	}

	fmt.Println(token)
	log.Infow("access token issued", "user_id", userID, "expires_at", expiresAt)
	return nil
}

type accountReader interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

func issue(ctx context.Context, users accountReader, jwtSvc *auth.JWTService, id uint) (string, time.Time, error) {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", time.Time{}, fmt.Errorf("user %d not found", id)
		}
		return "", time.Time{}, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	if !u.IsActive() {
		return "", time.Time{}, fmt.Errorf("user %d is inactive", id)
	}
	return jwtSvc.Generate(u.ID(), u.Role())
}
