package admin

import (
	"context"

	"github.com/justicechristophersam-ai/spaflow/internal/auth"
	"github.com/justicechristophersam-ai/spaflow/internal/logger"
)

// Bootstrap creates the first admin account from the environment when the
// admins table is empty. A no-op otherwise, so it is safe on every start.
func Bootstrap(ctx context.Context, repo Repository, name, email, password string) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if email == "" || password == "" {
		logger.Info("No admin accounts and no ADMIN_EMAIL/ADMIN_PASSWORD set; dashboard login disabled")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := repo.Create(ctx, name, email, hash); err != nil {
		return err
	}

	logger.Info("Bootstrap admin created", "email", email)
	return nil
}
