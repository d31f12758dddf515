package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/learnloop/learnloop-server-go/internal/features/user"
	"github.com/learnloop/learnloop-server-go/pkg/types"
)

const (
	defaultSuperAdminEmail = "superadmin@learnloop.dev"
	defaultSuperAdminName  = "Super Admin"
)

// EnsureDefaultSuperAdmin creates or synchronizes the default super admin
// account. The password comes from LEARNLOOP_SUPERADMIN_PASSWORD; seeding
// is skipped when it is unset so production never gets a known password.
func EnsureDefaultSuperAdmin(db *gorm.DB, logger *slog.Logger) error {
	password := os.Getenv("LEARNLOOP_SUPERADMIN_PASSWORD")
	if password == "" {
		logger.Info("default super admin seeding skipped", slog.String("env_var", "LEARNLOOP_SUPERADMIN_PASSWORD unset"))
		return nil
	}

	var existing user.User
	err := db.Where("LOWER(email) = ?", strings.ToLower(defaultSuperAdminEmail)).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		_, createErr := user.Create(db, user.CreateInput{
			FullName: defaultSuperAdminName,
			Email:    defaultSuperAdminEmail,
			Password: password,
			UserType: types.UserTypeSuperAdmin,
		})
		if createErr != nil {
			if isUndefinedTableError(createErr) {
				logger.Warn("default super admin skipped - users table missing", slog.String("email", defaultSuperAdminEmail))
				return nil
			}
			return fmt.Errorf("create super admin: %w", createErr)
		}

		logger.Info("default super admin created", slog.String("email", defaultSuperAdminEmail))
		return nil

	case err != nil:
		if isUndefinedTableError(err) {
			logger.Warn("default super admin skipped - users table missing", slog.String("email", defaultSuperAdminEmail))
			return nil
		}
		return fmt.Errorf("get super admin: %w", err)
	}

	updates := map[string]interface{}{}

	if needsPasswordReset(existing.Password, password) {
		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(password), 10)
		if hashErr != nil {
			return fmt.Errorf("hash super admin password: %w", hashErr)
		}
		updates["password"] = string(hashedPassword)
	}

	if existing.UserType != types.UserTypeSuperAdmin {
		updates["user_type"] = types.UserTypeSuperAdmin
	}

	if !existing.Active {
		updates["is_active"] = true
	}

	if len(updates) == 0 {
		logger.Info("default super admin already up to date", slog.String("email", defaultSuperAdminEmail))
		return nil
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("update super admin: %w", err)
	}

	logger.Info("default super admin synchronized", slog.String("email", defaultSuperAdminEmail))
	return nil
}

func needsPasswordReset(hashedPassword, password string) bool {
	if hashedPassword == "" {
		return true
	}

	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) != nil
}

func isUndefinedTableError(err error) bool {
	if err == nil {
		return false
	}

	message := err.Error()
	return strings.Contains(message, "relation \"users\" does not exist") ||
		strings.Contains(message, "no such table: users")
}
