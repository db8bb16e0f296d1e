package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/catalog_api/internal/apperr"
	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/repository"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// AdminAuthService authenticates admin panel accounts and issues JWTs.
type AdminAuthService struct {
	adminRepo *repository.AdminUserRepository
}

func NewAdminAuthService(adminRepo *repository.AdminUserRepository) *AdminAuthService {
	return &AdminAuthService{adminRepo: adminRepo}
}

// Login verifies credentials and returns a signed session token.
func (s *AdminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	log.Debug().Str("email", email).Msg("Login attempt")

	user, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return "", utils.ErrInvalidCredentials
		}
		return "", err
	}

	if !user.IsActive {
		log.Warn().Str("email", email).Msg("Account is inactive")
		return "", utils.ErrAccountInactive
	}

	// Verify password using bcrypt
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Password verification failed")
		return "", utils.ErrInvalidCredentials
	}

	if err := s.adminRepo.TouchLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the timestamp is advisory.
		log.Warn().Err(err).Int("user_id", user.ID).Msg("Failed to record last login")
	}

	log.Info().Str("email", email).Msg("Login successful")

	return utils.GenerateJWT(user.ID, user.Email)
}

// CreateAdmin registers a new admin account with a bcrypt-hashed password.
func (s *AdminAuthService) CreateAdmin(ctx context.Context, email, password, name string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		IsActive:     true,
	}

	return s.adminRepo.Create(ctx, user)
}

// EnsureAdmin creates the seed admin account if it does not exist yet.
// Used at startup when ADMIN_EMAIL/ADMIN_PASSWORD are configured.
func (s *AdminAuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, err := s.adminRepo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return err
	}
	return s.CreateAdmin(ctx, email, password, "Administrator")
}
