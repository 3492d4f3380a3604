package members

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/maren/taskhive/internal/apperr"
	"github.com/maren/taskhive/internal/auth"
	"github.com/maren/taskhive/internal/database/models"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	passwords *PasswordGenerator
}

func NewService(db *gorm.DB, passwords *PasswordGenerator) *Service {
	return &Service{db: db, passwords: passwords}
}

type AddInput struct {
	FullName    string
	DisplayName string
	Email       string
}

// List returns the organization's accounts ordered by full name.
func (s *Service) List(ctx context.Context, orgID uuid.UUID) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("full_name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Add creates a Member account with a hashed temporary password. The
// temporary credential is never returned to the caller.
func (s *Service) Add(ctx context.Context, orgID uuid.UUID, input AddInput) (*models.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	displayName := strings.TrimSpace(input.DisplayName)
	email := auth.NormalizeEmail(input.Email)

	if fullName == "" || displayName == "" || email == "" {
		return nil, apperr.Validation("Full name, display name and email are required.")
	}

	// Email uniqueness is global: login looks accounts up by bare email.
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Validation("Email is already registered.")
	}

	hash, err := auth.HashPassword(s.passwords.Generate())
	if err != nil {
		return nil, err
	}

	user := models.User{
		OrganizationID: orgID,
		Email:          email,
		PasswordHash:   hash,
		FullName:       fullName,
		DisplayName:    displayName,
		Role:           models.RoleMember,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Remove deletes a Member account. The Owner and the caller's own account
// are protected.
func (s *Service) Remove(ctx context.Context, orgID, callerID, userID uuid.UUID) error {
	if userID == callerID {
		return apperr.Validation("You cannot remove yourself from the organization.")
	}

	var user models.User
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", userID, orgID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Member not found.")
		}
		return err
	}

	if user.Role == models.RoleOwner {
		return apperr.Validation("Cannot remove the organization owner.")
	}

	// Removal is permanent: a soft-deleted row would keep holding the unique
	// email index and block the address from ever being registered again.
	return s.db.WithContext(ctx).Unscoped().Delete(&user).Error
}
