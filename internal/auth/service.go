package auth

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/maren/taskhive/internal/apperr"
	"github.com/maren/taskhive/internal/database/models"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	jwt *JWTService
}

func NewService(db *gorm.DB, jwt *JWTService) *Service {
	return &Service{db: db, jwt: jwt}
}

type RegisterInput struct {
	OrganizationName string
	FullName         string
	Email            string
	Password         string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *models.User
	Org   *models.Organization
}

// Register creates an organization and its owner account in one transaction
// and issues a session token for the new owner.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if strings.TrimSpace(input.OrganizationName) == "" ||
		strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Password) == "" {
		return nil, apperr.Validation("All registration fields are required.")
	}

	email := NormalizeEmail(input.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Validation("Email is already registered.")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	org := models.Organization{
		Name: strings.TrimSpace(input.OrganizationName),
		Slug: Slugify(input.OrganizationName),
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		user = models.User{
			OrganizationID: org.ID,
			Email:          email,
			PasswordHash:   hash,
			FullName:       strings.TrimSpace(input.FullName),
			DisplayName:    strings.TrimSpace(input.FullName),
			Role:           models.RoleOwner,
		}

		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, org.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.Organization = &org

	return &AuthResult{Token: token, User: &user, Org: &org}, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same failure so accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := NormalizeEmail(input.Email)

	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Organization").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid credentials.")
		}
		return nil, err
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials.")
	}

	token, err := s.jwt.GenerateToken(user.ID, user.OrganizationID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: &user, Org: user.Organization}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Slugify lowercases the name, collapses whitespace runs to single hyphens
// and strips everything that is not a letter, digit or hyphen.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")

	var b strings.Builder
	for _, r := range slug {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
