package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"rental-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionTTL is how long an admin session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

// AuthService checks admin credentials and signs session tokens.
type AuthService struct {
	DB     *gorm.DB
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{DB: db, Secret: []byte(secret), TTL: SessionTTL}
}

// Authenticate returns the admin whose email and bcrypt password match.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(email, password string) (*models.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var admin models.AdminUser
	if err := s.DB.Where("LOWER(email) = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

// EnsureAdmin creates the admin with a hashed password unless the email
// already exists. It never overwrites an existing password.
func (s *AuthService) EnsureAdmin(email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.DB.Model(&models.AdminUser{}).Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.AdminUser{Name: name, Email: email, Password: string(hash)}
	if err := s.DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Printf("✅ Default admin seeded: %s", email)
	return nil
}

// IssueToken signs an HS256 token whose subject is the admin id.
func (s *AuthService) IssueToken(admin *models.AdminUser) (string, time.Time, error) {
	expires := time.Now().Add(s.TTL)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(admin.ID), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ParseToken verifies a session token and returns the admin id.
func (s *AuthService) ParseToken(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidCredentials
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidCredentials
	}
	return uint(id), nil
}

// AdminByID returns (nil, nil) when the admin no longer exists.
func (s *AuthService) AdminByID(id uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.DB.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find admin %d: %w", id, err)
	}
	return &admin, nil
}
