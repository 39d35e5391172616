package usecase

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"villagehub-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrNotConfigured   = errors.New("admin password not configured")
)

// AdminUsecase gates the admin panel. This is a UI convenience, not an
// authorization boundary: mutating endpoints are not protected by it.
type AdminUsecase interface {
	Login(password string) (string, error)
	ValidateToken(token string) error
}

type adminUsecase struct {
	config *config.Config
}

func NewAdminUsecase(cfg *config.Config) AdminUsecase {
	return &adminUsecase{config: cfg}
}

// Login checks the entered password against ADMIN_PASSWORD and returns a
// session token. The configured value may be a bcrypt hash or plain text;
// plain text is compared in constant time.
func (u *adminUsecase) Login(password string) (string, error) {
	configured := u.config.AdminPassword
	if configured == "" {
		return "", ErrNotConfigured
	}

	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") {
		if err := bcrypt.CompareHashAndPassword([]byte(configured), []byte(password)); err != nil {
			return "", ErrInvalidPassword
		}
	} else if subtle.ConstantTimeCompare([]byte(configured), []byte(password)) != 1 {
		return "", ErrInvalidPassword
	}

	claims := jwt.MapClaims{
		"admin": true,
		"exp":   time.Now().Add(u.config.AdminSessionExpiry).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

// ValidateToken verifies an admin session token (used for session restore).
func (u *adminUsecase) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if isAdmin, ok := claims["admin"].(bool); !ok || !isAdmin {
		return ErrInvalidToken
	}
	return nil
}
