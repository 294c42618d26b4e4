package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/biovote/registry/internal/core/domain"
	"github.com/biovote/registry/internal/core/ports"
)

const adminTokenTTL = 8 * time.Hour

type authService struct {
	adminUsername string
	adminPassword string
	jwtSecret     []byte
}

func NewAuthService(adminUsername, adminPassword string, jwtSecret []byte) ports.AuthService {
	return &authService{
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
	}
}

func (s *authService) Login(_ context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword))
	if userOK&passOK != 1 {
		return "", domain.ErrUnauthorized
	}

	claims := jwt.MapClaims{
		"sub":  username,
		"role": "admin",
		"exp":  time.Now().Add(adminTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

func (s *authService) Verify(credential string) error {
	if credential == "" {
		return domain.ErrUnauthorized
	}

	token, err := jwt.Parse(credential, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		return domain.ErrUnauthorized
	}
	return nil
}
