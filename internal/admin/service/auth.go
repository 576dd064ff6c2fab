package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"washq/pkg/config"
	apperrors "washq/pkg/errors"
)

const tokenIssuer = "washq"

// AuthService authenticates the single admin account and issues the
// bearer tokens the dashboard uses. There is no user store; the
// credential pair comes from configuration.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(token string) (string, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.InvalidInput("Username and password are required")
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password))
	if !usernameMatch || passwordErr != nil {
		s.cfg.Log.Warn("Admin login rejected", "username", username)
		return "", apperrors.Unauthorized("Invalid credentials")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AdminTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", apperrors.Internal("Failed to sign token", err)
	}

	s.cfg.Log.Info("Admin logged in", "username", username)
	return signed, nil
}

// VerifyToken returns the token subject when the signature and expiry
// check out. It satisfies the admin middleware's verifier contract.
func (s *authService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("invalid token: subject missing")
	}

	return claims.Subject, nil
}
