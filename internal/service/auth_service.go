package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
)

type authUnitSource interface {
	GetUnit(ctx context.Context, id string) (*models.Unit, error)
}

// AuthConfig defines configuration for the login flow.
type AuthConfig struct {
	Secret              string
	TokenExpiry         time.Duration
	Issuer              string
	AdminPassword       string
	DefaultUnitPassword string
}

// AuthService authenticates the admin account and unit accounts and issues
// session tokens. Passwords are stored and compared in cleartext; this
// mirrors the deployed credential model and is a known property of the
// system, not an oversight to patch here.
type AuthService struct {
	units     authUnitSource
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(units authUnitSource, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{units: units, validator: validate, logger: logger, config: config}
}

// Login checks the password for the requested target ("admin" or a unit id)
// and returns a signed token on success.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	if req.Target == models.AdminTarget {
		if !plaintextEqual(req.Password, s.config.AdminPassword) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid password")
		}
		token, err := s.issueToken(models.AdminTarget, models.RoleAdmin, "")
		if err != nil {
			return nil, err
		}
		return &models.LoginResponse{
			Token:     token,
			ExpiresIn: int64(s.config.TokenExpiry.Seconds()),
			Role:      models.RoleAdmin,
		}, nil
	}

	unit, err := s.units.GetUnit(ctx, req.Target)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "unknown unit")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch unit")
	}

	expected := unit.Password
	if expected == "" {
		expected = s.config.DefaultUnitPassword
	}
	if !plaintextEqual(req.Password, expected) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid password")
	}

	token, err := s.issueToken(unit.Username, models.RoleUser, unit.ID)
	if err != nil {
		return nil, err
	}
	sanitized := *unit
	sanitized.Password = ""
	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.config.TokenExpiry.Seconds()),
		Role:      models.RoleUser,
		UnitID:    unit.ID,
		Unit:      &sanitized,
	}, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) issueToken(username string, role models.UserRole, unitID string) (string, error) {
	now := time.Now().UTC()
	claims := models.JWTClaims{
		Username: username,
		Role:     role,
		UnitID:   unitID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return signed, nil
}

func plaintextEqual(supplied, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(expected)) == 1
}
