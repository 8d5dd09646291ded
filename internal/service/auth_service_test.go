package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
)

type fakeUnitSource struct {
	units map[string]models.Unit
}

func (f *fakeUnitSource) GetUnit(_ context.Context, id string) (*models.Unit, error) {
	u, ok := f.units[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &u, nil
}

func newAuthService(units map[string]models.Unit) *AuthService {
	return NewAuthService(&fakeUnitSource{units: units}, nil, nil, AuthConfig{
		Secret:              "test-secret",
		TokenExpiry:         time.Hour,
		Issuer:              "progress-api",
		AdminPassword:       "admin",
		DefaultUnitPassword: "123",
	})
}

func TestAuthLoginAdmin(t *testing.T) {
	svc := newAuthService(nil)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Target: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.Empty(t, resp.UnitID)
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthLoginAdminWrongPassword(t *testing.T) {
	svc := newAuthService(nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Target: "admin", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginUnit(t *testing.T) {
	svc := newAuthService(map[string]models.Unit{
		"u1": {ID: "u1", Name: "กนผ.สนผพ.กพ.ทหาร", Username: "planning", Password: "secret"},
	})

	resp, err := svc.Login(context.Background(), models.LoginRequest{Target: "u1", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.Role)
	assert.Equal(t, "u1", resp.UnitID)
	require.NotNil(t, resp.Unit)
	assert.Empty(t, resp.Unit.Password, "credential never echoed back")

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UnitID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestAuthLoginUnitDefaultPassword(t *testing.T) {
	svc := newAuthService(map[string]models.Unit{
		"u1": {ID: "u1", Username: "planning"},
	})

	_, err := svc.Login(context.Background(), models.LoginRequest{Target: "u1", Password: "123"})
	assert.NoError(t, err, "unit without a stored password accepts the configured default")

	_, err = svc.Login(context.Background(), models.LoginRequest{Target: "u1", Password: "124"})
	assert.Error(t, err)
}

func TestAuthLoginUnknownUnit(t *testing.T) {
	svc := newAuthService(nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Target: "ghost", Password: "123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginValidation(t *testing.T) {
	svc := newAuthService(nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Target: "admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(nil)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := newAuthService(nil)
	other.config.Secret = "different"
	resp, err := other.Login(context.Background(), models.LoginRequest{Target: "admin", Password: "admin"})
	require.NoError(t, err)
	_, err = svc.ValidateToken(resp.Token)
	assert.Error(t, err, "token signed with another secret is rejected")
}
