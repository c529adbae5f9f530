package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/parts-tracker/internal/application/auth"
	"github.com/tu-usuario/parts-tracker/internal/application/dto"
	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/infrastructure/memory"
	pkgjwt "github.com/tu-usuario/parts-tracker/pkg/jwt"
)

func newAuthUC() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "parts-tracker-test",
	})
}

// Registro + login felices: el token resultante lleva el ID y rol del usuario.
func TestAuth_RegistroYLogin(t *testing.T) {
	uc := newAuthUC()

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@taller.com",
		Password: "secreto123",
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role, "sin rol explícito el registro asigna user")

	out, err := uc.Login(dto.LoginRequest{Email: "ana@taller.com", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, user.ID, out.User.ID)

	userID, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleUser, role)
}

func TestAuth_EmailDuplicado(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@taller.com", Password: "x12345", Name: "Ana"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@taller.com", Password: "y12345", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestAuth_PasswordIncorrecto(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@taller.com", Password: "secreto123", Name: "Ana"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@taller.com", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuth_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@taller.com", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
