package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/parts-tracker/internal/application/usecase"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/parts-tracker/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newUsersApp monta las rutas de usuarios con un middleware que inyecta los
// locals como admin autenticado (aquí se prueba el handler, no el JWT).
func newUsersApp(t *testing.T) (*fiber.App, *memory.UserStore) {
	t.Helper()
	users := memory.NewStore().Users()
	h := apphttp.NewUserHandler(usecase.NewUserUseCase(users))

	app := fiber.New()
	grp := app.Group("/api/users", func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, "00000000-0000-0000-0000-0000000000ad")
		c.Locals(apphttp.LocalRole, entity.RoleAdmin)
		return c.Next()
	})
	grp.Get("/:id", h.GetByID)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	return app, users
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuario inexistente → 404, nunca 500
// ──────────────────────────────────────────────────────────────────────────────

func TestUserHandler_DeleteInexistente404(t *testing.T) {
	app, _ := newUsersApp(t)

	resp := doJSON(t, app, http.MethodDelete, "/api/users/11111111-2222-3333-4444-555555555555", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"borrar un usuario inexistente responde 404, no 500")
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestUserHandler_UpdateInexistente404(t *testing.T) {
	app, _ := newUsersApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/users/11111111-2222-3333-4444-555555555555", map[string]any{
		"name": "Nadie",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestUserHandler_DeleteExistente(t *testing.T) {
	app, users := newUsersApp(t)
	u := &entity.User{Email: "ana@taller.com", Name: "Ana", Role: entity.RoleUser, PasswordHash: "x"}
	require.NoError(t, users.Create(u))

	resp := doJSON(t, app, http.MethodDelete, "/api/users/"+u.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	got, err := users.GetByID(u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
