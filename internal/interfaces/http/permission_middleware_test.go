package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/backoffice-api/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/backoffice-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "backoffice-test"
	testExpMin    = 60
)

// fakeChecker implementa el contrato de visibilidad del middleware en memoria.
// Si err está seteado, toda verificación falla (simula caída de la DB).
type fakeChecker struct {
	pages    map[string]bool // "role|page" → visible
	features map[string]bool // "role|page|feature" → habilitada
	err      error
}

func (f *fakeChecker) CanAccessPage(_ context.Context, role, page string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.pages[role+"|"+page], nil
}

func (f *fakeChecker) CanAccessFeature(_ context.Context, role, page, feature string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.features[role+"|"+page+"|"+feature], nil
}

// buildPageApp construye una app Fiber mínima con AuthMiddleware + RequirePage
// y un handler dummy que devuelve 200 si pasa los middlewares.
func buildPageApp(page string, checker *fakeChecker) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePage(page, checker),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePage
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El rol tiene la página visible → debe pasar (HTTP 200).
func TestRequirePage_RolConPaginaVisible_Accede(t *testing.T) {
	checker := &fakeChecker{pages: map[string]bool{"contabilidad|clients": true}}
	app := buildPageApp("clients", checker)

	resp := doRequest(t, app, tokenForRole(t, "contabilidad"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un rol con la página visible debe poder acceder")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, "contabilidad", body["role"], "el role debe venir del token")
}

// Caso 2: El rol NO tiene la página visible → HTTP 403 PAGE_FORBIDDEN.
func TestRequirePage_RolSinPagina_Retorna403(t *testing.T) {
	checker := &fakeChecker{pages: map[string]bool{}}
	app := buildPageApp("clients", checker)

	resp := doRequest(t, app, tokenForRole(t, "ventas"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un rol sin la página visible debe recibir 403")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PAGE_FORBIDDEN",
		"la respuesta de error debe incluir el código PAGE_FORBIDDEN")
}

// Caso 3: La consulta de permisos falla (DB caída) → HTTP 503, nunca 200.
func TestRequirePage_FalloDeInfra_Retorna503(t *testing.T) {
	checker := &fakeChecker{err: errors.New("connection refused")}
	app := buildPageApp("clients", checker)

	resp := doRequest(t, app, tokenForRole(t, "contabilidad"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode,
		"un fallo de infraestructura debe cerrar el acceso con 503")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PERMISSION_CHECK_FAILED")
}

// Caso 4: Sin header Authorization → HTTP 401 (corta el AuthMiddleware).
func TestRequirePage_SinAuthHeader_Retorna401(t *testing.T) {
	checker := &fakeChecker{pages: map[string]bool{"contabilidad|clients": true}}
	app := buildPageApp("clients", checker)

	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token inválido / malformado → HTTP 401.
func TestRequirePage_TokenInvalido_Retorna401(t *testing.T) {
	checker := &fakeChecker{pages: map[string]bool{"contabilidad|clients": true}}
	app := buildPageApp("clients", checker)

	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireFeature
// ──────────────────────────────────────────────────────────────────────────────

func buildFeatureApp(page, feature string, checker *fakeChecker) *fiber.App {
	app := fiber.New()
	app.Post("/action",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireFeature(page, feature, checker),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

// La funcionalidad está habilitada para el rol → HTTP 200.
func TestRequireFeature_Habilitada_Accede(t *testing.T) {
	checker := &fakeChecker{
		features: map[string]bool{"contabilidad|clients|reorder_agreements": true},
	}
	app := buildFeatureApp("clients", "reorder_agreements", checker)

	req := httptest.NewRequest(http.MethodPost, "/action", nil)
	req.Header.Set("Authorization", tokenForRole(t, "contabilidad"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// La página es visible pero la funcionalidad no está habilitada → HTTP 403.
func TestRequireFeature_NoHabilitada_Retorna403(t *testing.T) {
	checker := &fakeChecker{
		pages:    map[string]bool{"ventas|clients": true},
		features: map[string]bool{},
	}
	app := buildFeatureApp("clients", "reorder_agreements", checker)

	req := httptest.NewRequest(http.MethodPost, "/action", nil)
	req.Header.Set("Authorization", tokenForRole(t, "ventas"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FEATURE_FORBIDDEN",
		"la respuesta debe indicar el código FEATURE_FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "admin", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "contabilidad", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "contabilidad", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
