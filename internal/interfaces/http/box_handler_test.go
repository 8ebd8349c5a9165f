package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/uniformes/expedicao-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta las rutas de cajas con un handler sin casos de uso: las
// peticiones de estos tests deben rechazarse en la validación, antes de tocar
// el motor.
func buildTestApp() *fiber.App {
	app := fiber.New()
	h := apphttp.NewBoxHandler(nil, nil, nil)
	app.Post("/api/boxes", h.Create)
	app.Get("/api/boxes/:id", h.Detail)
	app.Post("/api/boxes/:id/adjust", h.Adjust)
	app.Get("/api/orders/:id/boxes", h.ListByOrder)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

// Crear sin header X-User-ID → 400 antes de llegar al motor.
func TestCreate_SinUsuario_Retorna400(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/boxes", `{"order_id":1}`, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

// Cuerpo no JSON → 400 INVALID_BODY.
func TestCreate_CuerpoInvalido_Retorna400(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/boxes", `no es json`,
		map[string]string{"X-User-ID": "7"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_BODY")
}

func TestAdjust_IDInvalido_Retorna400(t *testing.T) {
	app := buildTestApp()
	for _, path := range []string{"/api/boxes/abc/adjust", "/api/boxes/0/adjust", "/api/boxes/-3/adjust"} {
		resp := doJSON(t, app, http.MethodPost, path, `{"order_id":1}`, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
	}
}

func TestDetail_IDInvalido_Retorna400(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/boxes/xyz", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListByOrder_IDInvalido_Retorna400(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/orders/0/boxes", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
