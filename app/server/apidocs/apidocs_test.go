package apidocs

import (
	"context"
	"encoding/json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appconfig "hello-world-site/app/server/config"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSpecValid(t *testing.T) {
	for _, mode := range []string{appconfig.AuthModeToken, appconfig.AuthModeSession} {
		doc := Spec(mode)
		require.NoError(t, doc.Validate(context.Background()), mode)

		for _, p := range []string{"/api/health", "/api/config", "/api/log", "/api/admin/login", "/api/admin/logs", "/api/admin/profile"} {
			assert.NotNil(t, doc.Paths.Value(p), p)
		}
	}

	assert.Equal(t, "cookie", Spec(appconfig.AuthModeSession).Components.SecuritySchemes[securitySchemeName].Value.In)
	assert.Equal(t, "bearer", Spec(appconfig.AuthModeToken).Components.SecuritySchemes[securitySchemeName].Value.Scheme)
}

func TestDocMiddleware(t *testing.T) {
	specJson, err := Spec(appconfig.AuthModeToken).MarshalJSON()
	require.NoError(t, err)

	e := echo.New()
	e.Pre(Doc("/api/docs", specJson, WithTitle("Test API")))
	e.GET("/other", func(c echo.Context) error { return c.String(http.StatusOK, "other") })

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/api/docs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "<title>Test API</title>"))
	assert.True(t, strings.Contains(rec.Body.String(), "/api/docs/apispec.json"))

	rec = get("/api/docs/apispec.json")
	assert.Equal(t, http.StatusOK, rec.Code)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, "3.0.3", decoded["openapi"])

	rec = get("/other")
	assert.Equal(t, "other", rec.Body.String())
}
