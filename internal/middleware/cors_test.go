package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRequest(origins, origin, method string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(origins))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSDevAllowsAnyOrigin(t *testing.T) {
	w := corsRequest("*", "http://localhost:3000", http.MethodGet)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSEchoesListedOrigin(t *testing.T) {
	painel := "https://painel.cabradapeste.com"
	w := corsRequest(painel+",https://admin.cabradapeste.com", painel, http.MethodGet)
	assert.Equal(t, painel, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORSOmitsHeaderForUnknownOrigin(t *testing.T) {
	w := corsRequest("https://painel.cabradapeste.com", "https://outro.example", http.MethodGet)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	w := corsRequest("*", "http://localhost:3000", http.MethodOptions)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
