package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MeuBolso/internal/contracts"
	"MeuBolso/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllow(t *testing.T) {
	t.Parallel()

	rl := middleware.NewRateLimiter(2, time.Minute)

	if !rl.Allow("user-a") {
		t.Fatal("primeira requisição deveria passar")
	}
	if !rl.Allow("user-a") {
		t.Fatal("segunda requisição deveria passar")
	}
	if rl.Allow("user-a") {
		t.Fatal("terceira requisição deveria ser bloqueada")
	}
	if !rl.Allow("user-b") {
		t.Fatal("chave diferente não deveria ser afetada pelo limite de outra")
	}
}

func TestRateLimitByUserEnvelope(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "01HXYZUSER0000000000000000")
	})
	router.Use(middleware.RateLimitByUser(middleware.NewRateLimiter(1, time.Minute)))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, contracts.Response{Status: "success"})
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("primeira requisição: esperava 200, veio %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("esperava 429 acima do limite, veio %d", second.Code)
	}

	var body contracts.ErrorResponse
	if err := json.Unmarshal(second.Body.Bytes(), &body); err != nil {
		t.Fatalf("resposta 429 não é JSON válido: %v", err)
	}
	if body.Status != "error" {
		t.Fatalf("esperava status 'error' no envelope, veio %q", body.Status)
	}
	if body.Message == "" {
		t.Fatal("esperava mensagem no envelope de erro")
	}
}
