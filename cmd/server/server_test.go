package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"kartibul/internal/config"
)

func testConfig(t *testing.T) *config.ServerConfig {
	t.Helper()

	cardsDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(cardsDir, "knight.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Server.Host = "localhost"
	cfg.Server.Port = "0"
	cfg.Server.CardsDir = cardsDir
	return cfg
}

func TestSetupServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := setupServer(ctx, testConfig(t))
	if handler == nil {
		t.Fatal("setupServer returned nil handler")
	}

	testCases := []struct {
		method       string
		path         string
		expectedCode int
	}{
		{"GET", "/health/live", http.StatusOK},
		{"GET", "/health/ready", http.StatusOK},
		{"GET", "/api/cards", http.StatusOK},
		{"GET", "/room/ZZZZ/qr", http.StatusNotFound},
		{"GET", "/nonexistent", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tc.expectedCode {
				t.Errorf("expected status %d, got %d", tc.expectedCode, w.Code)
			}
		})
	}
}

func TestSetupServerSecurityHeaders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := setupServer(ctx, testConfig(t))

	req := httptest.NewRequest("GET", "/health/live", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
}
