package jellyfin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"marquee/internal/config"
	"marquee/internal/services/jellyfin"
)

func TestRefreshGuidePostsToken(t *testing.T) {
	var gotMethod, gotPath, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Emby-Token")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	service := jellyfin.NewHTTPService(server.URL+"/", "secret", server.Client())
	if !service.Enabled() {
		t.Fatal("service with credentials should be enabled")
	}
	if err := service.RefreshGuide(context.Background()); err != nil {
		t.Fatalf("RefreshGuide returned error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotPath != "/LiveTv/Guide/Refresh" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotToken != "secret" {
		t.Fatalf("unexpected token %q", gotToken)
	}
}

func TestRefreshGuideErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	service := jellyfin.NewHTTPService(server.URL, "bad", server.Client())
	if err := service.RefreshGuide(context.Background()); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestNewConfiguredServiceDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Jellyfin.Enabled = false

	service := jellyfin.NewConfiguredService(&cfg)
	if service.Enabled() {
		t.Fatal("disabled config should yield noop service")
	}
	if err := service.RefreshGuide(context.Background()); err != nil {
		t.Fatalf("noop refresh should not error: %v", err)
	}
}

func TestNewConfiguredServiceMissingCredentials(t *testing.T) {
	cfg := config.Default()
	cfg.Jellyfin.Enabled = true
	cfg.Jellyfin.URL = "http://127.0.0.1:8096"
	cfg.Jellyfin.APIKey = ""

	if jellyfin.NewConfiguredService(&cfg).Enabled() {
		t.Fatal("missing api key should yield noop service")
	}
}
