package jellyfin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marquee/internal/config"
)

// Service defines the Jellyfin operations used after an enrichment pass.
type Service interface {
	// RefreshGuide asks Jellyfin to re-read Live TV guide data.
	RefreshGuide(ctx context.Context) error
	// Enabled reports whether a refresh will actually reach a server.
	Enabled() bool
}

// HTTPDoer describes the HTTP client used by the Jellyfin service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewConfiguredService returns a Jellyfin service that triggers guide
// refreshes when the integration is enabled and credentials are available,
// and a no-op service otherwise.
func NewConfiguredService(cfg *config.Config) Service {
	if cfg == nil || !cfg.Jellyfin.Enabled {
		return noopService{}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.Jellyfin.URL), "/")
	apiKey := strings.TrimSpace(cfg.Jellyfin.APIKey)
	if baseURL == "" || apiKey == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.Jellyfin.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewHTTPService(baseURL, apiKey, &http.Client{Timeout: timeout})
}

// NewHTTPService constructs an HTTP-backed Jellyfin service.
func NewHTTPService(baseURL, apiKey string, client HTTPDoer) Service {
	return &httpService{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
	}
}

type httpService struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

func (s *httpService) Enabled() bool {
	return s != nil && s.client != nil && s.baseURL != "" && s.apiKey != ""
}

func (s *httpService) RefreshGuide(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	refreshURL := fmt.Sprintf("%s/LiveTv/Guide/Refresh", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, refreshURL, nil)
	if err != nil {
		return fmt.Errorf("build jellyfin refresh request: %w", err)
	}
	req.Header.Set("X-Emby-Token", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("refresh jellyfin guide: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("jellyfin guide refresh returned %d", resp.StatusCode)
	}
	return nil
}

type noopService struct{}

func (noopService) RefreshGuide(context.Context) error { return nil }
func (noopService) Enabled() bool                      { return false }
