package auth_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	http_auth "github.com/humanbelnik/jukebox/internal/delivery/http/auth"
	"github.com/humanbelnik/jukebox/internal/model"
)

type RRBalancer struct {
	servers []string
	cur     atomic.Uint64
}

func (b *RRBalancer) NextServer() string {
	if len(b.servers) == 0 {
		return ""
	}

	n := b.cur.Add(1)
	return b.servers[(n-1)%uint64(len(b.servers))]
}

// HTTPAuthClient checks tokens against standalone auth instances, one
// server per request in round robin order.
type HTTPAuthClient struct {
	balancer   *RRBalancer
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*HTTPAuthClient)

func WithLogger(logger *slog.Logger) Option {
	return func(c *HTTPAuthClient) {
		c.logger = logger
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPAuthClient) {
		c.httpClient.Timeout = d
	}
}

// New takes a ";" separated list of base URLs, e.g.
// "http://auth-1:8080;http://auth-2:8080".
func New(serversList string, opts ...Option) *HTTPAuthClient {
	servers := make([]string, 0)
	for _, s := range strings.Split(serversList, ";") {
		if trimmed := strings.TrimRight(strings.TrimSpace(s), "/"); trimmed != "" {
			servers = append(servers, trimmed)
		}
	}

	c := &HTTPAuthClient{
		balancer: &RRBalancer{servers: servers},
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPAuthClient) IsValid(token string, want model.Role) (bool, error) {
	server := c.balancer.NextServer()
	if server == "" {
		return false, fmt.Errorf("no auth servers configured")
	}

	body, err := json.Marshal(http_auth.ValidateRequestDTO{Token: token, Role: string(want)})
	if err != nil {
		return false, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.httpClient.Post(server+"/api/v1/auth/validate", "application/json", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to validate token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("auth service refused validation",
			slog.String("server", server),
			slog.Int("status", resp.StatusCode),
		)
		return false, fmt.Errorf("auth service returned status: %d", resp.StatusCode)
	}

	var out http_auth.ValidateResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	return out.Valid, nil
}
