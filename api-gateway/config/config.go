package config

import (
	"os"
	"strings"
	"time"
)

// Upstream describes one backend service the gateway fronts. Instances
// holds every base URL the load balancer may pick from.
type Upstream struct {
	Name       string
	Instances  []string
	HealthPath string
	Timeout    time.Duration
}

// Config is the gateway configuration, read from the environment once at
// startup.
type Config struct {
	Port      string
	Upstreams map[string]Upstream
}

// Load reads the gateway configuration. Multiple instances of a service
// are given as a comma-separated URL list.
func Load() *Config {
	return &Config{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Upstreams: map[string]Upstream{
			"user": {
				Name:       "user-service",
				Instances:  splitURLs(getEnv("USER_SERVICE_URLS", "http://localhost:8080")),
				HealthPath: "/health",
				Timeout:    30 * time.Second,
			},
			"recipe": {
				Name:       "recipe-service",
				Instances:  splitURLs(getEnv("RECIPE_SERVICE_URLS", "http://localhost:8081")),
				HealthPath: "/health",
				Timeout:    30 * time.Second,
			},
		},
	}
}

// UpstreamFor maps a request path to the upstream serving it. An empty
// string means the path is handled by the gateway itself.
func (c *Config) UpstreamFor(path string) string {
	switch {
	case strings.HasPrefix(path, "/auth"),
		strings.HasPrefix(path, "/api/users"),
		strings.HasPrefix(path, "/admin"):
		return "user"
	case strings.HasPrefix(path, "/api/recipes"),
		strings.HasPrefix(path, "/api/tags"),
		strings.HasPrefix(path, "/api/ingredients"):
		return "recipe"
	default:
		return ""
	}
}

func splitURLs(raw string) []string {
	parts := strings.Split(raw, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			urls = append(urls, strings.TrimSuffix(trimmed, "/"))
		}
	}
	return urls
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
