package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/foodgram/api-gateway/config"
)

func testConfig(instances ...string) *config.Config {
	return &config.Config{
		Port: "8000",
		Upstreams: map[string]config.Upstream{
			"recipe": {
				Name:       "recipe-service",
				Instances:  instances,
				HealthPath: "/health",
				Timeout:    5 * time.Second,
			},
		},
	}
}

func testApp(f *Forwarder, upstream string) *fiber.App {
	app := fiber.New()
	app.All("/api/recipes/*", func(c *fiber.Ctx) error {
		return f.Forward(c, upstream)
	})
	app.All("/api/recipes", func(c *fiber.Ctx) error {
		return f.Forward(c, upstream)
	})
	return app
}

func TestForwardRelaysRequestAndResponse(t *testing.T) {
	var seen *http.Request
	var seenBody []byte
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Clone(r.Context())
		seenBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))
	defer backend.Close()

	f := NewForwarder(testConfig(backend.URL))
	app := testApp(f, "recipe")

	req := httptest.NewRequest(http.MethodPost, "/api/recipes?limit=3", strings.NewReader(`{"name":"Soup"}`))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"id":1}`, string(body))

	require.NotNil(t, seen)
	assert.Equal(t, "/api/recipes", seen.URL.Path)
	assert.Equal(t, "limit=3", seen.URL.RawQuery)
	assert.Equal(t, "Bearer token", seen.Header.Get("Authorization"))
	assert.NotEmpty(t, seen.Header.Get("X-Forwarded-For"))
	assert.JSONEq(t, `{"name":"Soup"}`, string(seenBody))
}

func TestForwardAlternatesBetweenInstances(t *testing.T) {
	var hitsA, hitsB int
	a := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hitsA++
	}))
	defer a.Close()
	b := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hitsB++
	}))
	defer b.Close()

	f := NewForwarder(testConfig(a.URL, b.URL))
	app := testApp(f, "recipe")

	for i := 0; i < 4; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/recipes", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2, hitsA)
	assert.Equal(t, 2, hitsB)
	assert.Equal(t, 2, f.Pools()["recipe"].Size())
}

func TestForwardUnknownUpstream(t *testing.T) {
	f := NewForwarder(testConfig("http://localhost:1"))
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return f.Forward(c, "billing")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestForwardUnreachableInstance(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	f := NewForwarder(testConfig(backend.URL))
	app := testApp(f, "recipe")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/recipes", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "upstream unreachable", payload["error"])
}
