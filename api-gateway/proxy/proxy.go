package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/foodgram/api-gateway/config"
	"github.com/tair/foodgram/api-gateway/loadbalancer"
	"github.com/tair/foodgram/pkg/logger"
)

// hop-by-hop headers are stripped before forwarding either direction
var hopHeaders = map[string]struct{}{
	"connection":          {},
	"keep-alive":          {},
	"proxy-authenticate":  {},
	"proxy-authorization": {},
	"te":                  {},
	"trailer":             {},
	"transfer-encoding":   {},
	"upgrade":             {},
}

// Forwarder relays requests to upstream services, one round-robin pool
// per upstream.
type Forwarder struct {
	pools  map[string]*loadbalancer.Pool
	client *http.Client
}

// NewForwarder builds a forwarder from the configured upstreams
func NewForwarder(cfg *config.Config) *Forwarder {
	pools := make(map[string]*loadbalancer.Pool, len(cfg.Upstreams))
	timeout := 30 * time.Second
	for name, up := range cfg.Upstreams {
		pools[name] = loadbalancer.NewPool(up.Instances)
		if up.Timeout > 0 {
			timeout = up.Timeout
		}
	}
	return &Forwarder{
		pools:  pools,
		client: &http.Client{Timeout: timeout},
	}
}

// Forward relays the request to an instance of the named upstream and
// writes the upstream response back to the client.
func (f *Forwarder) Forward(c *fiber.Ctx, upstream string) error {
	pool, ok := f.pools[upstream]
	if !ok {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "unknown upstream: " + upstream,
		})
	}

	instance := pool.Pick()
	if instance == "" {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "no instances available for " + upstream,
		})
	}

	req, err := f.buildRequest(c, instance)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to build upstream request",
		})
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Error(c.UserContext()).
			Err(err).
			Str("upstream", upstream).
			Str("instance", instance).
			Msg("Upstream request failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    "upstream unreachable",
			"upstream": upstream,
		})
	}
	defer resp.Body.Close()

	return writeResponse(c, resp)
}

// Pools exposes the per-upstream pools for introspection
func (f *Forwarder) Pools() map[string]*loadbalancer.Pool {
	return f.pools
}

func (f *Forwarder) buildRequest(c *fiber.Ctx, instance string) (*http.Request, error) {
	target := instance + string(c.Request().URI().Path())
	if qs := string(c.Request().URI().QueryString()); qs != "" {
		target += "?" + qs
	}

	req, err := http.NewRequestWithContext(c.UserContext(), c.Method(), target, bytes.NewReader(c.Body()))
	if err != nil {
		return nil, err
	}

	c.Request().Header.VisitAll(func(key, value []byte) {
		name := string(key)
		lower := strings.ToLower(name)
		if lower == "host" {
			return
		}
		if _, hop := hopHeaders[lower]; hop {
			return
		}
		req.Header.Add(name, string(value))
	})

	req.Header.Set("X-Forwarded-For", c.IP())
	req.Header.Set("X-Forwarded-Proto", c.Protocol())
	req.Header.Set("X-Forwarded-Host", c.Hostname())
	return req, nil
}

func writeResponse(c *fiber.Ctx, resp *http.Response) error {
	for key, values := range resp.Header {
		lower := strings.ToLower(key)
		if lower == "content-length" {
			continue
		}
		if _, hop := hopHeaders[lower]; hop {
			continue
		}
		for _, value := range values {
			c.Set(key, value)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to read upstream response",
		})
	}

	c.Status(resp.StatusCode)
	return c.Send(body)
}
