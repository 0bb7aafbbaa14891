package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/tair/foodgram/api-gateway/config"
)

// InstanceStatus is one probe result for a single upstream instance.
type InstanceStatus struct {
	URL       string        `json:"url"`
	Healthy   bool          `json:"healthy"`
	Latency   int64         `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}

// UpstreamStatus aggregates the probe results of one upstream service.
type UpstreamStatus struct {
	Name      string           `json:"name"`
	Healthy   bool             `json:"healthy"`
	Instances []InstanceStatus `json:"instances"`
}

// Report is the gateway-wide health snapshot. Status is "healthy" when
// every upstream answers, "degraded" when some do, "unhealthy" when none
// do.
type Report struct {
	Status    string                    `json:"status"`
	Uptime    string                    `json:"uptime"`
	Timestamp time.Time                 `json:"timestamp"`
	Upstreams map[string]UpstreamStatus `json:"upstreams"`
}

// Monitor probes every configured instance of every upstream.
type Monitor struct {
	upstreams map[string]config.Upstream
	client    *http.Client
	started   time.Time
}

func NewMonitor(cfg *config.Config) *Monitor {
	return &Monitor{
		upstreams: cfg.Upstreams,
		client:    &http.Client{Timeout: 5 * time.Second},
		started:   time.Now(),
	}
}

// Check probes all instances concurrently and assembles a Report.
func (m *Monitor) Check(ctx context.Context) Report {
	report := Report{
		Timestamp: time.Now(),
		Uptime:    time.Since(m.started).Round(time.Second).String(),
		Upstreams: make(map[string]UpstreamStatus, len(m.upstreams)),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, upstream := range m.upstreams {
		wg.Add(1)
		go func(name string, upstream config.Upstream) {
			defer wg.Done()
			status := m.checkUpstream(ctx, name, upstream)
			mu.Lock()
			report.Upstreams[name] = status
			mu.Unlock()
		}(name, upstream)
	}
	wg.Wait()

	healthy := 0
	for _, status := range report.Upstreams {
		if status.Healthy {
			healthy++
		}
	}
	switch {
	case healthy == len(report.Upstreams):
		report.Status = "healthy"
	case healthy > 0:
		report.Status = "degraded"
	default:
		report.Status = "unhealthy"
	}
	return report
}

// Ready reports whether every upstream has at least one healthy instance.
func (m *Monitor) Ready(ctx context.Context) bool {
	report := m.Check(ctx)
	return report.Status == "healthy"
}

func (m *Monitor) Uptime() time.Duration {
	return time.Since(m.started)
}

// An upstream counts as healthy while at least one instance answers.
func (m *Monitor) checkUpstream(ctx context.Context, name string, upstream config.Upstream) UpstreamStatus {
	status := UpstreamStatus{
		Name:      name,
		Instances: make([]InstanceStatus, len(upstream.Instances)),
	}

	var wg sync.WaitGroup
	for i, instance := range upstream.Instances {
		wg.Add(1)
		go func(i int, instance string) {
			defer wg.Done()
			status.Instances[i] = m.probe(ctx, instance, upstream.HealthPath)
		}(i, instance)
	}
	wg.Wait()

	for _, inst := range status.Instances {
		if inst.Healthy {
			status.Healthy = true
			break
		}
	}
	return status
}

func (m *Monitor) probe(ctx context.Context, instance, healthPath string) InstanceStatus {
	status := InstanceStatus{URL: instance, CheckedAt: time.Now()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, instance+healthPath, nil)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	start := time.Now()
	resp, err := m.client.Do(req)
	status.Latency = time.Since(start).Milliseconds()
	if err != nil {
		status.Error = err.Error()
		return status
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		status.Error = resp.Status
		return status
	}
	status.Healthy = true
	return status
}
