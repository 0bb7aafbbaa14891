package loadbalancer

import "sync/atomic"

// Pool hands out upstream instances in round-robin order. The counter is
// atomic, so Pick never blocks.
type Pool struct {
	instances []string
	next      uint64
}

// NewPool creates a pool over the given instance base URLs
func NewPool(instances []string) *Pool {
	return &Pool{instances: instances}
}

// Pick returns the next instance, or an empty string for an empty pool
func (p *Pool) Pick() string {
	if len(p.instances) == 0 {
		return ""
	}
	n := atomic.AddUint64(&p.next, 1)
	return p.instances[(n-1)%uint64(len(p.instances))]
}

// Instances returns a copy of the pool's instance list
func (p *Pool) Instances() []string {
	out := make([]string, len(p.instances))
	copy(out, p.instances)
	return out
}

// Size returns the number of instances in the pool
func (p *Pool) Size() int {
	return len(p.instances)
}
