package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickCyclesThroughInstances(t *testing.T) {
	pool := NewPool([]string{"http://a:8080", "http://b:8080", "http://c:8080"})

	var picked []string
	for i := 0; i < 6; i++ {
		picked = append(picked, pool.Pick())
	}

	assert.Equal(t, []string{
		"http://a:8080", "http://b:8080", "http://c:8080",
		"http://a:8080", "http://b:8080", "http://c:8080",
	}, picked)
}

func TestEmptyPool(t *testing.T) {
	pool := NewPool(nil)
	assert.Equal(t, "", pool.Pick())
	assert.Equal(t, 0, pool.Size())
}

func TestInstancesReturnsCopy(t *testing.T) {
	pool := NewPool([]string{"http://a:8080"})

	got := pool.Instances()
	got[0] = "mutated"

	assert.Equal(t, []string{"http://a:8080"}, pool.Instances())
	assert.Equal(t, 1, pool.Size())
}
