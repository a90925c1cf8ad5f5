package health

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zellohq/devportal/internal/entity"
)

func newSeeded(seed uint64) *Simulator {
	return NewSimulator(rand.New(rand.NewPCG(seed, seed)))
}

func TestStatusOfUnhealthyFraction(t *testing.T) {
	sim := newSeeded(42)
	svc := &entity.Service{Name: "auth-service"}

	const draws = 10000
	unhealthy := 0
	for range draws {
		if sim.StatusOf(svc) == entity.HealthStatusUnhealthy {
			unhealthy++
		}
	}

	// The exact per-call outcome is random; only the long-run fraction is
	// guaranteed. 0.30 +/- 0.03 is far beyond a 99.9% confidence interval
	// at 10k draws.
	fraction := float64(unhealthy) / draws
	assert.InDelta(t, UnhealthyProbability, fraction, 0.03)
}

func TestSnapshotDrawsOncePerService(t *testing.T) {
	sim := newSeeded(1)
	services := []*entity.Service{
		{Name: "a"}, {Name: "b"}, {Name: "c"},
	}

	statuses := sim.Snapshot(services)
	assert.Len(t, statuses, 3)
	for _, svc := range services {
		status, ok := statuses[svc.Name]
		assert.True(t, ok)
		assert.Contains(t, []entity.HealthStatus{entity.HealthStatusHealthy, entity.HealthStatusUnhealthy}, status)
	}
}

func TestSummarize(t *testing.T) {
	sim := newSeeded(7)
	v := "v1.0.0"
	services := []*entity.Service{
		{Name: "a", DeployedVersion: &v},
		{Name: "b"},
		{Name: "c"},
	}
	statuses := map[string]entity.HealthStatus{
		"a": entity.HealthStatusHealthy,
		"b": entity.HealthStatusUnhealthy,
		"c": entity.HealthStatusHealthy,
	}

	sum := sim.Summarize(services, statuses)
	assert.Equal(t, 3, sum.TotalServices)
	assert.Equal(t, 1, sum.DeployedServices)
	assert.Equal(t, 2, sum.UndeployedServices)
	assert.Equal(t, 2, sum.Healthy)
	assert.Equal(t, 1, sum.Unhealthy)
}
