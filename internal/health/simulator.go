// Package health simulates service liveness. Statuses are drawn fresh on
// every request and never persisted; the only guarantee is the long-run
// unhealthy fraction.
package health

import (
	"math/rand/v2"
	"sync"

	"github.com/zellohq/devportal/internal/entity"
)

// UnhealthyProbability is the chance a single draw comes back unhealthy.
const UnhealthyProbability = 0.30

type Summary struct {
	TotalServices      int `json:"total_services"`
	DeployedServices   int `json:"deployed_services"`
	UndeployedServices int `json:"undeployed_services"`
	Healthy            int `json:"healthy"`
	Unhealthy          int `json:"unhealthy"`
}

// Simulator draws randomized health statuses. The random source is
// injected so tests can seed it deterministically.
type Simulator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulator(rnd *rand.Rand) *Simulator {
	return &Simulator{rnd: rnd}
}

// NewDefaultSimulator seeds the simulator from the auto-seeded global
// source.
func NewDefaultSimulator() *Simulator {
	return NewSimulator(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// StatusOf performs one independent draw. Consecutive calls for the same
// service may disagree.
func (s *Simulator) StatusOf(_ *entity.Service) entity.HealthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rnd.Float64() < UnhealthyProbability {
		return entity.HealthStatusUnhealthy
	}
	return entity.HealthStatusHealthy
}

// Snapshot draws once per service so a single response stays coherent:
// the same draw serves filtering, listing and summary.
func (s *Simulator) Snapshot(services []*entity.Service) map[string]entity.HealthStatus {
	statuses := make(map[string]entity.HealthStatus, len(services))
	for _, svc := range services {
		statuses[svc.Name] = s.StatusOf(svc)
	}
	return statuses
}

// Summarize aggregates a snapshot into the overview counters.
func (s *Simulator) Summarize(services []*entity.Service, statuses map[string]entity.HealthStatus) Summary {
	sum := Summary{TotalServices: len(services)}
	for _, svc := range services {
		if svc.Deployed() {
			sum.DeployedServices++
		}
		if statuses[svc.Name] == entity.HealthStatusHealthy {
			sum.Healthy++
		} else {
			sum.Unhealthy++
		}
	}
	sum.UndeployedServices = sum.TotalServices - sum.DeployedServices
	return sum
}
