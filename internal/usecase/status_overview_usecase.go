package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/health"
	"github.com/zellohq/devportal/internal/repository"
)

const recentDeploymentsLimit = 5

type StatusOverview struct {
	Summary           health.Summary
	Services          []*entity.Service
	RecentDeployments []*entity.Service
}

type StatusOverviewUsecase interface {
	Execute(ctx context.Context) (*StatusOverview, error)
}

type statusOverviewUsecaseImpl struct {
	serviceRepository repository.ServiceRepository
	simulator         *health.Simulator
}

// Execute draws one status per service and reuses that draw for both the
// per-service listing and the aggregate summary.
func (u *statusOverviewUsecaseImpl) Execute(ctx context.Context) (*StatusOverview, error) {
	services, err := u.serviceRepository.ListFiltered(ctx, repository.ServiceFilter{})
	if err != nil {
		return nil, err
	}
	statuses := u.simulator.Snapshot(services)
	for _, svc := range services {
		svc.Status = statuses[svc.Name]
	}
	recent, err := u.serviceRepository.RecentDeployments(ctx, recentDeploymentsLimit)
	if err != nil {
		return nil, err
	}
	return &StatusOverview{
		Summary:           u.simulator.Summarize(services, statuses),
		Services:          services,
		RecentDeployments: recent,
	}, nil
}

func NewStatusOverviewUsecase(injector *do.Injector) (StatusOverviewUsecase, error) {
	return &statusOverviewUsecaseImpl{
		serviceRepository: do.MustInvoke[repository.ServiceRepository](injector),
		simulator:         do.MustInvoke[*health.Simulator](injector),
	}, nil
}
