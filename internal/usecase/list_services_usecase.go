package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/health"
	"github.com/zellohq/devportal/internal/repository"
)

const (
	DefaultPerPage = 50
	MaxPerPage     = 100
)

type ListServicesInput struct {
	Owner    string
	Language string
	Status   string
	Search   string
	Page     int
	PerPage  int
}

type ListServicesOutput struct {
	Services []*entity.Service
	Total    int
	Page     int
	PerPage  int
	Pages    int
}

type ListServicesUsecase interface {
	Execute(ctx context.Context, in ListServicesInput) (*ListServicesOutput, error)
}

type listServicesUsecaseImpl struct {
	serviceRepository repository.ServiceRepository
	simulator         *health.Simulator
}

// Execute lists services with filtering and pagination. Health statuses
// are drawn once per service per call and the same draw is used both for
// the status filter and for the returned listing, so one response never
// reports contradictory statuses. Because the status filter depends on
// fresh draws, it is applied before pagination: total always equals the
// number of services the filter admitted in this call.
func (u *listServicesUsecaseImpl) Execute(ctx context.Context, in ListServicesInput) (*ListServicesOutput, error) {
	page := max(1, in.Page)
	perPage := in.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	perPage = min(perPage, MaxPerPage)

	services, err := u.serviceRepository.ListFiltered(ctx, repository.ServiceFilter{
		Owner:    in.Owner,
		Language: in.Language,
		Search:   in.Search,
	})
	if err != nil {
		return nil, err
	}

	statuses := u.simulator.Snapshot(services)
	filtered := make([]*entity.Service, 0, len(services))
	for _, svc := range services {
		svc.Status = statuses[svc.Name]
		if in.Status != "" && string(svc.Status) != in.Status {
			continue
		}
		filtered = append(filtered, svc)
	}

	total := len(filtered)
	pages := (total + perPage - 1) / perPage
	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return &ListServicesOutput{
		Services: filtered[start:end],
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		Pages:    pages,
	}, nil
}

func NewListServicesUsecase(injector *do.Injector) (ListServicesUsecase, error) {
	return &listServicesUsecaseImpl{
		serviceRepository: do.MustInvoke[repository.ServiceRepository](injector),
		simulator:         do.MustInvoke[*health.Simulator](injector),
	}, nil
}
