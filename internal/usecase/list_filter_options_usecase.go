package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/repository"
)

type FilterOptions struct {
	Owners    []string `json:"owners"`
	Languages []string `json:"languages"`
}

type ListFilterOptionsUsecase interface {
	Execute(ctx context.Context) (*FilterOptions, error)
}

type listFilterOptionsUsecaseImpl struct {
	serviceRepository repository.ServiceRepository
}

// Execute returns the distinct owner and language values currently
// present, sorted, for populating filter dropdowns.
func (u *listFilterOptionsUsecaseImpl) Execute(ctx context.Context) (*FilterOptions, error) {
	owners, err := u.serviceRepository.DistinctOwners(ctx)
	if err != nil {
		return nil, err
	}
	languages, err := u.serviceRepository.DistinctLanguages(ctx)
	if err != nil {
		return nil, err
	}
	return &FilterOptions{Owners: owners, Languages: languages}, nil
}

func NewListFilterOptionsUsecase(injector *do.Injector) (ListFilterOptionsUsecase, error) {
	return &listFilterOptionsUsecaseImpl{
		serviceRepository: do.MustInvoke[repository.ServiceRepository](injector),
	}, nil
}
