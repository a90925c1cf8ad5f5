package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/repository"
)

const (
	defaultEventsPerPage = 20
	maxEventsPerPage     = 50
)

type ListServiceEventsInput struct {
	ServiceName string
	Page        int
	PerPage     int
}

type ListServiceEventsOutput struct {
	Events  []*entity.Event
	Total   int
	Page    int
	PerPage int
	Pages   int
}

type ListServiceEventsUsecase interface {
	Execute(ctx context.Context, in ListServiceEventsInput) (*ListServiceEventsOutput, error)
}

type listServiceEventsUsecaseImpl struct {
	serviceRepository repository.ServiceRepository
	eventRepository   repository.EventRepository
}

// Execute returns the audit trail for a service, newest event first.
func (u *listServiceEventsUsecaseImpl) Execute(ctx context.Context, in ListServiceEventsInput) (*ListServiceEventsOutput, error) {
	if _, err := u.serviceRepository.GetByName(ctx, in.ServiceName); err != nil {
		return nil, err
	}

	page := max(1, in.Page)
	perPage := in.PerPage
	if perPage < 1 {
		perPage = defaultEventsPerPage
	}
	perPage = min(perPage, maxEventsPerPage)

	events, total, err := u.eventRepository.ListByService(ctx, in.ServiceName, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	return &ListServiceEventsOutput{
		Events:  events,
		Total:   int(total),
		Page:    page,
		PerPage: perPage,
		Pages:   (int(total) + perPage - 1) / perPage,
	}, nil
}

func NewListServiceEventsUsecase(injector *do.Injector) (ListServiceEventsUsecase, error) {
	return &listServiceEventsUsecaseImpl{
		serviceRepository: do.MustInvoke[repository.ServiceRepository](injector),
		eventRepository:   do.MustInvoke[repository.EventRepository](injector),
	}, nil
}
