package usecase

import (
	"context"
	"strings"

	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/repository"
	"github.com/zellohq/devportal/internal/utils"
)

type RegisterServiceUsecase interface {
	Execute(ctx context.Context, svc *entity.Service) (*entity.Service, error)
}

type registerServiceUsecaseImpl struct {
	serviceRepository repository.ServiceRepository
}

// Execute validates and persists a new service. The created event is
// written in the same transaction as the service row; a duplicate name
// surfaces as entity.ErrConflict from the store's unique index.
func (u *registerServiceUsecaseImpl) Execute(ctx context.Context, svc *entity.Service) (*entity.Service, error) {
	svc.Name = strings.TrimSpace(svc.Name)
	svc.Owner = strings.TrimSpace(svc.Owner)
	svc.Language = utils.NormalizeLanguage(svc.Language)
	svc.Repo = strings.TrimSpace(svc.Repo)
	svc.Description = strings.TrimSpace(svc.Description)
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	event := &entity.Event{
		ServiceName: svc.Name,
		EventType:   entity.EventTypeCreated,
		EventData:   map[string]any{"name": svc.Name, "owner": svc.Owner},
	}
	return u.serviceRepository.Create(ctx, svc, event)
}

func NewRegisterServiceUsecase(injector *do.Injector) (RegisterServiceUsecase, error) {
	return &registerServiceUsecaseImpl{
		serviceRepository: do.MustInvoke[repository.ServiceRepository](injector),
	}, nil
}
