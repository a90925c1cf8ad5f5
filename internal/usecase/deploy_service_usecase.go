package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/repository"
)

type DeployServiceUsecase interface {
	Execute(ctx context.Context, serviceName, version string) (*entity.Service, error)
}

type deployServiceUsecaseImpl struct {
	serviceRepository repository.ServiceRepository
}

// Execute marks a service as deployed at version. Repeated deploys simply
// overwrite the pointer and append another event; no ordering check is
// made between the old and new version.
func (u *deployServiceUsecaseImpl) Execute(ctx context.Context, serviceName, version string) (*entity.Service, error) {
	version = strings.TrimSpace(version)
	if version == "" || len(version) > 50 {
		return nil, entity.ErrInvalid
	}
	return u.serviceRepository.Deploy(ctx, serviceName, version, time.Now().UTC())
}

func NewDeployServiceUsecase(injector *do.Injector) (DeployServiceUsecase, error) {
	return &deployServiceUsecaseImpl{
		serviceRepository: do.MustInvoke[repository.ServiceRepository](injector),
	}, nil
}
