package usecase

import (
	"context"

	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/advisor"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/repository"
)

type NextSteps struct {
	Service *entity.Service
	Advice  advisor.Advice
}

type GetNextStepsUsecase interface {
	Execute(ctx context.Context, serviceName string) (*NextSteps, error)
}

type getNextStepsUsecaseImpl struct {
	serviceRepository repository.ServiceRepository
	advisor           *advisor.Advisor
}

func (u *getNextStepsUsecaseImpl) Execute(ctx context.Context, serviceName string) (*NextSteps, error) {
	svc, err := u.serviceRepository.GetByName(ctx, serviceName)
	if err != nil {
		return nil, err
	}
	return &NextSteps{Service: svc, Advice: u.advisor.Advise(svc)}, nil
}

func NewGetNextStepsUsecase(injector *do.Injector) (GetNextStepsUsecase, error) {
	return &getNextStepsUsecaseImpl{
		serviceRepository: do.MustInvoke[repository.ServiceRepository](injector),
		advisor:           do.MustInvoke[*advisor.Advisor](injector),
	}, nil
}
