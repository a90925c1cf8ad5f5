package usecase

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/require"
	"github.com/zellohq/devportal/internal/advisor"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/health"
	"github.com/zellohq/devportal/internal/repository"
)

func newTestInjector(t *testing.T) *do.Injector {
	t.Helper()
	db, err := repository.NewSQLiteDB(":memory:")
	require.NoError(t, err)

	injector := do.New()
	do.ProvideValue[repository.ServiceRepository](injector, repository.NewServiceRepository(db))
	do.ProvideValue[repository.EventRepository](injector, repository.NewEventRepository(db))
	do.ProvideValue(injector, health.NewSimulator(rand.New(rand.NewPCG(1, 2))))
	do.ProvideValue(injector, advisor.NewAdvisor())
	do.Provide(injector, NewRegisterServiceUsecase)
	do.Provide(injector, NewListServicesUsecase)
	do.Provide(injector, NewDeployServiceUsecase)
	do.Provide(injector, NewGetNextStepsUsecase)
	do.Provide(injector, NewListServiceEventsUsecase)
	do.Provide(injector, NewStatusOverviewUsecase)
	do.Provide(injector, NewAnalyticsOverviewUsecase)
	do.Provide(injector, NewListFilterOptionsUsecase)
	return injector
}

func register(t *testing.T, injector *do.Injector, name, owner, language string) *entity.Service {
	t.Helper()
	uc := do.MustInvoke[RegisterServiceUsecase](injector)
	svc, err := uc.Execute(context.Background(), &entity.Service{
		Name:     name,
		Owner:    owner,
		Language: language,
		Repo:     "https://github.com/example/" + name,
	})
	require.NoError(t, err)
	return svc
}
