package usecase

import (
	"context"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/repository"
)

func TestRegisterNormalizesFields(t *testing.T) {
	injector := newTestInjector(t)
	uc := do.MustInvoke[RegisterServiceUsecase](injector)

	svc, err := uc.Execute(context.Background(), &entity.Service{
		Name:     "  auth-service  ",
		Owner:    " identity-team ",
		Language: " Python ",
		Repo:     " https://github.com/example/auth-service ",
	})
	require.NoError(t, err)
	assert.Equal(t, "auth-service", svc.Name)
	assert.Equal(t, "identity-team", svc.Owner)
	assert.Equal(t, "python", svc.Language)
	assert.Nil(t, svc.DeployedVersion)
}

func TestRegisterValidation(t *testing.T) {
	injector := newTestInjector(t)
	uc := do.MustInvoke[RegisterServiceUsecase](injector)
	ctx := context.Background()

	tests := []struct {
		name string
		svc  entity.Service
	}{
		{"missing name", entity.Service{Owner: "o", Language: "go", Repo: "r"}},
		{"missing owner", entity.Service{Name: "n", Language: "go", Repo: "r"}},
		{"missing language", entity.Service{Name: "n", Owner: "o", Repo: "r"}},
		{"missing repo", entity.Service{Name: "n", Owner: "o", Language: "go"}},
		{"blank name", entity.Service{Name: "   ", Owner: "o", Language: "go", Repo: "r"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, &tt.svc)
			assert.ErrorIs(t, err, entity.ErrInvalid)
		})
	}

	// a failed registration inserts no record and no event
	svcRepo := do.MustInvoke[repository.ServiceRepository](injector)
	total, err := svcRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
	evRepo := do.MustInvoke[repository.EventRepository](injector)
	recent, err := evRepo.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRegisterDuplicateName(t *testing.T) {
	injector := newTestInjector(t)
	uc := do.MustInvoke[RegisterServiceUsecase](injector)
	ctx := context.Background()

	register(t, injector, "auth-service", "identity-team", "python")

	_, err := uc.Execute(ctx, &entity.Service{
		Name:     "auth-service",
		Owner:    "other-team",
		Language: "go",
		Repo:     "https://github.com/example/other",
	})
	assert.ErrorIs(t, err, entity.ErrConflict)

	svcRepo := do.MustInvoke[repository.ServiceRepository](injector)
	got, err := svcRepo.GetByName(ctx, "auth-service")
	require.NoError(t, err)
	assert.Equal(t, "identity-team", got.Owner)
}
