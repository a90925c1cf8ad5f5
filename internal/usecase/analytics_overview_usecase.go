package usecase

import (
	"context"
	"time"

	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/repository"
)

const (
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 365
	recentActivityLimit  = 10
)

type DeploymentStats struct {
	TotalServices      int64 `json:"total_services"`
	DeployedServices   int64 `json:"deployed_services"`
	UndeployedServices int64 `json:"undeployed_services"`
}

type AnalyticsOverview struct {
	PeriodDays           int
	DeploymentStats      DeploymentStats
	ActivityStats        map[string]int64
	LanguageDistribution map[string]int64
	TeamDistribution     map[string]int64
	RecentActivity       []*entity.Event
}

type AnalyticsOverviewUsecase interface {
	Execute(ctx context.Context, days int) (*AnalyticsOverview, error)
}

type analyticsOverviewUsecaseImpl struct {
	serviceRepository repository.ServiceRepository
	eventRepository   repository.EventRepository
}

func (u *analyticsOverviewUsecaseImpl) Execute(ctx context.Context, days int) (*AnalyticsOverview, error) {
	if days < 1 {
		days = defaultAnalyticsDays
	}
	days = min(days, maxAnalyticsDays)

	total, err := u.serviceRepository.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	deployed, err := u.serviceRepository.CountDeployed(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	activity, err := u.eventRepository.CountByTypeSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	byLanguage, err := u.serviceRepository.CountByLanguage(ctx)
	if err != nil {
		return nil, err
	}
	byOwner, err := u.serviceRepository.CountByOwner(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := u.eventRepository.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	return &AnalyticsOverview{
		PeriodDays: days,
		DeploymentStats: DeploymentStats{
			TotalServices:      total,
			DeployedServices:   deployed,
			UndeployedServices: total - deployed,
		},
		ActivityStats:        activity,
		LanguageDistribution: byLanguage,
		TeamDistribution:     byOwner,
		RecentActivity:       recent,
	}, nil
}

func NewAnalyticsOverviewUsecase(injector *do.Injector) (AnalyticsOverviewUsecase, error) {
	return &analyticsOverviewUsecaseImpl{
		serviceRepository: do.MustInvoke[repository.ServiceRepository](injector),
		eventRepository:   do.MustInvoke[repository.EventRepository](injector),
	}, nil
}
