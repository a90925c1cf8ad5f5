package repository

import (
	"context"
	"strings"
	"time"

	"github.com/zellohq/devportal/internal/entity"
	"gorm.io/gorm"
)

// ServiceFilter narrows a listing. Owner and Language are exact matches
// against the stored values; Search is a case-insensitive substring match
// over name, owner and description.
type ServiceFilter struct {
	Owner    string
	Language string
	Search   string
}

type ServiceRepository interface {
	// Create persists the service together with its companion event in a
	// single transaction. A name collision returns entity.ErrConflict and
	// leaves the store untouched.
	Create(ctx context.Context, svc *entity.Service, ev *entity.Event) (*entity.Service, error)
	GetByName(ctx context.Context, name string) (*entity.Service, error)
	// ListFiltered returns every matching service ordered by created_at
	// descending (id descending as tiebreak), so repeated calls against an
	// unchanged store enumerate rows in the same order.
	ListFiltered(ctx context.Context, f ServiceFilter) ([]*entity.Service, error)
	// Deploy points the service at version and appends a deployed event,
	// atomically. The event payload records the previous version.
	Deploy(ctx context.Context, name, version string, at time.Time) (*entity.Service, error)
	CountAll(ctx context.Context) (int64, error)
	CountDeployed(ctx context.Context) (int64, error)
	RecentDeployments(ctx context.Context, limit int) ([]*entity.Service, error)
	DistinctOwners(ctx context.Context) ([]string, error)
	DistinctLanguages(ctx context.Context) ([]string, error)
	CountByOwner(ctx context.Context) (map[string]int64, error)
	CountByLanguage(ctx context.Context) (map[string]int64, error)
}

type serviceRepositoryImpl struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepositoryImpl{db: db}
}

func (r *serviceRepositoryImpl) Create(ctx context.Context, svc *entity.Service, ev *entity.Event) (*entity.Service, error) {
	var model Service
	model.FromEntity(svc)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := gorm.G[Service](tx).Create(ctx, &model); err != nil {
			return err
		}
		var event Event
		event.FromEntity(ev)
		return gorm.G[Event](tx).Create(ctx, &event)
	})
	if err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

func (r *serviceRepositoryImpl) GetByName(ctx context.Context, name string) (*entity.Service, error) {
	found, err := gorm.G[Service](r.db).Where("name = ?", name).First(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return found.ToEntity(), nil
}

func (r *serviceRepositoryImpl) ListFiltered(ctx context.Context, f ServiceFilter) ([]*entity.Service, error) {
	q := r.db.WithContext(ctx).Model(&Service{})
	if f.Owner != "" {
		q = q.Where("owner = ?", f.Owner)
	}
	if f.Language != "" {
		q = q.Where("language = ?", f.Language)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(owner) LIKE ? OR lower(description) LIKE ?", needle, needle, needle)
	}
	var founds []Service
	if err := q.Order("created_at DESC, id DESC").Find(&founds).Error; err != nil {
		return nil, translate(err)
	}
	res := make([]*entity.Service, len(founds))
	for i, found := range founds {
		res[i] = found.ToEntity()
	}
	return res, nil
}

func (r *serviceRepositoryImpl) Deploy(ctx context.Context, name, version string, at time.Time) (*entity.Service, error) {
	var model Service
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := gorm.G[Service](tx).Where("name = ?", name).First(ctx)
		if err != nil {
			return err
		}
		data := map[string]any{"version": version, "deployed_at": at.Format(time.RFC3339)}
		if found.DeployedVersion != nil {
			data["previous_version"] = *found.DeployedVersion
		}
		if _, err := gorm.G[Service](tx).Where("id = ?", found.ID).Updates(ctx, Service{
			DeployedVersion: &version,
			DeployedAt:      &at,
		}); err != nil {
			return err
		}
		var event Event
		event.FromEntity(&entity.Event{
			ServiceName: name,
			EventType:   entity.EventTypeDeployed,
			EventData:   data,
		})
		if err := gorm.G[Event](tx).Create(ctx, &event); err != nil {
			return err
		}
		model, err = gorm.G[Service](tx).Where("id = ?", found.ID).First(ctx)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

func (r *serviceRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Service{}).Count(&n).Error
	return n, translate(err)
}

func (r *serviceRepositoryImpl) CountDeployed(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Service{}).Where("deployed_version IS NOT NULL").Count(&n).Error
	return n, translate(err)
}

func (r *serviceRepositoryImpl) RecentDeployments(ctx context.Context, limit int) ([]*entity.Service, error) {
	founds, err := gorm.G[Service](r.db).
		Where("deployed_at IS NOT NULL").
		Order("deployed_at DESC").
		Limit(limit).
		Find(ctx)
	if err != nil {
		return nil, translate(err)
	}
	res := make([]*entity.Service, len(founds))
	for i, found := range founds {
		res[i] = found.ToEntity()
	}
	return res, nil
}

func (r *serviceRepositoryImpl) DistinctOwners(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "owner")
}

func (r *serviceRepositoryImpl) DistinctLanguages(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "language")
}

func (r *serviceRepositoryImpl) distinctColumn(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).Model(&Service{}).
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, translate(err)
	}
	return values, nil
}

func (r *serviceRepositoryImpl) CountByOwner(ctx context.Context) (map[string]int64, error) {
	return r.countByColumn(ctx, "owner")
}

func (r *serviceRepositoryImpl) CountByLanguage(ctx context.Context) (map[string]int64, error) {
	return r.countByColumn(ctx, "language")
}

func (r *serviceRepositoryImpl) countByColumn(ctx context.Context, column string) (map[string]int64, error) {
	var rows []struct {
		Value string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&Service{}).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	res := make(map[string]int64, len(rows))
	for _, row := range rows {
		res[row.Value] = row.Count
	}
	return res, nil
}
