package repository

import (
	"context"
	"time"

	"github.com/zellohq/devportal/internal/entity"
	"gorm.io/gorm"
)

type EventRepository interface {
	// ListByService returns events for one service, newest first, with the
	// total count before pagination.
	ListByService(ctx context.Context, serviceName string, limit, offset int) ([]*entity.Event, int64, error)
	// Recent returns the newest events across all services.
	Recent(ctx context.Context, limit int) ([]*entity.Event, error)
	// CountByTypeSince aggregates event counts per type since cutoff.
	CountByTypeSince(ctx context.Context, cutoff time.Time) (map[string]int64, error)
}

type eventRepositoryImpl struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepositoryImpl{db: db}
}

func (r *eventRepositoryImpl) ListByService(ctx context.Context, serviceName string, limit, offset int) ([]*entity.Event, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Event{}).
		Where("service_name = ?", serviceName).
		Count(&total).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	founds, err := gorm.G[Event](r.db).
		Where("service_name = ?", serviceName).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(ctx)
	if err != nil {
		return nil, 0, translate(err)
	}
	res := make([]*entity.Event, len(founds))
	for i, found := range founds {
		res[i] = found.ToEntity()
	}
	return res, total, nil
}

func (r *eventRepositoryImpl) Recent(ctx context.Context, limit int) ([]*entity.Event, error) {
	var founds []Event
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&founds).Error
	if err != nil {
		return nil, translate(err)
	}
	res := make([]*entity.Event, len(founds))
	for i, found := range founds {
		res[i] = found.ToEntity()
	}
	return res, nil
}

func (r *eventRepositoryImpl) CountByTypeSince(ctx context.Context, cutoff time.Time) (map[string]int64, error) {
	var rows []struct {
		EventType string
		Count     int64
	}
	err := r.db.WithContext(ctx).Model(&Event{}).
		Select("event_type, COUNT(*) AS count").
		Where("created_at >= ?", cutoff).
		Group("event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	res := make(map[string]int64, len(rows))
	for _, row := range rows {
		res[row.EventType] = row.Count
	}
	return res, nil
}
