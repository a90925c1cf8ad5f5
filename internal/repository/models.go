package repository

import (
	"encoding/json"
	"time"

	"github.com/zellohq/devportal/internal/entity"
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	Name            string `gorm:"size:100;uniqueIndex"`
	Owner           string `gorm:"size:100;index"`
	Language        string `gorm:"size:50;index"`
	Repo            string `gorm:"size:500"`
	Description     string
	Tags            string     // JSON-encoded list of tags
	DeployedVersion *string    `gorm:"size:50"`
	DeployedAt      *time.Time `gorm:"index"`
}

func (s *Service) ToEntity() *entity.Service {
	tags := []string{}
	if s.Tags != "" {
		// malformed tag payloads are cosmetic, ignore them
		_ = json.Unmarshal([]byte(s.Tags), &tags)
	}
	return &entity.Service{
		ID:              entity.NewID(s.ID),
		Name:            s.Name,
		Owner:           s.Owner,
		Language:        s.Language,
		Repo:            s.Repo,
		Description:     s.Description,
		Tags:            tags,
		DeployedVersion: s.DeployedVersion,
		DeployedAt:      s.DeployedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (s *Service) FromEntity(e *entity.Service) {
	if e.ID != "" {
		s.ID = e.ID.Uint()
	}
	s.Name = e.Name
	s.Owner = e.Owner
	s.Language = e.Language
	s.Repo = e.Repo
	s.Description = e.Description
	if len(e.Tags) > 0 {
		if b, err := json.Marshal(e.Tags); err == nil {
			s.Tags = string(b)
		}
	}
	s.DeployedVersion = e.DeployedVersion
	s.DeployedAt = e.DeployedAt
}

type Event struct {
	gorm.Model
	ServiceName string `gorm:"size:100;index"`
	EventType   string `gorm:"size:50;index"`
	EventData   string // JSON-encoded payload
}

func (ev *Event) ToEntity() *entity.Event {
	var data map[string]any
	if ev.EventData != "" {
		_ = json.Unmarshal([]byte(ev.EventData), &data)
	}
	return &entity.Event{
		ID:          entity.NewID(ev.ID),
		ServiceName: ev.ServiceName,
		EventType:   entity.EventType(ev.EventType),
		EventData:   data,
		CreatedAt:   ev.CreatedAt,
	}
}

func (ev *Event) FromEntity(e *entity.Event) {
	if e.ID != "" {
		ev.ID = e.ID.Uint()
	}
	ev.ServiceName = e.ServiceName
	ev.EventType = string(e.EventType)
	if e.EventData != nil {
		if b, err := json.Marshal(e.EventData); err == nil {
			ev.EventData = string(b)
		}
	}
}
