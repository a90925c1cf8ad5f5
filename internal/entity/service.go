package entity

import "time"

type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// Service is a registered unit of deployable software tracked by the portal.
type Service struct {
	ID              ID           `json:"id"`
	Name            string       `json:"name"`
	Owner           string       `json:"owner"`
	Language        string       `json:"language"`
	Repo            string       `json:"repo"`
	Description     string       `json:"description,omitempty"`
	Tags            []string     `json:"tags"`
	DeployedVersion *string      `json:"deployed_version"`
	DeployedAt      *time.Time   `json:"deployed_at"`
	Status          HealthStatus `json:"status,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Deployed reports whether the service has ever had a version deployed.
func (s *Service) Deployed() bool {
	return s.DeployedVersion != nil
}

// Validate checks the required fields for registration.
func (s *Service) Validate() error {
	if s.Name == "" || len(s.Name) > 100 {
		return ErrInvalid
	}
	if s.Owner == "" || s.Language == "" || s.Repo == "" {
		return ErrInvalid
	}
	return nil
}
