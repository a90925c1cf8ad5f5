package cmd

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/repository"
)

var seedFlags struct {
	db string
}

var sampleServices = []*entity.Service{
	{
		Name:        "auth-service",
		Owner:       "identity-team",
		Language:    "python",
		Repo:        "https://github.com/example/auth-service",
		Description: "Authentication and authorization service",
		Tags:        []string{"auth", "security", "core"},
	},
	{
		Name:        "user-service",
		Owner:       "platform-team",
		Language:    "go",
		Repo:        "https://github.com/example/user-service",
		Description: "User management and profile service",
		Tags:        []string{"users", "profiles", "core"},
	},
	{
		Name:        "notification-service",
		Owner:       "communications-team",
		Language:    "typescript",
		Repo:        "https://github.com/example/notification-service",
		Description: "Push notifications and messaging service",
		Tags:        []string{"notifications", "messaging", "integration"},
	},
	{
		Name:        "analytics-service",
		Owner:       "data-team",
		Language:    "python",
		Repo:        "https://github.com/example/analytics-service",
		Description: "Data analytics and reporting service",
		Tags:        []string{"analytics", "data", "reporting"},
	},
	{
		Name:        "payment-service",
		Owner:       "commerce-team",
		Language:    "java",
		Repo:        "https://github.com/example/payment-service",
		Description: "Payment processing and billing service",
		Tags:        []string{"payments", "billing", "commerce"},
	},
}

var sampleDeployments = map[string]string{
	"auth-service":         "v1.2.3",
	"notification-service": "v2.1.0",
}

// seedSampleData populates an empty store with the sample services and
// their events. It is a no-op when the store already holds any service,
// so running it repeatedly never duplicates data. Returns the number of
// services created.
func seedSampleData(ctx context.Context, repo repository.ServiceRepository) (int, error) {
	count, err := repo.CountAll(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, sample := range sampleServices {
		svc := *sample
		event := &entity.Event{
			ServiceName: svc.Name,
			EventType:   entity.EventTypeCreated,
			EventData:   map[string]any{"name": svc.Name, "owner": svc.Owner},
		}
		if _, err := repo.Create(ctx, &svc, event); err != nil {
			return 0, err
		}
		if version, ok := sampleDeployments[svc.Name]; ok {
			if _, err := repo.Deploy(ctx, svc.Name, version, time.Now().UTC()); err != nil {
				return 0, err
			}
		}
	}
	return len(sampleServices), nil
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with sample services",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := repository.NewSQLiteDB(seedFlags.db)
		if err != nil {
			log.Fatal().Err(err).Msg("open database")
		}
		created, err := seedSampleData(context.Background(), repository.NewServiceRepository(db))
		if err != nil {
			log.Fatal().Err(err).Msg("seed sample data")
		}
		if created == 0 {
			log.Info().Msg("database already seeded, skipping")
			return
		}
		log.Info().Int("services", created).Msg("sample data created")
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFlags.db, "db", "data/portal.db", "Path to the SQLite database file")
}
