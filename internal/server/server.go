package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/advisor"
	"github.com/zellohq/devportal/internal/health"
	"github.com/zellohq/devportal/internal/repository"
	"github.com/zellohq/devportal/internal/server/routes"
	"github.com/zellohq/devportal/internal/usecase"
	"gorm.io/gorm"
)

type Config struct {
	DBPath string
	Port   int
	Logger zerolog.Logger
}

type Server struct {
	e        *echo.Echo
	config   *Config
	injector *do.Injector
}

func New(config *Config) *Server {
	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRemoteIP:  true,
		LogHost:      true,
		LogMethod:    true,
		LogURI:       true,
		LogUserAgent: true,
		LogStatus:    true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			config.Logger.Info().
				Str("remote_ip", v.RemoteIP).
				Str("host", v.Host).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("user_agent", v.UserAgent).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Msg("handled request")
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			config.Logger.Error().Err(err).Bytes("stack", stack).Send()
			return err
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := config.Logger.WithContext(req.Context())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	s := &Server{e: e, config: config, injector: do.New()}
	s.injectDependencies(s.injector)
	s.registerRoutes(s.injector)
	return s
}

func (s *Server) injectDependencies(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*gorm.DB, error) {
		return repository.NewSQLiteDB(s.config.DBPath)
	})
	do.Provide(injector, func(i *do.Injector) (repository.ServiceRepository, error) {
		return repository.NewServiceRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.EventRepository, error) {
		return repository.NewEventRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*health.Simulator, error) {
		return health.NewDefaultSimulator(), nil
	})
	do.Provide(injector, func(i *do.Injector) (*advisor.Advisor, error) {
		return advisor.NewAdvisor(), nil
	})
	do.Provide(injector, usecase.NewRegisterServiceUsecase)
	do.Provide(injector, usecase.NewListServicesUsecase)
	do.Provide(injector, usecase.NewDeployServiceUsecase)
	do.Provide(injector, usecase.NewGetNextStepsUsecase)
	do.Provide(injector, usecase.NewListServiceEventsUsecase)
	do.Provide(injector, usecase.NewStatusOverviewUsecase)
	do.Provide(injector, usecase.NewAnalyticsOverviewUsecase)
	do.Provide(injector, usecase.NewListFilterOptionsUsecase)
}

func (s *Server) registerRoutes(injector *do.Injector) {
	routes.RegisterRestAPI(injector, s.e)
	routes.RegisterMisc(injector, s.e)
}

// Injector exposes the dependency container so the CLI can share wired
// components (e.g. the status poller) with the running server.
func (s *Server) Injector() *do.Injector {
	return s.injector
}

// Handler exposes the router for httptest-driven endpoint tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.config.Logger.Info().Str("addr", addr).Msg("starting server")
	return s.e.Start(addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
