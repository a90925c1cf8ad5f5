package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/zellohq/devportal/internal/entity"
	"github.com/zellohq/devportal/internal/usecase"
)

func RegisterRestAPI(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/api")

	g.POST("/services", func(c echo.Context) error {
		type request struct {
			Name        string   `json:"name"`
			Owner       string   `json:"owner"`
			Language    string   `json:"language"`
			Repo        string   `json:"repo"`
			Description string   `json:"description"`
			Tags        []string `json:"tags"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return errorJSON(c, entity.ErrInvalid)
		}

		uc := do.MustInvoke[usecase.RegisterServiceUsecase](injector)
		svc, err := uc.Execute(c.Request().Context(), &entity.Service{
			Name:        req.Name,
			Owner:       req.Owner,
			Language:    req.Language,
			Repo:        req.Repo,
			Description: req.Description,
			Tags:        req.Tags,
		})
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusCreated, svc)
	})

	g.GET("/services", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListServicesUsecase](injector)
		out, err := uc.Execute(c.Request().Context(), usecase.ListServicesInput{
			Owner:    c.QueryParam("owner"),
			Language: c.QueryParam("language"),
			Status:   c.QueryParam("status"),
			Search:   c.QueryParam("search"),
			Page:     intQuery(c, "page", 1),
			PerPage:  intQuery(c, "per_page", usecase.DefaultPerPage),
		})
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"services": out.Services,
			"total":    out.Total,
			"page":     out.Page,
			"per_page": out.PerPage,
			"pages":    out.Pages,
		})
	})

	g.GET("/services/status", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.StatusOverviewUsecase](injector)
		out, err := uc.Execute(c.Request().Context())
		if err != nil {
			return errorJSON(c, err)
		}
		recent := make([]echo.Map, len(out.RecentDeployments))
		for i, svc := range out.RecentDeployments {
			recent[i] = echo.Map{
				"name":        svc.Name,
				"version":     svc.DeployedVersion,
				"deployed_at": svc.DeployedAt,
				"owner":       svc.Owner,
			}
		}
		return c.JSON(http.StatusOK, echo.Map{
			"summary":            out.Summary,
			"services":           out.Services,
			"recent_deployments": recent,
		})
	})

	g.POST("/services/:name/deploy", func(c echo.Context) error {
		type request struct {
			Version string `json:"version"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return errorJSON(c, entity.ErrInvalid)
		}

		uc := do.MustInvoke[usecase.DeployServiceUsecase](injector)
		svc, err := uc.Execute(c.Request().Context(), c.Param("name"), req.Version)
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, svc)
	})

	g.GET("/services/:name/next-steps", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.GetNextStepsUsecase](injector)
		out, err := uc.Execute(c.Request().Context(), c.Param("name"))
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"service_name": out.Service.Name,
			"next_steps":   out.Advice.NextSteps,
			"templates":    out.Advice.Templates,
			"service_info": echo.Map{
				"owner":            out.Service.Owner,
				"language":         out.Service.Language,
				"deployed_version": out.Service.DeployedVersion,
				"deployed_at":      out.Service.DeployedAt,
				"tags":             out.Service.Tags,
				"description":      out.Service.Description,
			},
		})
	})

	// Events are returned newest first.
	g.GET("/services/:name/events", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListServiceEventsUsecase](injector)
		out, err := uc.Execute(c.Request().Context(), usecase.ListServiceEventsInput{
			ServiceName: c.Param("name"),
			Page:        intQuery(c, "page", 1),
			PerPage:     intQuery(c, "per_page", 0),
		})
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"service_name": c.Param("name"),
			"events":       out.Events,
			"total":        out.Total,
			"page":         out.Page,
			"per_page":     out.PerPage,
			"pages":        out.Pages,
		})
	})

	g.GET("/analytics/overview", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.AnalyticsOverviewUsecase](injector)
		out, err := uc.Execute(c.Request().Context(), intQuery(c, "days", 0))
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"period_days":           out.PeriodDays,
			"deployment_stats":      out.DeploymentStats,
			"activity_stats":        out.ActivityStats,
			"language_distribution": out.LanguageDistribution,
			"team_distribution":     out.TeamDistribution,
			"recent_activity":       out.RecentActivity,
		})
	})

	g.GET("/filters", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListFilterOptionsUsecase](injector)
		out, err := uc.Execute(c.Request().Context())
		if err != nil {
			return errorJSON(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})
}

func intQuery(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing or invalid required field"})
	case errors.Is(err, entity.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "service name already exists"})
	case errors.Is(err, entity.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
	default:
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("request failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
