package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"gorm.io/gorm"
)

const portalVersion = "1.0.0"

func RegisterMisc(injector *do.Injector, e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		db := do.MustInvoke[*gorm.DB](injector)
		var count int64
		if err := db.WithContext(c.Request().Context()).Table("services").Count(&count).Error; err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":    "unhealthy",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"error":     "database connection failed",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":         "healthy",
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"database":       "connected",
			"services_count": count,
			"version":        portalVersion,
		})
	})
}
