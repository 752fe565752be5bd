package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/cachium/models"
)

// listStates handles GET /api/states. The catalog is static reference
// data and independent of any stored group.
func (s *Server) listStates(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthStates())
}
