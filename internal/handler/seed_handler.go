package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bouncer/internal/errors"
	"bouncer/internal/seed"
	"bouncer/internal/service"
)

// SeedHandler handles demo data endpoints.
type SeedHandler struct {
	profileService service.ProfileService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(profileService service.ProfileService) *SeedHandler {
	return &SeedHandler{profileService: profileService}
}

// SeedProfiles godoc
// @Summary Upsert the demo profile fixtures
// @Tags seed
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/profiles [get]
func (h *SeedHandler) SeedProfiles(c echo.Context) error {
	seeded := 0
	for _, profile := range seed.Profiles() {
		profile := profile
		if _, err := h.profileService.UpsertProfile(c.Request().Context(), &profile); err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		seeded++
	}
	return c.JSON(http.StatusOK, map[string]int{"seeded": seeded})
}
