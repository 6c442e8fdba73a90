// Package places provides the place discovery bounded context module:
// searching Google Places and scraping listings into leads.
package places

import (
	"callcrm_backend/internal/events"
	apphttp "callcrm_backend/internal/http"
	"callcrm_backend/internal/places/client"
	"callcrm_backend/internal/places/handler"
	"callcrm_backend/internal/places/service"
	"callcrm_backend/platform/config"
	"callcrm_backend/platform/logger"
	"callcrm_backend/platform/validator"
)

// Module is the places bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the places module.
func NewModule(cfg config.PlacesConfig, leads service.LeadUpserter, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	apiClient := client.New(cfg.GetPlacesAPIKey(), cfg.GetPlacesTimeout())
	fetcher := service.NewWebsiteFetcher()
	svc := service.New(apiClient, leads, fetcher, bus, log, cfg.IsPlacesEnabled())
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "places"
}

// RegisterRoutes mounts place routes on the provided router context.
// The scrape route carries its own stricter rate limit.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/places")
	group.GET("/search", m.handler.Search)
	group.POST("/scrape", ctx.ScrapeRateLimiter.RateLimit(), m.handler.Scrape)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
