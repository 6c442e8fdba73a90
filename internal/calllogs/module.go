// Package calllogs provides the call logging bounded context module:
// recording dial attempts and applying their effects to leads.
package calllogs

import (
	"callcrm_backend/internal/calllogs/handler"
	"callcrm_backend/internal/calllogs/repository"
	"callcrm_backend/internal/calllogs/service"
	"callcrm_backend/internal/events"
	apphttp "callcrm_backend/internal/http"
	"callcrm_backend/platform/logger"
	"callcrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the call logs bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the call logs module. scheduler may
// be nil when Redis is not configured.
func NewModule(pool *pgxpool.Pool, leads service.LeadEffectsWriter, scheduler service.ReminderScheduler, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, scheduler, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "calllogs"
}

// Repository returns the call log repository for the worker process.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts call log routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/call-logs")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/stats/set", m.handler.Stats)
	group.GET("/callbacks", m.handler.Callbacks)
	group.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
