// Package leads provides the leads bounded context module: scraped
// business listings, their scores, and the lead pipeline.
package leads

import (
	calllogsrepo "callcrm_backend/internal/calllogs/repository"
	"callcrm_backend/internal/events"
	apphttp "callcrm_backend/internal/http"
	"callcrm_backend/internal/leads/handler"
	"callcrm_backend/internal/leads/repository"
	"callcrm_backend/internal/leads/scoring"
	"callcrm_backend/internal/leads/service"
	"callcrm_backend/platform/logger"
	"callcrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
	engine  *scoring.Engine
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, engine *scoring.Engine, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	history := calllogsrepo.New(pool)
	svc := service.New(repo, history, engine, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
		engine:  engine,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Repository returns the lead repository for other modules (scraping
// upserts, call effects).
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// Engine returns the scoring engine for external use.
func (m *Module) Engine() *scoring.Engine {
	return m.engine
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/leads")
	group.GET("", m.handler.List)
	group.GET("/stats/overview", m.handler.Stats)
	group.GET("/:id", m.handler.Get)
	group.GET("/:id/score", m.handler.Score)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
