package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"callcrm_backend/internal/places/service"
	"callcrm_backend/internal/places/transport"
	"callcrm_backend/platform/httpkit"
	"callcrm_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidCampaign  = "invalid campaign ID"
)

// Handler handles HTTP requests for place search and scraping.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new places handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Search runs a passthrough text search without saving leads.
// GET /api/v1/places/search
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchPlacesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Search(c.Request.Context(), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"places": result})
}

// Scrape searches for listings and saves them as leads.
// POST /api/v1/places/scrape
func (h *Handler) Scrape(c *gin.Context) {
	var req transport.ScrapeLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	var campaignID *uuid.UUID
	if req.CampaignID != nil && *req.CampaignID != "" {
		parsed, err := uuid.Parse(*req.CampaignID)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidCampaign, nil)
			return
		}
		campaignID = &parsed
	}

	result, err := h.svc.Scrape(c.Request.Context(), req.Query, campaignID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
