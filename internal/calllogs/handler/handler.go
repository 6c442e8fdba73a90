package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"callcrm_backend/internal/calllogs/repository"
	"callcrm_backend/internal/calllogs/service"
	"callcrm_backend/internal/calllogs/transport"
	"callcrm_backend/platform/httpkit"
	"callcrm_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid call log ID"
	msgInvalidFilter    = "invalid filter value"
)

// Handler handles HTTP requests for call logs.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new call logs handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create records a dial attempt.
// POST /api/v1/call-logs
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCallLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// List retrieves call logs with filters.
// GET /api/v1/call-logs
func (h *Handler) List(c *gin.Context) {
	var req transport.ListCallLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	params := repository.ListParams{Limit: req.Limit, Offset: req.Offset}
	if req.LeadID != "" {
		leadID, err := uuid.Parse(req.LeadID)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidFilter, nil)
			return
		}
		params.LeadID = &leadID
	}
	if req.CampaignID != "" {
		campaignID, err := uuid.Parse(req.CampaignID)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidFilter, nil)
			return
		}
		params.CampaignID = &campaignID
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidFilter, nil)
			return
		}
		params.Date = &date
	}

	result, err := h.svc.List(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Stats returns dialling stats for the session.
// GET /api/v1/call-logs/stats/set
func (h *Handler) Stats(c *gin.Context) {
	var campaignID *uuid.UUID
	if raw := c.Query("campaign_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidFilter, nil)
			return
		}
		campaignID = &parsed
	}

	result, err := h.svc.Stats(c.Request.Context(), campaignID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Callbacks returns call logs whose scheduled callback is due.
// GET /api/v1/call-logs/callbacks
func (h *Handler) Callbacks(c *gin.Context) {
	result, err := h.svc.CallbacksDue(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a call log entry.
// DELETE /api/v1/call-logs/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"deleted": true})
}
