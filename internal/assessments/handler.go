package assessments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/readiness"
	"readiness-backend/internal/shared/server/middleware"
	"readiness-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the assessments service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog and assessment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.getCatalog)
	rg.POST("/assessments", h.submit)
	rg.GET("/assessments", h.list)
	rg.GET("/assessments/:id", h.get)
	rg.GET("/assessments/:id/report", h.report)
	rg.POST("/assessments/:id/export", h.export)
}

func (h *Handler) getCatalog(c *gin.Context) {
	catalog := h.Svc.CatalogInUse()
	respond.OK(c, gin.H{
		"categories": catalog.Categories(),
		"questions":  catalog.Questions(),
		"scale": gin.H{
			"min": readiness.MinScore,
			"max": readiness.MaxScore,
		},
	})
}

func (h *Handler) submit(c *gin.Context) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "request body must be a JSON assessment submission", []map[string]string{
			{"field": "body", "issue": err.Error()},
		})
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	a, err := h.Svc.Submit(ctx, sub)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to store assessment", nil)
		return
	}
	c.Set(middleware.AssessmentIDKey, a.ID)
	respond.Created(c, NewResultResponse(a))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.AssessmentIDKey, id)
	a, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.lookupError(c, err, "failed to load assessment")
		return
	}
	respond.OK(c, NewResultResponse(a))
}

func (h *Handler) list(c *gin.Context) {
	limit := defaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list assessments", nil)
		return
	}
	resp := make([]SummaryResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, newSummaryResponse(a))
	}
	respond.OK(c, resp)
}

func (h *Handler) report(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.AssessmentIDKey, id)
	body, err := h.Svc.Report(c.Request.Context(), id)
	if err != nil {
		h.lookupError(c, err, "failed to render report")
		return
	}
	respond.Markdown(c, body)
}

func (h *Handler) export(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.AssessmentIDKey, id)
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	key, err := h.Svc.ExportReport(ctx, id)
	if err != nil {
		if errors.Is(err, ErrStoreNotConfigured) {
			respond.Error(c, http.StatusServiceUnavailable, ErrorCodeStorage, "report storage is not configured", nil)
			return
		}
		h.lookupError(c, err, "failed to export report")
		return
	}
	respond.OK(c, gin.H{"assessmentId": id, "reportKey": key})
}

func (h *Handler) lookupError(c *gin.Context, err error, msg string) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "assessment not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, msg, nil)
}
