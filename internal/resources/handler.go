package resources

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/shared/server/respond"
)

// Handler serves the resource library and the latest digest.
type Handler struct {
	Library   *Library
	Refresher *Refresher
}

// NewHandler constructs a Handler.
func NewHandler(lib *Library, refresher *Refresher) *Handler {
	return &Handler{Library: lib, Refresher: refresher}
}

// RegisterRoutes attaches resource routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resources", h.list)
	rg.GET("/resources/digest", h.digest)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{
		"categories": h.Library.ByCategory(),
		"sections":   h.Library.Sections(),
	})
}

func (h *Handler) digest(c *gin.Context) {
	if h.Refresher == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "no resource digest has been published yet", nil)
		return
	}
	d, err := h.Refresher.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNoDigest) {
			respond.Error(c, http.StatusNotFound, "not_found", "no resource digest has been published yet", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resource digest", nil)
		return
	}
	respond.OK(c, d)
}
