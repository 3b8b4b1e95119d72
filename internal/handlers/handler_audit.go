package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/dto"
	"github.com/tribopay/pix_admin_backend/internal/middleware"
)

// auditHandler exposes the read side of the audit trail.
type auditHandler struct {
	auditService portssvc.AuditSvc
}

func newAuditHandler(as portssvc.AuditSvc) *auditHandler {
	return &auditHandler{auditService: as}
}

// RegisterAuditRoutes registers routes for the audit history.
func RegisterAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvc) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit")
	{
		audit.GET("", h.listAuditLogs)
	}
}

// listAuditLogs godoc
// @Summary List audit entries
// @Description Lists administrative actions, newest first, optionally filtered by user
// @Tags audit
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param userId query string false "Filter by acting user"
// @Success 200 {array} dto.AuditLogResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	if params.Page < 1 {
		params.Page = 1
	}

	offset := (params.Page - 1) * params.Limit
	entries, err := h.auditService.ListAuditLogs(c.Request.Context(), params.Limit, offset, params.UserID)
	if err != nil {
		logger.Error("Failed to list audit entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list audit entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAuditLogResponse(entries))
}
