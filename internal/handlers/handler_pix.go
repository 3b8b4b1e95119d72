package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/tribopay/pix_admin_backend/internal/apperrors"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/dto"
	"github.com/tribopay/pix_admin_backend/internal/middleware"
)

// pixOutRate limits transfer creation: 10 per 5 minutes per IP.
var pixOutRate = limiter.Rate{Period: 5 * time.Minute, Limit: 10}

// pixHandler handles HTTP requests for PIX transfers.
type pixHandler struct {
	pixService portssvc.PixSvcFacade
}

func newPixHandler(ps portssvc.PixSvcFacade) *pixHandler {
	return &pixHandler{pixService: ps}
}

// RegisterPixRoutes registers routes related to PIX transfers.
func RegisterPixRoutes(rg *gin.RouterGroup, pixService portssvc.PixSvcFacade) {
	h := newPixHandler(pixService)

	outLimit := middleware.RateLimit(
		middleware.NewIPRateLimiter(pixOutRate),
		"Too many transfer requests, please try again later.",
	)

	pix := rg.Group("/pix")
	{
		pix.POST("/out", outLimit, h.createPixOut)
		pix.GET("/out", h.listPixOut)
		pix.GET("/out/:documentNumber", h.getPixOutStatus)
		pix.GET("/keys/:accountId", h.getPixKeys)
	}
}

// createPixOut godoc
// @Summary Initiate a PIX transfer
// @Description Sends a PIX OUT through the banking gateway. The request is
// @Description persisted with the gateway's raw response whatever the outcome.
// @Tags pix
// @Accept json
// @Produce json
// @Param transfer body dto.CreatePixOutRequest true "Transfer details"
// @Success 201 {object} dto.PixOutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /pix/out [post]
func (h *pixHandler) createPixOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePixOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPixOut", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.pixService.CreatePixOut(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create PIX OUT", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create transfer"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPixOutResponse(record))
}

// listPixOut godoc
// @Summary List PIX transfer history
// @Description Lists transfers newest first with masked destination data
// @Tags pix
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {array} dto.PixOutHistoryItem
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /pix/out [get]
func (h *pixHandler) listPixOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPixOutParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	if params.Page < 1 {
		params.Page = 1
	}

	offset := (params.Page - 1) * params.Limit
	requests, err := h.pixService.ListPixOut(c.Request.Context(), params.Limit, offset)
	if err != nil {
		logger.Error("Failed to list PIX transfers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transfers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPixOutHistory(requests))
}

// getPixOutStatus godoc
// @Summary Check a transfer's status
// @Description Re-queries the gateway for the current status and updates the stored request
// @Tags pix
// @Produce json
// @Param documentNumber path string true "Gateway document number"
// @Success 200 {object} dto.PixStatusResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /pix/out/{documentNumber} [get]
func (h *pixHandler) getPixOutStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentNumber := c.Param("documentNumber")

	record, err := h.pixService.GetPixOutStatus(c.Request.Context(), documentNumber, actorFromContext(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transfer not found"})
			return
		}
		logger.Error("Failed to check PIX status", slog.String("error", err.Error()), slog.String("document_number", documentNumber))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check transfer status"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPixStatusResponse(record))
}

// getPixKeys godoc
// @Summary List an account's PIX keys
// @Description Queries the gateway for the PIX keys registered to a saved account
// @Tags pix
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} portssvc.PixKeysResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /pix/keys/{accountId} [get]
func (h *pixHandler) getPixKeys(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountId")

	keys, err := h.pixService.GetPixKeys(c.Request.Context(), accountID, actorFromContext(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to list PIX keys", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list PIX keys"})
		return
	}

	c.JSON(http.StatusOK, keys)
}
