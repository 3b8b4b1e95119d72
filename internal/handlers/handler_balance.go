package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/dto"
	"github.com/tribopay/pix_admin_backend/internal/middleware"
)

// refreshRate limits manual balance refreshes: 10 per minute per IP. The
// in-flight guard already drops overlapping passes; the limiter just keeps a
// misbehaving client from hammering the endpoint.
var refreshRate = limiter.Rate{Period: time.Minute, Limit: 10}

// balanceHandler handles HTTP requests for cached balances and refreshes.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// RegisterBalanceRoutes registers routes related to account balances.
func RegisterBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	refreshLimit := middleware.RateLimit(
		middleware.NewIPRateLimiter(refreshRate),
		"Too many balance refresh requests, please try again later.",
	)

	balances := rg.Group("/balances")
	{
		balances.GET("", h.listBalances)
		balances.POST("/refresh", refreshLimit, h.refreshBalances)
	}
}

// listBalances godoc
// @Summary List cached balances
// @Description Lists the latest known balance of every synchronized account
// @Tags balances
// @Produce json
// @Success 200 {array} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /balances [get]
func (h *balanceHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balances, err := h.balanceService.ListBalances(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBalanceResponse(balances))
}

// refreshBalances godoc
// @Summary Refresh balances now
// @Description Runs one synchronous balance reconciliation pass. Per-account
// @Description failures are reported inside the result list; a pass skipped
// @Description because another one is running returns an empty list.
// @Tags balances
// @Produce json
// @Success 200 {object} dto.RefreshBalancesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /balances/refresh [post]
func (h *balanceHandler) refreshBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.balanceService.RefreshBalances(c.Request.Context(), actorFromContext(c))
	if err != nil {
		logger.Error("Manual balance refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRefreshBalancesResponse(summary))
}
