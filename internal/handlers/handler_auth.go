package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tribopay/pix_admin_backend/internal/apperrors"
	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/dto"
	"github.com/tribopay/pix_admin_backend/internal/middleware"
	"github.com/tribopay/pix_admin_backend/internal/platform/config"
	"github.com/tribopay/pix_admin_backend/internal/utils"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService portssvc.UserSvcFacade
	auditSvc    portssvc.AuditSvc
	jwtSecret   string
	jwtDuration time.Duration
	jwtIssuer   string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, audit portssvc.AuditSvc, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: us,
		auditSvc:    audit,
		jwtSecret:   cfg.JWTSecret,
		jwtDuration: cfg.JWTExpiryDuration,
		jwtIssuer:   cfg.JWTIssuer,
	}
}

// RegisterAuthRoutes sets up the routes for authentication.
func RegisterAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Audit, cfg)

	limitMiddleware := middleware.RateLimit(
		middleware.NewIPRateLimiter(loginRate),
		"Too many login attempts, please try again later.",
	)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
	}
}

// Login godoc
// @Summary Administrator login
// @Description Authenticates a panel user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login attempt for unknown email")
			h.recordLoginFailure(c, "", req.Email, "user_not_found")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
			return
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Login failed"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("user_id", user.UserID))
		h.recordLoginFailure(c, user.UserID, req.Email, "invalid_password")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		logger.Error("Failed to sign JWT", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Login failed"})
		return
	}

	actor := domain.Actor{UserID: user.UserID, IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	h.auditSvc.Record(c.Request.Context(), actor, domain.AuditLogin, "user", user.UserID, map[string]any{
		"email": user.Email,
	})

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			UserID: user.UserID,
			Email:  user.Email,
			Role:   user.Role,
		},
	})
}

// recordLoginFailure audits a rejected login attempt. The response never
// reveals the reason; the audit trail keeps it for intrusion review.
func (h *AuthHandler) recordLoginFailure(c *gin.Context, userID, email, reason string) {
	actor := domain.Actor{UserID: userID, IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	h.auditSvc.Record(c.Request.Context(), actor, domain.AuditLoginFailed, "user", userID, map[string]any{
		"email":  email,
		"reason": reason,
	})
}

func (h *AuthHandler) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := middleware.PanelClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    h.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
