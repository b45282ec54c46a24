package http_auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/jukebox/internal/delivery/http/common"
	http_auth_middleware "github.com/humanbelnik/jukebox/internal/delivery/http/middleware/auth"
	"github.com/humanbelnik/jukebox/internal/model"
	servie_simple_auth "github.com/humanbelnik/jukebox/internal/service/auth/simple"
)

type Controller struct {
	service *servie_simple_auth.Service
	logger  *slog.Logger
}

func New(
	service *servie_simple_auth.Service,
) *Controller {
	return &Controller{
		service: service,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("", c.auth)
	auth.POST("/validate", c.validate)
}

type ValidateRequestDTO struct {
	Token string `json:"token" binding:"required"`
	Role  string `json:"role" binding:"required" example:"conductor" enums:"moderator,conductor"`
}

type ValidateResponseDTO struct {
	Valid bool `json:"valid"`
}

type AuthRequestDTO struct {
	Role string `json:"role" binding:"required" example:"moderator" enums:"moderator,conductor"`
	Code string `json:"code" binding:"required" example:"secret123"`
}

// @Summary Exchange a role code for a token
// @Description Checks the shared code of a role and returns a token in the X-role-token header
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body AuthRequestDTO true "Role and its code"
// @Success 202
// @Header 202 {string} X-role-token "Token for moderator or conductor operations"
// @Failure 400 {object} http_common.ErrorResponse "Malformed request"
// @Failure 403 {object} http_common.ErrorResponse "Wrong code"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth [post]
func (c *Controller) auth(ctx *gin.Context) {
	var req AuthRequestDTO

	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request format", "error", err)
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid request format",
		})
		return
	}

	token, err := c.service.Auth(model.Role(req.Role), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, servie_simple_auth.ErrWrongCode), errors.Is(err, servie_simple_auth.ErrUnknownRole):
			c.logger.Warn("auth rejected", slog.String("role", req.Role))
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "forbidden",
			})
		default:
			c.logger.Error("internal auth error", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Header(http_auth_middleware.TokenHeader, token)

	ctx.Status(http.StatusAccepted)
}

// @Summary Check a token against a role
// @Description Used by app instances that delegate token checks to a standalone auth service
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body ValidateRequestDTO true "Token and the role it should grant"
// @Success 200 {object} ValidateResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Malformed request"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/validate [post]
func (c *Controller) validate(ctx *gin.Context) {
	var req ValidateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "Invalid request format",
		})
		return
	}

	valid, err := c.service.IsValid(req.Token, model.Role(req.Role))
	if err != nil {
		c.logger.Error("token check failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, ValidateResponseDTO{Valid: valid})
}
