package http_admin

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/jukebox/internal/delivery/http/common"
	http_auth_middleware "github.com/humanbelnik/jukebox/internal/delivery/http/middleware/auth"
	"github.com/humanbelnik/jukebox/internal/model"
	usecase_round "github.com/humanbelnik/jukebox/internal/usecase/round"
)

type Controller struct {
	uc   *usecase_round.Usecase
	auth *http_auth_middleware.Middleware

	logger *slog.Logger
}

func New(
	uc *usecase_round.Usecase,
	auth *http_auth_middleware.Middleware,
) *Controller {
	return &Controller{
		uc:     uc,
		auth:   auth,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", c.auth.AuthRequired(model.RoleModerator))
	admin.POST("/reset-has-won", c.resetHasWon)
	admin.POST("/reset-event", c.resetEvent)
}

// @Summary Make every option eligible again
// @Tags Admin
// @Param X-role-token header string true "Moderator token"
// @Success 204
// @Failure 401 {object} http_common.ErrorResponse
// @Failure 503 {object} http_common.ErrorResponse
// @Router /admin/reset-has-won [post]
func (c *Controller) resetHasWon(ctx *gin.Context) {
	if err := c.uc.ResetHasWon(ctx.Request.Context()); err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// @Summary Reset the event
// @Description Deletes every round and vote and makes every option eligible again
// @Tags Admin
// @Param X-role-token header string true "Moderator token"
// @Success 204
// @Failure 401 {object} http_common.ErrorResponse
// @Failure 503 {object} http_common.ErrorResponse
// @Router /admin/reset-event [post]
func (c *Controller) resetEvent(ctx *gin.Context) {
	if err := c.uc.ResetEvent(ctx.Request.Context()); err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) fail(ctx *gin.Context, err error) {
	status, message := http_common.StatusOf(err)
	c.logger.Error("admin operation failed", slog.String("error", err.Error()))
	ctx.JSON(status, http_common.ErrorResponse{Message: message})
}
