package ws_round

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/jukebox/internal/delivery/http/common"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OperatorGuard authorizes operator subscriptions.
type OperatorGuard interface {
	Allow(ctx *gin.Context) bool
}

type Controller struct {
	hub   *Hub
	guard OperatorGuard

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func NewController(hub *Hub, guard OperatorGuard, opts ...ControllerOption) *Controller {
	c := &Controller{
		hub:    hub,
		guard:  guard,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws/rounds/current", c.subscribe)
}

// @Summary Subscribe to the current round
// @Description Websocket. Sends a snapshot of the current round on connect and after every change. Operators additionally receive the live tally.
// @Tags Live
// @Param role query string false "Observer role" Enums(display,participant,operator)
// @Param X-role-token header string false "Moderator or conductor token, required for operator"
// @Success 101
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 403 {object} http_common.ErrorResponse
// @Router /ws/rounds/current [get]
func (c *Controller) subscribe(ctx *gin.Context) {
	role := Role(ctx.DefaultQuery("role", string(RoleDisplay)))
	if !role.Valid() {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "unknown role"})
		return
	}
	if role == RoleOperator && (c.guard == nil || !c.guard.Allow(ctx)) {
		ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{Message: "forbidden"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade to websocket",
			slog.String("error", err.Error()),
		)
		return
	}

	client := NewClient(c.hub, conn, role)
	if err := c.hub.Register(ctx.Request.Context(), client); err != nil {
		c.logger.Error("failed to send initial snapshot", slog.String("error", err.Error()))
	}

	go c.hub.writePump(client)
	go c.hub.readPump(client)
}
