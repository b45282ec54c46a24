package http_catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/jukebox/internal/delivery/http/common"
	http_auth_middleware "github.com/humanbelnik/jukebox/internal/delivery/http/middleware/auth"
	"github.com/humanbelnik/jukebox/internal/model"
	usecase_catalog "github.com/humanbelnik/jukebox/internal/usecase/catalog"
)

type Controller struct {
	uc   *usecase_catalog.Usecase
	auth *http_auth_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_catalog.Usecase,
	auth *http_auth_middleware.Middleware,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		auth:   auth,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/options", c.options)
	router.PUT("/options/:option_id", c.auth.AuthRequired(model.RoleModerator), c.upsert)
	router.GET("/categories", c.categories)
}

type UpsertOptionRequestDTO struct {
	Title    string `json:"title" binding:"required" example:"The Blue Danube"`
	Composer string `json:"composer" example:"Johann Strauss II"`
	Category string `json:"category" example:"waltz"`
	Section  string `json:"section" example:"waltz"`
	Order    int    `json:"order" example:"1"`
	Enabled  *bool  `json:"enabled,omitempty" example:"true"`
}

// @Summary Catalog
// @Description All options, sorted by category and order
// @Tags Catalog
// @Produce json
// @Success 200 {array} http_common.OptionDTO
// @Failure 503 {object} http_common.ErrorResponse
// @Router /options [get]
func (c *Controller) options(ctx *gin.Context) {
	options, err := c.uc.Options(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "failed to load options", err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.NewOptionDTOs(options))
}

// @Summary Categories
// @Tags Catalog
// @Produce json
// @Success 200 {array} string
// @Failure 503 {object} http_common.ErrorResponse
// @Router /categories [get]
func (c *Controller) categories(ctx *gin.Context) {
	categories, err := c.uc.Categories(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "failed to load categories", err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// @Summary Create or replace an option
// @Tags Catalog
// @Accept json
// @Param X-role-token header string true "Moderator token"
// @Param option_id path string true "Option id"
// @Param request body UpsertOptionRequestDTO true "Option"
// @Success 204
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 401 {object} http_common.ErrorResponse
// @Router /options/{option_id} [put]
func (c *Controller) upsert(ctx *gin.Context) {
	var req UpsertOptionRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "incorrect request"})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	err := c.uc.Upsert(ctx.Request.Context(), model.Option{
		ID:       ctx.Param("option_id"),
		Title:    req.Title,
		Composer: req.Composer,
		Category: req.Category,
		Section:  req.Section,
		Order:    req.Order,
		Enabled:  enabled,
	})
	if err != nil {
		if errors.Is(err, usecase_catalog.ErrInvalidOption) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
			return
		}
		c.fail(ctx, "failed to upsert option", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	status, message := http_common.StatusOf(err)
	c.logger.Error(msg, slog.String("error", err.Error()))
	ctx.JSON(status, http_common.ErrorResponse{Message: message})
}
