package http_vote

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/jukebox/internal/delivery/http/common"
	usecase_vote "github.com/humanbelnik/jukebox/internal/usecase/vote"
)

// DeviceHeader carries the participant identity, a stable opaque string
// the device keeps across reconnects.
const DeviceHeader = "X-device-id"

type Controller struct {
	uc *usecase_vote.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_vote.Usecase,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	votes := router.Group("/rounds/current/votes")
	votes.POST("", c.vote)
	votes.GET("/me", c.myVote)
}

type VoteRequestDTO struct {
	OptionID string `json:"option_id" binding:"required" example:"blue-danube"`
}

type AdmissionDTO struct {
	Accepted       bool   `json:"accepted" example:"true"`
	ChosenOptionID string `json:"chosen_option_id" example:"blue-danube"`
	RoundID        string `json:"round_id" example:"1f0c7a52-5d3e-4a2b-8f7e-0c1d2e3f4a5b"`
}

type VoteDTO struct {
	RoundID  string    `json:"round_id"`
	OptionID string    `json:"option_id"`
	CastAt   time.Time `json:"cast_at"`
}

// @Summary Vote in the current round
// @Description One vote per device per round. Repeating the call is safe: it reports the option chosen first with accepted=false.
// @Tags Voting operations
// @Accept json
// @Produce json
// @Param X-device-id header string true "Participant identity"
// @Param request body VoteRequestDTO true "Chosen option"
// @Success 200 {object} AdmissionDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse "Round not open or time is up"
// @Failure 422 {object} http_common.ErrorResponse "Option not eligible"
// @Failure 503 {object} http_common.ErrorResponse
// @Router /rounds/current/votes [post]
func (c *Controller) vote(ctx *gin.Context) {
	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "incorrect request"})
		return
	}

	admission, err := c.uc.SubmitCurrent(ctx.Request.Context(), ctx.GetHeader(DeviceHeader), req.OptionID)
	if err != nil {
		c.fail(ctx, "vote rejected", err)
		return
	}

	ctx.JSON(http.StatusOK, AdmissionDTO{
		Accepted:       admission.Accepted,
		ChosenOptionID: admission.ChosenOptionID,
		RoundID:        admission.RoundID,
	})
}

// @Summary My vote in the current round
// @Tags Voting operations
// @Produce json
// @Param X-device-id header string true "Participant identity"
// @Success 200 {object} VoteDTO
// @Failure 404 {object} http_common.ErrorResponse "No vote yet"
// @Router /rounds/current/votes/me [get]
func (c *Controller) myVote(ctx *gin.Context) {
	v, err := c.uc.MyVote(ctx.Request.Context(), ctx.GetHeader(DeviceHeader))
	if err != nil {
		c.fail(ctx, "failed to load vote", err)
		return
	}

	ctx.JSON(http.StatusOK, VoteDTO{
		RoundID:  v.RoundID,
		OptionID: v.OptionID,
		CastAt:   v.CastAt,
	})
}

func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	status, message := http_common.StatusOf(err)
	if status >= http.StatusInternalServerError {
		c.logger.Error(msg, slog.String("error", err.Error()))
	} else {
		c.logger.Info(msg, slog.String("error", err.Error()))
	}
	ctx.JSON(status, http_common.ErrorResponse{Message: message})
}
