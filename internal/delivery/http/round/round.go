package http_round

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/jukebox/internal/delivery/http/common"
	http_auth_middleware "github.com/humanbelnik/jukebox/internal/delivery/http/middleware/auth"
	"github.com/humanbelnik/jukebox/internal/model"
	usecase_round "github.com/humanbelnik/jukebox/internal/usecase/round"
)

type Controller struct {
	uc   *usecase_round.Usecase
	auth *http_auth_middleware.Middleware

	defaultDuration time.Duration
	now             func() time.Time
	logger          *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithDefaultDuration(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.defaultDuration = d
	}
}

func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}

func New(uc *usecase_round.Usecase,
	auth *http_auth_middleware.Middleware,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:              uc,
		auth:            auth,
		defaultDuration: 45 * time.Second,
		now:             time.Now,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	moderator := c.auth.AuthRequired(model.RoleModerator)
	conductor := c.auth.AuthRequired(model.RoleConductor)

	rounds := router.Group("/rounds")
	rounds.GET("", c.history)
	rounds.POST("", moderator, c.start)
	rounds.GET("/current", c.current)
	rounds.GET("/current/options", c.currentOptions)
	rounds.POST("/current/close", moderator, c.close)
	rounds.GET("/current/tally", moderator, c.liveTally)
	rounds.POST("/current/vetoes/:option_id", conductor, c.toggleVeto)
	rounds.GET("/:round_id/results", c.results)
}

type StartRequestDTO struct {
	Category        string `json:"category" binding:"required" example:"waltz"`
	DurationSeconds *int   `json:"duration_seconds,omitempty" example:"45"`
}

type TallyDTO struct {
	Round  http_common.RoundDTO `json:"round"`
	Totals map[string]int       `json:"totals"`
	Total  int                  `json:"total"`
}

type ResultRowDTO struct {
	Rank     int    `json:"rank" example:"1"`
	OptionID string `json:"option_id" example:"blue-danube"`
	Title    string `json:"title" example:"The Blue Danube"`
	Composer string `json:"composer" example:"Johann Strauss II"`
	Count    int    `json:"count" example:"12"`
	Vetoed   bool   `json:"vetoed" example:"false"`
	Winner   bool   `json:"winner" example:"true"`
}

type ResultsDTO struct {
	Round http_common.RoundDTO `json:"round"`
	Rows  []ResultRowDTO       `json:"rows"`
}

type CurrentOptionsDTO struct {
	Round   http_common.RoundDTO    `json:"round"`
	Options []http_common.OptionDTO `json:"options"`
}

// @Summary Start a round
// @Description Opens a new voting round for a category. A round still open is closed first.
// @Tags Rounds
// @Accept json
// @Produce json
// @Param X-role-token header string true "Moderator token"
// @Param request body StartRequestDTO true "Category and duration"
// @Success 201 {object} http_common.RoundDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 401 {object} http_common.ErrorResponse
// @Failure 503 {object} http_common.ErrorResponse
// @Router /rounds [post]
func (c *Controller) start(ctx *gin.Context) {
	var req StartRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: "incorrect request"})
		return
	}

	duration := c.defaultDuration
	if req.DurationSeconds != nil {
		duration = time.Duration(*req.DurationSeconds) * time.Second
	}

	r, err := c.uc.Start(ctx.Request.Context(), req.Category, duration)
	if err != nil {
		c.fail(ctx, "failed to start round", err)
		return
	}

	ctx.JSON(http.StatusCreated, http_common.NewRoundDTO(r, c.now()))
}

// @Summary Close the current round
// @Description Tallies the votes, picks the winner skipping vetoed options and closes the round. Closing a closed round returns it unchanged.
// @Tags Rounds
// @Produce json
// @Param X-role-token header string true "Moderator token"
// @Success 200 {object} http_common.RoundDTO
// @Failure 401 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse
// @Failure 503 {object} http_common.ErrorResponse
// @Router /rounds/current/close [post]
func (c *Controller) close(ctx *gin.Context) {
	r, err := c.uc.Close(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "failed to close round", err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.NewRoundDTO(r, c.now()))
}

// @Summary Toggle a veto
// @Description Adds the option to the veto set of the current round, or removes it if already vetoed
// @Tags Rounds
// @Produce json
// @Param X-role-token header string true "Conductor or moderator token"
// @Param option_id path string true "Option id"
// @Success 200 {object} http_common.RoundDTO
// @Failure 401 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse
// @Router /rounds/current/vetoes/{option_id} [post]
func (c *Controller) toggleVeto(ctx *gin.Context) {
	r, err := c.uc.ToggleVeto(ctx.Request.Context(), ctx.Param("option_id"))
	if err != nil {
		c.fail(ctx, "failed to toggle veto", err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.NewRoundDTO(r, c.now()))
}

// @Summary Current round
// @Tags Rounds
// @Produce json
// @Success 200 {object} http_common.RoundDTO
// @Failure 404 {object} http_common.ErrorResponse "No round has been started"
// @Router /rounds/current [get]
func (c *Controller) current(ctx *gin.Context) {
	r, err := c.uc.Current(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "failed to load current round", err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.NewRoundDTO(r, c.now()))
}

// @Summary Options of the current round
// @Description Enabled options of the round category that have not won yet. Empty once the round is closed.
// @Tags Rounds
// @Produce json
// @Success 200 {object} CurrentOptionsDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /rounds/current/options [get]
func (c *Controller) currentOptions(ctx *gin.Context) {
	r, options, err := c.uc.CurrentOptions(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "failed to load round options", err)
		return
	}

	ctx.JSON(http.StatusOK, CurrentOptionsDTO{
		Round:   http_common.NewRoundDTO(r, c.now()),
		Options: http_common.NewOptionDTOs(options),
	})
}

// @Summary Live tally
// @Description Vote counts of the current round as they stand. Not meant for participants.
// @Tags Rounds
// @Produce json
// @Param X-role-token header string true "Moderator token"
// @Success 200 {object} TallyDTO
// @Failure 401 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /rounds/current/tally [get]
func (c *Controller) liveTally(ctx *gin.Context) {
	r, totals, err := c.uc.LiveTally(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "failed to count votes", err)
		return
	}
	if totals == nil {
		totals = model.Tally{}
	}

	ctx.JSON(http.StatusOK, TallyDTO{
		Round:  http_common.NewRoundDTO(r, c.now()),
		Totals: totals,
		Total:  totals.Total(),
	})
}

// @Summary Round results
// @Description Ranked results of a closed round, vetoed options last
// @Tags Rounds
// @Produce json
// @Param round_id path string true "Round id"
// @Success 200 {object} ResultsDTO
// @Failure 403 {object} http_common.ErrorResponse "Round is still open"
// @Failure 404 {object} http_common.ErrorResponse
// @Router /rounds/{round_id}/results [get]
func (c *Controller) results(ctx *gin.Context) {
	r, rows, err := c.uc.Results(ctx.Request.Context(), ctx.Param("round_id"))
	if err != nil {
		c.fail(ctx, "failed to load results", err)
		return
	}

	out := make([]ResultRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ResultRowDTO(row))
	}

	ctx.JSON(http.StatusOK, ResultsDTO{
		Round: http_common.NewRoundDTO(r, c.now()),
		Rows:  out,
	})
}

// @Summary Round history
// @Description Every round, newest first
// @Tags Rounds
// @Produce json
// @Success 200 {array} http_common.RoundDTO
// @Failure 503 {object} http_common.ErrorResponse
// @Router /rounds [get]
func (c *Controller) history(ctx *gin.Context) {
	rounds, err := c.uc.History(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "failed to list rounds", err)
		return
	}

	now := c.now()
	out := make([]http_common.RoundDTO, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, http_common.NewRoundDTO(r, now))
	}
	ctx.JSON(http.StatusOK, out)
}

func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	status, message := http_common.StatusOf(err)
	if errors.Is(err, usecase_round.ErrContended) {
		status, message = http.StatusConflict, "round state contended, retry"
	}
	if status >= http.StatusInternalServerError {
		c.logger.Error(msg, slog.String("error", err.Error()))
	} else {
		c.logger.Warn(msg, slog.String("error", err.Error()))
	}
	ctx.JSON(status, http_common.ErrorResponse{Message: message})
}
