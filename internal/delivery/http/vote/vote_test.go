package http_vote

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	infra_sql_init "github.com/humanbelnik/jukebox/internal/infra/sql/init"
	infra_sql_option "github.com/humanbelnik/jukebox/internal/infra/sql/option"
	infra_sql_round "github.com/humanbelnik/jukebox/internal/infra/sql/round"
	infra_sql_vote "github.com/humanbelnik/jukebox/internal/infra/sql/vote"
	"github.com/humanbelnik/jukebox/internal/model"
	usecase_catalog "github.com/humanbelnik/jukebox/internal/usecase/catalog"
	usecase_round "github.com/humanbelnik/jukebox/internal/usecase/round"
	usecase_vote "github.com/humanbelnik/jukebox/internal/usecase/vote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	router *gin.Engine
	rounds *usecase_round.Usecase
	clock  *clock
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := infra_sql_init.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, infra_sql_init.Migrate(ctx, db))

	options := infra_sql_option.New(db)
	require.NoError(t, options.UpsertOption(ctx, model.Option{ID: "blue-danube", Title: "The Blue Danube", Category: "waltz", Order: 1, Enabled: true}))
	require.NoError(t, options.UpsertOption(ctx, model.Option{ID: "emperor", Title: "Emperor Waltz", Category: "waltz", Order: 2, Enabled: true}))
	require.NoError(t, options.UpsertOption(ctx, model.Option{ID: "radetzky", Title: "Radetzky March", Category: "march", Order: 1, Enabled: true}))

	c := &clock{now: time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)}
	rounds := infra_sql_round.New(db)
	votes := infra_sql_vote.New(db)
	catalog := usecase_catalog.New(options)

	router := gin.New()
	New(usecase_vote.New(votes, rounds, catalog, nil, usecase_vote.WithClock(c.Now))).
		RegisterRoutes(router.Group("/api/v1"))

	return &env{
		router: router,
		rounds: usecase_round.New(rounds, votes, catalog, nil, usecase_round.WithClock(c.Now)),
		clock:  c,
	}
}

func (e *env) vote(t *testing.T, device, option string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(VoteRequestDTO{OptionID: option})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rounds/current/votes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if device != "" {
		req.Header.Set(DeviceHeader, device)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) myVote(t *testing.T, device string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rounds/current/votes/me", nil)
	req.Header.Set(DeviceHeader, device)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func admission(t *testing.T, w *httptest.ResponseRecorder) AdmissionDTO {
	t.Helper()
	var a AdmissionDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	return a
}

func TestVoteWithoutRound(t *testing.T) {
	e := setup(t)

	assert.Equal(t, http.StatusConflict, e.vote(t, "device-1", "blue-danube").Code)
	assert.Equal(t, http.StatusNotFound, e.myVote(t, "device-1").Code)
}

func TestVoteOncePerDevice(t *testing.T) {
	e := setup(t)
	r, err := e.rounds.Start(context.Background(), "waltz", time.Minute)
	require.NoError(t, err)

	w := e.vote(t, "device-1", "blue-danube")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, AdmissionDTO{Accepted: true, ChosenOptionID: "blue-danube", RoundID: r.ID}, admission(t, w))

	w = e.vote(t, "device-1", "emperor")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, AdmissionDTO{Accepted: false, ChosenOptionID: "blue-danube", RoundID: r.ID}, admission(t, w))

	w = e.myVote(t, "device-1")
	require.Equal(t, http.StatusOK, w.Code)
	var v VoteDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "blue-danube", v.OptionID)
	assert.Equal(t, r.ID, v.RoundID)

	assert.Equal(t, http.StatusNotFound, e.myVote(t, "device-2").Code)
}

func TestVoteRejections(t *testing.T) {
	e := setup(t)
	_, err := e.rounds.Start(context.Background(), "waltz", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, e.vote(t, "", "blue-danube").Code)
	assert.Equal(t, http.StatusBadRequest, e.vote(t, "device-1", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, e.vote(t, "device-1", "radetzky").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, e.vote(t, "device-1", "ghost").Code)

	e.clock.Advance(time.Minute)
	assert.Equal(t, http.StatusConflict, e.vote(t, "device-1", "blue-danube").Code)
}

func TestVoteAfterClose(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	_, err := e.rounds.Start(ctx, "waltz", time.Minute)
	require.NoError(t, err)
	_, err = e.rounds.Close(ctx)
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, e.vote(t, "device-1", "blue-danube").Code)
}
