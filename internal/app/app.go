package app

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/go-redis/redis"
	"github.com/jmoiron/sqlx"

	"github.com/humanbelnik/jukebox/internal/config"
	http_admin "github.com/humanbelnik/jukebox/internal/delivery/http/admin"
	http_auth "github.com/humanbelnik/jukebox/internal/delivery/http/auth"
	http_catalog "github.com/humanbelnik/jukebox/internal/delivery/http/catalog"
	http_init "github.com/humanbelnik/jukebox/internal/delivery/http/init"
	http_access_middleware "github.com/humanbelnik/jukebox/internal/delivery/http/middleware/access"
	http_auth_middleware "github.com/humanbelnik/jukebox/internal/delivery/http/middleware/auth"
	http_round "github.com/humanbelnik/jukebox/internal/delivery/http/round"
	http_swagger "github.com/humanbelnik/jukebox/internal/delivery/http/swagger"
	http_vote "github.com/humanbelnik/jukebox/internal/delivery/http/vote"
	ws_round "github.com/humanbelnik/jukebox/internal/delivery/ws/round"
	auth_client "github.com/humanbelnik/jukebox/internal/infra/auth"
	infra_redis_init "github.com/humanbelnik/jukebox/internal/infra/redis/init"
	infra_redis_notifier "github.com/humanbelnik/jukebox/internal/infra/redis/notifier"
	infra_session_cache "github.com/humanbelnik/jukebox/internal/infra/redis/session"
	infra_s3 "github.com/humanbelnik/jukebox/internal/infra/s3"
	infra_seed "github.com/humanbelnik/jukebox/internal/infra/seed"
	infra_sql_init "github.com/humanbelnik/jukebox/internal/infra/sql/init"
	infra_sql_option "github.com/humanbelnik/jukebox/internal/infra/sql/option"
	infra_sql_round "github.com/humanbelnik/jukebox/internal/infra/sql/round"
	infra_sql_vote "github.com/humanbelnik/jukebox/internal/infra/sql/vote"
	"github.com/humanbelnik/jukebox/internal/model"
	servie_simple_auth "github.com/humanbelnik/jukebox/internal/service/auth/simple"
	usecase_catalog "github.com/humanbelnik/jukebox/internal/usecase/catalog"
	usecase_round "github.com/humanbelnik/jukebox/internal/usecase/round"
	usecase_vote "github.com/humanbelnik/jukebox/internal/usecase/vote"
)

// App is the wired service: stores, usecases, the live hub and the HTTP
// controllers.
type App struct {
	cfg    *config.Config
	pool   *http_init.ControllerPool
	hub    *ws_round.Hub
	cancel context.CancelFunc
}

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	db := infra_sql_init.MustEstablishConn(cfg.Store)

	a, err := New(context.Background(), cfg, db, redisConn)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	slog.Info("jukebox is up",
		slog.String("store", cfg.Store.Driver),
		slog.Bool("read_only", cfg.ReadOnly()),
		slog.Bool("archive", cfg.ArchiveEnabled()),
	)
	a.pool.RunAll(cfg.HTTP.Host, cfg.HTTP.Port)
}

// New wires the service on top of a migrated store and a redis connection.
// The hub keeps consuming notifications until Close.
func New(ctx context.Context, cfg *config.Config, db *sqlx.DB, redisConn *redis.Client) (*App, error) {
	optionRepository := infra_sql_option.New(db)
	roundRepository := infra_sql_round.New(db)
	voteRepository := infra_sql_vote.New(db)
	notifier := infra_redis_notifier.New(redisConn, cfg.Redis.Channel)

	catalogUC := usecase_catalog.New(optionRepository)
	if cfg.Store.CatalogPath != "" {
		options, err := infra_seed.LoadOptions(cfg.Store.CatalogPath)
		if err != nil {
			return nil, err
		}
		if err := catalogUC.Seed(ctx, options); err != nil {
			return nil, err
		}
	}

	roundOpts := []usecase_round.Option{}
	if cfg.ArchiveEnabled() {
		archive, err := infra_s3.New(ctx, infra_s3.MustEstablishConn(cfg.Archive), cfg.Archive.Bucket, cfg.Archive.Prefix)
		if err != nil {
			return nil, err
		}
		roundOpts = append(roundOpts, usecase_round.WithArchive(archive))
	}
	roundUC := usecase_round.New(roundRepository, voteRepository, catalogUC, notifier, roundOpts...)
	voteUC := usecase_vote.New(voteRepository, roundRepository, catalogUC, notifier)

	hubCtx, cancel := context.WithCancel(context.Background())
	events, err := notifier.Subscribe(hubCtx)
	if err != nil {
		cancel()
		return nil, err
	}
	hub := ws_round.NewHub(roundUC)
	go hub.Run(hubCtx, events)

	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	authService := servie_simple_auth.New(map[model.Role]string{
		model.RoleModerator: cfg.Auth.ModeratorCode,
		model.RoleConductor: cfg.Auth.ConductorCode,
	}, sessionCache, cfg.Auth.SessionTTL)
	var validator http_auth_middleware.Validator = authService
	if cfg.Auth.Servers != "" {
		validator = auth_client.New(cfg.Auth.Servers)
	}
	authMiddleware := http_auth_middleware.New(validator)

	controllerPool := http_init.NewControllerPool(http_access_middleware.ReadOnlyBadGatewayMiddleware(cfg.HTTP.Mode))
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_auth.New(authService))
	controllerPool.Add(http_catalog.New(catalogUC, authMiddleware))
	controllerPool.Add(http_round.New(roundUC, authMiddleware, http_round.WithDefaultDuration(cfg.Round.DefaultDuration)))
	controllerPool.Add(http_vote.New(voteUC))
	controllerPool.Add(http_admin.New(roundUC, authMiddleware))
	controllerPool.Add(ws_round.NewController(hub, authMiddleware))
	controllerPool.Register()

	return &App{
		cfg:    cfg,
		pool:   controllerPool,
		hub:    hub,
		cancel: cancel,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.pool.Handler()
}

// Close stops consuming notifications.
func (a *App) Close() {
	a.cancel()
}
