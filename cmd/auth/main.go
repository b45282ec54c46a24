package main

import (
	"github.com/humanbelnik/jukebox/internal/config"
	http_auth "github.com/humanbelnik/jukebox/internal/delivery/http/auth"
	http_init "github.com/humanbelnik/jukebox/internal/delivery/http/init"
	infra_redis_init "github.com/humanbelnik/jukebox/internal/infra/redis/init"
	infra_session_cache "github.com/humanbelnik/jukebox/internal/infra/redis/session"
	"github.com/humanbelnik/jukebox/internal/model"
	servie_simple_auth "github.com/humanbelnik/jukebox/internal/service/auth/simple"
)

// Standalone token issuer sharing the session cache with the main app.
func main() {
	cfg := config.Load()
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	authService := servie_simple_auth.New(map[model.Role]string{
		model.RoleModerator: cfg.Auth.ModeratorCode,
		model.RoleConductor: cfg.Auth.ConductorCode,
	}, sessionCache, cfg.Auth.SessionTTL)
	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_auth.New(authService))
	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Host, cfg.HTTP.Port)
}
