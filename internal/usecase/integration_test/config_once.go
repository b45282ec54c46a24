package integrationtest

import (
	"os"
	"sync"

	"github.com/humanbelnik/jukebox/internal/config"
)

var (
	cfg     *config.Config
	cfgOnce sync.Once
)

// getConfig runs against an in-memory SQLite store unless STORE_DRIVER is
// set explicitly.
func getConfig() *config.Config {
	cfgOnce.Do(func() {
		var err error
		cfg, err = config.Parse()
		if err != nil {
			panic(err)
		}
		if os.Getenv("STORE_DRIVER") == "" {
			cfg.Store.Driver = "sqlite"
			cfg.Store.SQLite.Path = ":memory:"
		}
	})
	return cfg
}
