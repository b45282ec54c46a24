package config

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"localhost"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
	// RO rejects every write request.
	Mode string `env:"HTTP_MODE" envDefault:"RW"`
}

type RedisCache struct {
	Host     string `env:"REDIS_HOST" envDefault:"redis"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:"shared"`
	// Prefix of the pub/sub channel carrying round events.
	Channel string `env:"REDIS_CHANNEL" envDefault:"jukebox"`
}

type Postgres struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"admin"`
	Password string `env:"DB_PASSWORD" envDefault:"shared"`
	DBName   string `env:"DB_NAME" envDefault:"jukebox"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type SQLite struct {
	Path string `env:"SQLITE_PATH" envDefault:"jukebox.db"`
}

type Store struct {
	// postgres or sqlite
	Driver   string `env:"STORE_DRIVER" envDefault:"postgres"`
	Postgres Postgres
	SQLite   SQLite
	// Optional JSON file with the option catalog, upserted on start.
	CatalogPath string `env:"CATALOG_PATH"`
}

type Auth struct {
	ModeratorCode string        `env:"AUTH_MODERATOR_CODE" envDefault:"moderator"`
	ConductorCode string        `env:"AUTH_CONDUCTOR_CODE" envDefault:"conductor"`
	SessionTTL    time.Duration `env:"AUTH_SESSION_TTL" envDefault:"12h"`
	// ";" separated base URLs of standalone auth instances. When set, token
	// checks go to them instead of the local session cache.
	Servers string `env:"AUTH_SERVERS"`
}

type Round struct {
	DefaultDuration time.Duration `env:"ROUND_DEFAULT_DURATION" envDefault:"45s"`
}

const (
	ArchiveOff  = "off"
	ArchiveReal = "real"
	ArchiveMock = "mock"
)

// Archive keeps a JSON copy of every closed round result in an S3 bucket.
type Archive struct {
	// off, real or mock. mock talks to an S3-compatible endpoint with
	// static credentials.
	ClientType string `env:"S3_CLIENT_TYPE" envDefault:"off"`
	Endpoint   string `env:"MOCK_S3_ENDPOINT" envDefault:"http://mock-s3-server:9090"`
	Bucket     string `env:"ARCHIVE_BUCKET" envDefault:"jukebox-results"`
	Prefix     string `env:"ARCHIVE_PREFIX" envDefault:"results"`
}

type Config struct {
	HTTP    HTTPServer
	Redis   RedisCache
	Store   Store
	Auth    Auth
	Round   Round
	Archive Archive
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("%s %v", logtag, err)
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg.masked())
	return cfg
}

// Parse reads the configuration from the process environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Store.Driver != "postgres" && cfg.Store.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	switch cfg.Archive.ClientType {
	case ArchiveOff, ArchiveReal, ArchiveMock:
	default:
		return nil, fmt.Errorf("unsupported archive client type %q", cfg.Archive.ClientType)
	}
	if cfg.Round.DefaultDuration <= 0 {
		return nil, fmt.Errorf("round default duration must be positive, got %s", cfg.Round.DefaultDuration)
	}
	return cfg, nil
}

func (c *Config) ArchiveEnabled() bool {
	return c.Archive.ClientType != ArchiveOff
}

func (c *Config) ReadOnly() bool {
	return c.HTTP.Mode == "RO"
}

func (c Config) masked() Config {
	const mask = "***"
	if c.Redis.Password != "" {
		c.Redis.Password = mask
	}
	if c.Store.Postgres.Password != "" {
		c.Store.Postgres.Password = mask
	}
	c.Auth.ModeratorCode = mask
	c.Auth.ConductorCode = mask
	return c
}
