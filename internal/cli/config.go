package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/bannerforge/bannerforge/pkg/cache"
	"github.com/bannerforge/bannerforge/pkg/errors"
	"github.com/bannerforge/bannerforge/pkg/fontpack"
	"github.com/bannerforge/bannerforge/pkg/inline"
	"github.com/bannerforge/bannerforge/pkg/store"
	"github.com/bannerforge/bannerforge/pkg/store/filesystem"
	"github.com/bannerforge/bannerforge/pkg/store/memory"
	"github.com/bannerforge/bannerforge/pkg/store/mongo"
)

// appName is the application name used for directories and display.
const appName = "bannerforge"

// Config is the TOML configuration file, typically at
// ~/.config/bannerforge/config.toml. All sections are optional; the zero
// value is a working configuration.
type Config struct {
	Fonts fontpack.Manifest `toml:"fonts"`
	Cache CacheConfig       `toml:"cache"`
	Fetch FetchConfig       `toml:"fetch"`
	Store StoreConfig       `toml:"store"`
	Serve ServeConfig       `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", "null".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory (default: XDG cache dir).
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// FetchConfig configures remote resource fetching.
type FetchConfig struct {
	// Timeout is the per-resource fetch timeout, e.g. "10s".
	Timeout duration `toml:"timeout"`
}

// StoreConfig selects and configures the banner store backend.
type StoreConfig struct {
	// Backend is one of "filesystem" (default), "memory", "mongo".
	Backend string `toml:"backend"`

	// Dir overrides the filesystem store directory.
	Dir string `toml:"dir"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// duration wraps time.Duration for TOML string values like "10s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// defaultConfigPath returns ~/.config/bannerforge/config.toml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields the zero config; a missing
// explicit file is an error.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load config %s", path)
	}
	return cfg, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/bannerforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// openCache builds the cache backend from config. noCache forces the null
// backend. File cache failures degrade to the null backend instead of
// failing the command.
func openCache(ctx context.Context, cfg *Config, noCache bool, logger *log.Logger) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == "null" {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	case "", "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
			return cache.NewNullCache(), nil
		}
		return c, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend: %q (must be 'file', 'redis', or 'null')", cfg.Cache.Backend)
	}
}

// openStore builds the banner store backend from config.
func openStore(ctx context.Context, cfg *Config, logger *log.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return memory.NewStore(), nil
	case "mongo":
		return mongo.NewStore(ctx, mongo.Config{
			URI:        cfg.Store.Mongo.URI,
			Database:   cfg.Store.Mongo.Database,
			Collection: cfg.Store.Mongo.Collection,
		})
	case "", "filesystem":
		st, err := filesystem.NewStore(cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		logger.Debug("using filesystem store", "dir", st.Path())
		return st, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown store backend: %q (must be 'filesystem', 'memory', or 'mongo')", cfg.Store.Backend)
	}
}

// fetchTimeout returns the configured fetch timeout or the default.
func fetchTimeout(cfg *Config) time.Duration {
	if cfg.Fetch.Timeout.Duration > 0 {
		return cfg.Fetch.Timeout.Duration
	}
	return inline.DefaultFetchTimeout
}
