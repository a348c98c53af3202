package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"

	"github.com/mcoot/timeu6/internal/factory"
	redisstorage "github.com/mcoot/timeu6/internal/storage/redis"
)

// Config holds CLI configuration
type Config struct {
	StorageType   string        `env:"TIMEU6_STORAGE"        envDefault:"sqlite"`
	SQLitePath    string        `env:"TIMEU6_SQLITE_PATH"`
	RedisURL      string        `env:"TIMEU6_REDIS_URL"      envDefault:"redis://localhost:6379"`
	MatchDuration time.Duration `env:"TIMEU6_MATCH_DURATION" envDefault:"30m"`
	LogLevel      string        `env:"TIMEU6_LOG_LEVEL"      envDefault:"warn"`
	Output        string        `env:"TIMEU6_OUTPUT"         envDefault:"text"`
}

// LoadConfig reads TIMEU6_* environment variables over the defaults
func LoadConfig() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}
	if c.SQLitePath == "" {
		c.SQLitePath = defaultSQLitePath()
	}
	return &c, nil
}

// FactoryConfig translates the CLI settings into application wiring
func (c *Config) FactoryConfig(logger *slog.Logger) (factory.Config, error) {
	fc := factory.Config{
		Logger:        logger,
		StorageType:   c.StorageType,
		MatchDuration: c.MatchDuration,
	}

	switch c.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		if err := os.MkdirAll(filepath.Dir(c.SQLitePath), 0o700); err != nil {
			return fc, errors.Wrap(err, "create data directory")
		}
		fc.SQLitePath = c.SQLitePath
	}
	return fc, nil
}

// NewLogger builds the JSON logger at the configured level
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".timeu6", "timeu6.db")
	}
	return filepath.Join(home, ".timeu6", "timeu6.db")
}
