package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPServer HTTPServer
	Provider   Provider
	History    History
	Redis      Redis
	Log        Log
}

type HTTPServer struct {
	Port        string        `env:"HTTP_PORT" env-default:"8082"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"2m"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Provider struct {
	URL               string        `env:"PROVIDER_URL" env-default:"https://api.frankfurter.app"`
	ConversionTimeout time.Duration `env:"PROVIDER_CONVERSION_TIMEOUT" env-default:"15s"`
	HistoryTimeout    time.Duration `env:"PROVIDER_HISTORY_TIMEOUT" env-default:"20s"`
}

type History struct {
	DefaultDays int `env:"HISTORY_DEFAULT_DAYS" env-default:"30"`
	MaxDays     int `env:"HISTORY_MAX_DAYS" env-default:"3650"`
}

// Redis is optional: an empty Host disables event publishing.
type Redis struct {
	Host     string `env:"REDIS_HOST"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	Channel  string `env:"REDIS_CHANNEL" env-default:"calibration_completed"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" env-default:"debug"`
}

func NewConfig() *Config {
	cfg, err := Load(".env")
	if err != nil {
		log.Fatal("Error reading env: ", err)
	}

	return cfg
}

// Load reads the optional dotenv file and then the process environment.
func Load(envFile string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load(envFile)

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func (r Redis) Enabled() bool {
	return r.Host != ""
}

// LogValue keeps the Redis password out of start-up logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("http_server", c.HTTPServer),
		slog.Any("provider", c.Provider),
		slog.Any("history", c.History),
		slog.Group("redis",
			slog.String("host", c.Redis.Host),
			slog.Int("db", c.Redis.DB),
			slog.String("channel", c.Redis.Channel),
		),
		slog.String("log_level", c.Log.Level),
	)
}
