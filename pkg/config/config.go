package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/spicy-pepper-shop/pkg/env"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Server  ServerConfig
	Admin   AdminConfig
	Metrics MetricsConfig
	Client  ClientConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.App.Port = env.First(cfg.App.Port, EnvPort)
	if strings.TrimSpace(cfg.App.Port) == "" {
		return nil, fmt.Errorf("%s must not be empty", EnvAppPort)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SPS_APP_ENV" default:"dev"`
	Port         string `envconfig:"SPS_APP_PORT" default:"3333"`
	PublicURL    string `envconfig:"SPS_PUBLIC_URL" default:"http://localhost:3333"`
	LogLevel     string `envconfig:"SPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Addr is the listen address derived from the configured port.
func (a AppConfig) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(a.Port), ":")
}

type ServerConfig struct {
	ReadTimeout     time.Duration `envconfig:"SPS_SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SPS_SERVER_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SPS_SERVER_SHUTDOWN_TIMEOUT" default:"5s"`
}

// AdminConfig holds the literal credentials accepted by the reset endpoint.
type AdminConfig struct {
	Name     string `envconfig:"SPS_ADMIN_NAME" default:"admin"`
	Password string `envconfig:"SPS_ADMIN_PASSWORD" default:"admin"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"SPS_METRICS_ENABLED" default:"true"`
}

// ClientConfig configures the storefront tooling that talks to a running API.
type ClientConfig struct {
	APIBaseURL string        `envconfig:"SPS_API_BASE_URL" default:"http://localhost:3333/api"`
	SessionDir string        `envconfig:"SPS_SESSION_DIR" default:".storefront"`
	Timeout    time.Duration `envconfig:"SPS_CLIENT_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL         string        `envconfig:"SPS_REDIS_URL"`
	DialTimeout time.Duration `envconfig:"SPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	SessionTTL  time.Duration `envconfig:"SPS_REDIS_SESSION_TTL" default:"0s"`
}

// Enabled reports whether a Redis URL was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}
