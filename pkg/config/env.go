package config

const (
	EnvPrefix = "SPS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv          = "SPS_APP_ENV"
	EnvAppPort         = "SPS_APP_PORT"
	EnvPort            = "PORT"
	EnvLogLevel        = "SPS_LOG_LEVEL"
	EnvAdminName       = "SPS_ADMIN_NAME"
	EnvAdminPassword   = "SPS_ADMIN_PASSWORD"
	EnvPublicURL       = "SPS_PUBLIC_URL"
	EnvMetricsEnabled  = "SPS_METRICS_ENABLED"
	EnvAPIBaseURL      = "SPS_API_BASE_URL"
	EnvSessionDir      = "SPS_SESSION_DIR"
	EnvRedisURL        = "SPS_REDIS_URL"
	EnvShutdownTimeout = "SPS_SERVER_SHUTDOWN_TIMEOUT"
)
