// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import "time"

// Config holds runtime settings for the jogging tracker server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - MetricsAddr: bind address for /metrics and /healthz. Empty disables it.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - TokenIssuer / TokenAudience: fixed iss/aud values, validated on decode.
//   - AccessTokenValidityDuration: token lifetime.
//   - SessionCookieName: cookie cleared on logout.
//   - LogLevel / LogFormat: see logging.New.
//   - BcryptCost: work factor for password hashes.
//   - AdminUserName / AdminPassword: when both are set, an Admin account with
//     these credentials is created at startup unless the name is taken.
type Config struct {
	EndpointAddrGRPC            string        `env:"JOGGING_GRPC_ADDR"`
	MetricsAddr                 string        `env:"JOGGING_METRICS_ADDR"`
	DatabaseDSN                 string        `env:"JOGGING_DATABASE_DSN"`
	SecretKey                   string        `env:"JOGGING_SECRET_KEY"`
	TokenIssuer                 string        `env:"JOGGING_TOKEN_ISSUER"`
	TokenAudience               string        `env:"JOGGING_TOKEN_AUDIENCE"`
	AccessTokenValidityDuration time.Duration `env:"JOGGING_TOKEN_VALIDITY"`
	SessionCookieName           string        `env:"JOGGING_SESSION_COOKIE"`
	LogLevel                    string        `env:"JOGGING_LOG_LEVEL"`
	LogFormat                   string        `env:"JOGGING_LOG_FORMAT"`
	BcryptCost                  int           `env:"JOGGING_BCRYPT_COST"`
	AdminUserName               string        `env:"JOGGING_ADMIN_USER"`
	AdminPassword               string        `env:"JOGGING_ADMIN_PASSWORD"`
}

// LoadDefaults populates Config with development defaults. The secret key
// is intentionally left empty: the server refuses to start without one.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.MetricsAddr = ""
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenIssuer = "joggingtracker"
	c.TokenAudience = "joggingtracker-clients"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.SessionCookieName = "jogging_session"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.BcryptCost = 10
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (after loading an optional
// .env file) and finally command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
