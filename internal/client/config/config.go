package config

import "time"

// Config holds runtime settings for the jogging tracker CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - Token: bearer token sent with every call; printed by "login".
//   - RequestTimeout: deadline applied to each call.
type Config struct {
	ServerEndpointAddr string        `env:"JOGGING_SERVER_ADDR"`
	Token              string        `env:"JOGGING_TOKEN"`
	RequestTimeout     time.Duration `env:"JOGGING_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Token = ""
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
