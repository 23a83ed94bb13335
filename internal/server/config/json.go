package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/joggingtracker/internal/flagx"
	"github.com/dmitrijs2005/joggingtracker/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	MetricsAddr                 string         `json:"metrics_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	TokenIssuer                 string         `json:"token_issuer"`
	TokenAudience               string         `json:"token_audience"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	SessionCookieName           string         `json:"session_cookie_name"`
	LogLevel                    string         `json:"log_level"`
	LogFormat                   string         `json:"log_format"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	AdminUserName               string         `json:"admin_user"`
	AdminPassword               string         `json:"admin_password"`
}

// parseJson loads configuration values from the file named by -c / -config
// into config. Fields absent from the file keep their current value.
// Unreadable files and invalid JSON panic: both are startup errors.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TokenIssuer, c.TokenIssuer)
	setString(&config.TokenAudience, c.TokenAudience)
	setString(&config.SessionCookieName, c.SessionCookieName)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.AdminUserName, c.AdminUserName)
	setString(&config.AdminPassword, c.AdminPassword)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
