package walletauthgw

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr      string            `json:"listen_addr" env:"WALLETGW_LISTEN_ADDR"`
	NonceSecret     string            `json:"nonce_secret" env:"WALLETGW_NONCE_SECRET"`
	TokenSecret     string            `json:"token_secret" env:"WALLETGW_TOKEN_SECRET"`
	NonceTTLSeconds int               `json:"nonce_ttl_seconds" env:"WALLETGW_NONCE_TTL_SECONDS"`
	TokenTTLHours   int               `json:"token_ttl_hours" env:"WALLETGW_TOKEN_TTL_HOURS"`
	HostMapping     map[string]string `json:"host_mapping"`
	EnableCORS      bool              `json:"enable_cors" env:"WALLETGW_ENABLE_CORS"`
	CorsOrigins     []string          `json:"cors_origins" env:"WALLETGW_CORS_ORIGINS"`
	LogLevel        string            `json:"log_level" env:"WALLETGW_LOG_LEVEL"`
	LogFormat       string            `json:"log_format" env:"WALLETGW_LOG_FORMAT"`
}

// NewConfig reads the JSON config file and applies environment overrides on
// top of it, so container deployments can tweak a baked-in file.
func NewConfig(path string) (*Config, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(body, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8000"
	}
	if c.NonceTTLSeconds == 0 {
		c.NonceTTLSeconds = 180
	}
	if c.TokenTTLHours == 0 {
		c.TokenTTLHours = 30 * 24
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

func (c *Config) validate() error {
	if c.NonceSecret == "" {
		return fmt.Errorf("nonce_secret is required")
	}
	if c.TokenSecret == "" {
		return fmt.Errorf("token_secret is required")
	}
	if c.EnableCORS && len(c.CorsOrigins) == 0 {
		return fmt.Errorf("enable_cors set but cors_origins is empty")
	}
	return nil
}
