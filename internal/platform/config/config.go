package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"idverify/internal/identity"
)

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Provider   ProviderConfig   `mapstructure:"provider"`
	Persona    PersonaConfig    `mapstructure:"persona"`
	Kora       KoraConfig       `mapstructure:"kora"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	JWTSigningKey   string        `mapstructure:"jwt_signing_key"`
	JWTIssuer       string        `mapstructure:"jwt_issuer"`
	JWTAudience     string        `mapstructure:"jwt_audience"`
	RegulatedMode   bool          `mapstructure:"regulated_mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ThresholdsConfig holds the scoring and company-name decision thresholds.
type ThresholdsConfig struct {
	AutoVerify          float64 `mapstructure:"auto_verify"`
	ManualReview        float64 `mapstructure:"manual_review"`
	AutoReject          float64 `mapstructure:"auto_reject"`
	CompanyAutoVerify   int     `mapstructure:"company_auto_verify"`
	CompanyManualReview int     `mapstructure:"company_manual_review"`
}

// Scorer returns the identity scoring thresholds.
func (t ThresholdsConfig) Scorer() identity.Thresholds {
	return identity.Thresholds{
		AutoVerify:   t.AutoVerify,
		ManualReview: t.ManualReview,
		AutoReject:   t.AutoReject,
	}
}

// ProviderConfig selects the identity provider used for lookups.
type ProviderConfig struct {
	Active  string        `mapstructure:"active"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PersonaConfig configures the Persona database-verification client.
type PersonaConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Version string        `mapstructure:"version"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// KoraConfig configures the Kora identity client.
type KoraConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// RedisConfig configures the lookup cache. An empty URL selects the
// in-memory cache.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// DatabaseConfig configures profile and log storage. An empty URL selects
// the in-memory store.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	ProviderPersona = "persona"
	ProviderKora    = "kora"
)

// Load reads configuration from an optional idverify.yaml and IDVERIFY_*
// environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("idverify")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("IDVERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.jwt_signing_key", "dev-secret-key-change-in-production")
	v.SetDefault("server.jwt_issuer", "idverify")
	v.SetDefault("server.jwt_audience", "idverify")
	v.SetDefault("server.regulated_mode", false)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("thresholds.auto_verify", 85.0)
	v.SetDefault("thresholds.manual_review", 70.0)
	v.SetDefault("thresholds.auto_reject", 50.0)
	v.SetDefault("thresholds.company_auto_verify", 90)
	v.SetDefault("thresholds.company_manual_review", 70)
	v.SetDefault("provider.active", ProviderPersona)
	v.SetDefault("provider.timeout", "30s")
	v.SetDefault("persona.api_key", "")
	v.SetDefault("persona.base_url", "https://withpersona.com/api/v1")
	v.SetDefault("persona.version", "2023-01-05")
	v.SetDefault("persona.timeout", "30s")
	v.SetDefault("kora.secret_key", "")
	v.SetDefault("kora.base_url", "https://api.korapay.com/merchant/api/v1")
	v.SetDefault("kora.timeout", "30s")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.cache_ttl", "5m")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if err := c.Thresholds.Scorer().Validate(); err != nil {
		return eris.Wrap(err, "config: thresholds")
	}
	t := c.Thresholds
	if t.CompanyManualReview < 0 || t.CompanyManualReview > t.CompanyAutoVerify || t.CompanyAutoVerify > 100 {
		return eris.New("config: company thresholds must satisfy 0 <= manual_review <= auto_verify <= 100")
	}
	switch c.Provider.Active {
	case ProviderPersona, ProviderKora:
	default:
		return eris.Errorf("config: unknown provider %q", c.Provider.Active)
	}
	if c.Provider.Timeout <= 0 {
		return eris.New("config: provider.timeout must be positive")
	}
	if c.Server.RegulatedMode && c.Server.JWTSigningKey == "dev-secret-key-change-in-production" {
		return eris.New("config: regulated mode requires a real jwt_signing_key")
	}
	return nil
}
