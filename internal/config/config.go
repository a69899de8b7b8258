package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/timmy/mememania/internal/domain"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	MemeAPI MemeAPIConfig `mapstructure:"meme_api"`
}

type ServerConfig struct {
	Host string     `mapstructure:"host"`
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	Path string     `mapstructure:"path"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// AuthConfig holds the shared bearer secret and the caller identifier
// returned by the validate tool. Both are required.
type AuthConfig struct {
	Token    string `mapstructure:"token"`
	CallerID string `mapstructure:"caller_id"`
}

type MemeAPIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from an optional YAML file, .env and the environment.
// Parameters:
//   - configPath: explicit config file; empty searches ./configs and the working directory.
// Returns:
//   - *Config: loaded and validated configuration.
//   - error: wraps domain.ErrConfigurationMissing when a required value is absent.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Required secrets keep the names the deployment already uses
	v.BindEnv("auth.token", "AUTH_TOKEN")
	v.BindEnv("auth.caller_id", "MY_NUMBER")
	v.BindEnv("meme_api.base_url", "MEME_API_BASE_URL")
	v.BindEnv("meme_api.timeout", "MEME_API_TIMEOUT")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8086)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.path", "/mcp")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("meme_api.base_url", "https://meme-api.com")
	v.SetDefault("meme_api.timeout", 10*time.Second)
}

// Validate checks that all required values are present.
// Returns an error wrapping domain.ErrConfigurationMissing for the first absent value.
func (c *Config) Validate() error {
	if c.Auth.Token == "" {
		return fmt.Errorf("%w: please set AUTH_TOKEN in your .env file", domain.ErrConfigurationMissing)
	}
	if c.Auth.CallerID == "" {
		return fmt.Errorf("%w: please set MY_NUMBER in your .env file", domain.ErrConfigurationMissing)
	}
	if c.MemeAPI.BaseURL == "" {
		return fmt.Errorf("%w: meme_api.base_url is empty", domain.ErrConfigurationMissing)
	}
	if c.MemeAPI.Timeout <= 0 {
		return fmt.Errorf("meme_api.timeout must be positive, got %s", c.MemeAPI.Timeout)
	}
	return nil
}
