package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable prefix for all settings.
const envPrefix = "AUTHKIT"

// LoaderConfig holds optional file overrides for Load.
type LoaderConfig struct {
	ConfigFile string // explicit YAML config path (optional)
	EnvFile    string // explicit .env path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// envBindings maps viper keys to the environment variables that feed them.
// The short AUTHKIT_* names match what deployments of the original SDK export.
var envBindings = map[string][]string{
	"provider.domain":        {"AUTHKIT_DOMAIN", "AUTHKIT_PROVIDER_DOMAIN"},
	"provider.client_id":     {"AUTHKIT_CLIENT_ID"},
	"provider.client_secret": {"AUTHKIT_CLIENT_SECRET"},
	"provider.redirect_uri":  {"AUTHKIT_REDIRECT_URI"},

	"middleware.base_path":                     {"AUTHKIT_BASE_PATH"},
	"middleware.unauthenticated_redirect_path": {"AUTHKIT_UNAUTHENTICATED_REDIRECT_PATH"},
	"middleware.logged_in_redirect_path":       {"AUTHKIT_LOGGED_IN_REDIRECT_PATH"},
	"middleware.logged_out_redirect_path":      {"AUTHKIT_LOGGED_OUT_REDIRECT_PATH"},

	"session.access_token_name": {"AUTHKIT_ACCESS_TOKEN_COOKIE"},
	"session.id_token_name":     {"AUTHKIT_ID_TOKEN_COOKIE"},

	"log.level":  {"AUTHKIT_LOG_LEVEL"},
	"log.format": {"AUTHKIT_LOG_FORMAT"},
	"log.output": {"AUTHKIT_LOG_OUTPUT"},
}

// Load reads configuration from an optional YAML file, an optional .env file,
// and the environment, then applies defaults and validates.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if envFile := resolveEnvFile(lc.EnvFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load .env file %s: %v\n", envFile, err)
		}
	}

	v := viper.New()

	if configFile := resolveConfigFile(lc.ConfigFile); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigFile returns the explicit path, or the first config.yml found
// in standard locations, or "".
func resolveConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, path := range []string{"./config/config.yml", "./config.yml"} {
		if exists(path) {
			return path
		}
	}
	return ""
}

// resolveEnvFile returns the explicit path, or ./.env if present, or "".
func resolveEnvFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if exists("./.env") {
		return "./.env"
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
