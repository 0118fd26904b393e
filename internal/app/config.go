package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/raysh454/caselookup/internal/fetcher"
	"github.com/raysh454/caselookup/internal/prefs"
	"github.com/raysh454/caselookup/internal/server"
	"github.com/raysh454/caselookup/internal/webclient"
)

// EnvPrefix prefixes every environment override except PORT.
const EnvPrefix = "CASELOOKUP"

// Config aggregates the per-package configuration of every component.
type Config struct {
	LogLevel  string
	LogFormat string

	ServerCfg    server.Config
	WebClientCfg webclient.Config
	FetcherCfg   fetcher.Config

	// PrefsPath is the sqlite file holding terminal client preferences.
	PrefsPath string

	// ClientEndpoint is the lookup service the terminal client talks to.
	ClientEndpoint string
}

// DefaultConfig returns a Config populated with development defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "json",
		ServerCfg:      server.DefaultConfig(),
		WebClientCfg:   webclient.DefaultConfig(),
		FetcherCfg:     fetcher.DefaultConfig(),
		PrefsPath:      prefs.DefaultPath,
		ClientEndpoint: "http://localhost:3000",
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("port", 3000)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("webclient.backend", string(d.WebClientCfg.Client))
	v.SetDefault("webclient.timeout", d.WebClientCfg.Timeout.String())
	v.SetDefault("webclient.user_agent", d.WebClientCfg.UserAgent)
	v.SetDefault("fetcher.max_concurrency", d.FetcherCfg.MaxConcurrency)
	v.SetDefault("locator.case_url_template", d.ServerCfg.CaseURLTemplate)
	v.SetDefault("prefs.path", d.PrefsPath)
	v.SetDefault("client.endpoint", d.ClientEndpoint)
}

// LoadConfig layers defaults, an optional config file and the environment.
// With an empty configFile, caselookup.{toml,yaml,json} is looked up in the
// working directory and ~/.caselookup; a missing file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "PORT"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("caselookup")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.caselookup")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	port := v.GetInt("port")
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid port %q", v.GetString("port"))
	}
	cfg.ServerCfg.ListenAddr = fmt.Sprintf(":%d", port)
	cfg.ServerCfg.CaseURLTemplate = v.GetString("locator.case_url_template")

	cfg.LogLevel = v.GetString("log_level")
	cfg.LogFormat = v.GetString("log_format")

	cfg.WebClientCfg.Client = webclient.Client(strings.ToLower(v.GetString("webclient.backend")))
	cfg.WebClientCfg.UserAgent = v.GetString("webclient.user_agent")
	timeout, err := time.ParseDuration(v.GetString("webclient.timeout"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid webclient.timeout %q", v.GetString("webclient.timeout"))
	}
	cfg.WebClientCfg.Timeout = timeout

	cfg.FetcherCfg.MaxConcurrency = v.GetInt("fetcher.max_concurrency")
	if cfg.FetcherCfg.MaxConcurrency <= 0 {
		return nil, fmt.Errorf("fetcher.max_concurrency must be positive, got %d", cfg.FetcherCfg.MaxConcurrency)
	}

	cfg.PrefsPath = v.GetString("prefs.path")
	cfg.ClientEndpoint = v.GetString("client.endpoint")
	return cfg, nil
}
