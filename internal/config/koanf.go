package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config files searched when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps environment variables to koanf paths.
// PORT is the variable hosting platforms inject.
var envMappings = map[string]string{
	"server_host":             "server.host",
	"port":                    "server.port",
	"gin_mode":                "server.mode",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",
	"data_tabular_path":       "data.tabular_path",
	"data_geo_path":           "data.geo_path",
	"data_sheet":              "data.sheet",
	"data_table":              "data.table",
	"data_id_column":          "data.id_column",
	"map_default_zoom":        "map.default_zoom",
	"map_selected_zoom":       "map.selected_zoom",
	"map_style":               "map.style",
	"log_level":               "logging.level",
	"log_format":              "logging.format",
	"rate_limit_enabled":      "rate_limit.enabled",
	"rate_limit_requests":     "rate_limit.requests",
	"rate_limit_window":       "rate_limit.window",
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8050,
			Mode:            "release",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Data: DataConfig{
			TabularPath: "data/Dados_energia_solar.xlsx",
			GeoPath:     "data/Dados_energia_solar.geojson",
			Table:       "parcels",
			IDColumn:    "OBJECTID",
		},
		Map: MapConfig{
			DefaultZoom:  12,
			SelectedZoom: 15,
			Style:        "open-street-map",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 120,
			Window:   time.Minute,
		},
	}
}

// Load 加载配置
//
// Sources are layered: built-in defaults, then the optional YAML file, then
// environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc returns "" for variables the application does not read,
// which makes the env provider skip them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
