package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Map       MapConfig       `koanf:"map"`
	Logging   LoggingConfig   `koanf:"logging"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"omitempty,hostname|ip"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Mode            string        `koanf:"mode" validate:"oneof=debug release test"` // gin mode
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DataConfig locates the static datasets loaded at startup
type DataConfig struct {
	TabularPath string `koanf:"tabular_path" validate:"required"` // .xlsx, .csv or .db/.sqlite
	GeoPath     string `koanf:"geo_path" validate:"required"`     // GeoJSON FeatureCollection
	Sheet       string `koanf:"sheet"`                            // workbook sheet, first sheet when empty
	Table       string `koanf:"table" validate:"omitempty,max=64"`
	IDColumn    string `koanf:"id_column" validate:"required"`
}

// MapConfig controls the initial framing of the choropleth
type MapConfig struct {
	DefaultZoom  float64 `koanf:"default_zoom" validate:"min=0,max=22"`
	SelectedZoom float64 `koanf:"selected_zoom" validate:"min=0,max=22"`
	Style        string  `koanf:"style"`
}

// LoggingConfig is passed to logging.Init
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// RateLimitConfig limits requests per client IP
type RateLimitConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Requests int           `koanf:"requests" validate:"min=1"`
	Window   time.Duration `koanf:"window" validate:"gt=0"`
}

// Addr returns the host:port pair the server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
