package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int    `mapstructure:"WEBSERVER_PORT" validate:"gte=0,lte=65535"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	PublicURL     string `mapstructure:"PUBLIC_URL" validate:"omitempty,url"`

	// Database Configuration
	DatabaseDSN     string `mapstructure:"DATABASE_DSN" validate:"required"`
	DatabaseRetries int    `mapstructure:"DATABASE_RETRIES" validate:"gte=1"`

	// Contact details are sealed at rest with this key (64 hex chars). Only
	// the web server and bandctl need it.
	EncryptionKey    string `mapstructure:"ENCRYPTION_KEY" validate:"omitempty,len=64,hexadecimal"`
	EncryptionCipher string `mapstructure:"ENCRYPTION_CIPHER" validate:"omitempty,oneof=chacha20-poly1305 xchacha20-poly1305 aes-256-gcm"`

	Tracing Tracing `mapstructure:",squash"`

	// Uploaded gallery photos and videos, served under /media/
	MediaDir string `mapstructure:"MEDIA_DIR"`

	// Testimonial autoplay period
	CarouselInterval time.Duration `mapstructure:"CAROUSEL_INTERVAL" validate:"gt=0"`
}

// Tracing configures the OTLP/HTTP exporter. Tracing is off unless an
// endpoint URL is set.
type Tracing struct {
	Endpoint    string `mapstructure:"OTEL_ENDPOINT" validate:"omitempty,url"`
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

// Enabled reports whether spans should be exported.
func (t Tracing) Enabled() bool { return t.Endpoint != "" }

// LogValue keeps secrets out of the startup log.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("webserver_port", c.WebServerPort),
		slog.String("public_url", c.PublicURL),
		slog.Int("database_retries", c.DatabaseRetries),
		slog.Bool("database_dsn_set", c.DatabaseDSN != ""),
		slog.Bool("session_secret_set", c.SessionSecret != ""),
		slog.String("media_dir", c.MediaDir),
		slog.String("encryption_cipher", c.EncryptionCipher),
		slog.String("otel_endpoint", c.Tracing.Endpoint),
		slog.Duration("carousel_interval", c.CarouselInterval),
	)
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		tag := field.Tag.Get("mapstructure")
		squashed := tag == "" || tag == ",squash"

		if !squashed {
			viper.BindEnv(tag)
		}

		// Handle nested structs
		if field.Type.Kind() == reflect.Struct && squashed {
			nestedTyp := fieldVal.Type()
			for j := 0; j < fieldVal.NumField(); j++ {
				nestedField := nestedTyp.Field(j)
				nestedTag := nestedField.Tag.Get("mapstructure")
				if nestedTag != "" {
					viper.BindEnv(nestedTag)
				}
			}
		}
	}
	slog.Debug("Environment variables bound")
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("WEBSERVER_PORT", 8080)
	viper.SetDefault("DATABASE_RETRIES", 10)
	viper.SetDefault("ENCRYPTION_CIPHER", "chacha20-poly1305")
	viper.SetDefault("OTEL_SERVICE_NAME", "diamondband-web")
	viper.SetDefault("CAROUSEL_INTERVAL", "5s")
	viper.SetDefault("MEDIA_DIR", "media")

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.InfoContext(ctx, "Loaded configuration", "config", cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
