package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the storefront API.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// Locale drives money formatting in customer-facing strings.
	Locale string `mapstructure:"LOCALE" default:"en-IN"`
	// TracingEnabled turns on the OpenTelemetry stdout exporter.
	TracingEnabled bool `mapstructure:"TRACING_ENABLED" default:"false"`

	Session  SessionConfig  `mapstructure:",squash"`
	Identity IdentityConfig `mapstructure:",squash"`
	Auth     AuthConfig     `mapstructure:",squash"`
	Orders   OrdersConfig   `mapstructure:",squash"`
}

// SessionConfig controls where per-session state (cart, orders, sign-in) is kept.
type SessionConfig struct {
	// RedisURL selects the Redis store. Empty keeps state in process memory.
	RedisURL string `mapstructure:"REDIS_URL"`
	// TTL is how long an idle session survives.
	TTL time.Duration `mapstructure:"SESSION_TTL" default:"24h"`
}

// IdentityConfig holds the identity provider credentials.
type IdentityConfig struct {
	// URL is the base URL of the identity toolkit REST API.
	URL string `mapstructure:"IDENTITY_URL" default:"https://identitytoolkit.googleapis.com/v1"`
	// APIKey is the project API key sent with every call.
	APIKey string `mapstructure:"IDENTITY_API_KEY" required:"true"`
	// Timeout bounds each outbound identity request.
	Timeout time.Duration `mapstructure:"IDENTITY_TIMEOUT" default:"10s"`
}

// AuthConfig holds access token settings.
type AuthConfig struct {
	// JWTSecret signs access tokens (HS256).
	JWTSecret string `mapstructure:"JWT_SECRET" required:"true"`
	// JWTTTL is the access token lifetime.
	JWTTTL time.Duration `mapstructure:"JWT_TTL" default:"24h"`
}

// OrdersConfig tunes the simulated fulfilment.
type OrdersConfig struct {
	// AdvanceInterval is the period between order status advancements.
	AdvanceInterval time.Duration `mapstructure:"ORDER_ADVANCE_INTERVAL" default:"5s"`
	// PaymentDelay is how long the simulated gateway takes to answer.
	PaymentDelay time.Duration `mapstructure:"PAYMENT_DELAY" default:"2s"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags binds every tagged field to its env key and registers defaults.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
