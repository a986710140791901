// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for everything except the runtime environment name.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix TRAVELCARD_.
	Keys are lowercased, the prefix is removed and a double underscore
	marks one level of nesting:

	  TRAVELCARD_SERVER__PORT            -> server.port
	  TRAVELCARD_UPSTREAM__OWNER_ID      -> upstream.owner_id
	  TRAVELCARD_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
*/

const (
	envPrefix    = "TRAVELCARD_"
	envDelimiter = "__"
)

// listKeys are split on commas when read from the environment.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Upstream      UpstreamConfig       `koanf:"upstream" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds. A zero WriteTimeout disables it, so a response
// can wait on the upstream for as long as Upstream.Timeout allows.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=0"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// UpstreamConfig describes the transit GraphQL API the lookup is forwarded to.
//
// The header values identify this deployment to the operator. OwnerID ties
// the service to a single transit operator tenant.
type UpstreamConfig struct {
	URL            string `koanf:"url" validate:"required,url"`
	OwnerID        string `koanf:"owner_id" validate:"required"`
	ClientPlatform string `koanf:"client_platform" validate:"required"`
	ClientVersion  string `koanf:"client_version" validate:"required"`
	AcceptLanguage string `koanf:"accept_language" validate:"required"`

	// Timeout bounds a single upstream call. Zero keeps the http.Client
	// default, which is no timeout at all.
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
}

// DefaultConfig returns the configuration used before env vars are applied.
// Primary.Env has no default and must always be provided.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        10,
			WriteTimeout:       0,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Upstream: UpstreamConfig{
			URL:            "https://ruter-api.transhub.io/graphql",
			OwnerID:        "AGDER",
			ClientPlatform: "web",
			ClientVersion:  "1.0.0",
			AcceptLanguage: "en",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix TRAVELCARD_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into Config
//   - Validates required config blocks/fields
//   - Overrides observability service name + environment
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		key = strings.ReplaceAll(key, envDelimiter, ".")

		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	// Unmarshal only touches keys that were present in the environment,
	// so anything unset keeps its default.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Force service name and environment regardless of what was set, so
	// logs and traces always carry consistent naming.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
