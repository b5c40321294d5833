package server

import (
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/labeleval/pkg/stringsutil"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        int      `envconfig:"LABELEVAL_PORT" default:"8080"`
	UseHttp2    bool     `envconfig:"LABELEVAL_USE_HTTP2" default:"false"`
	CorsOrigins []string `envconfig:"LABELEVAL_CORS_ORIGINS" default:"*"`
	// SpecPath is the evaluation spec served when a request carries none.
	SpecPath string `envconfig:"LABELEVAL_SPEC"`
	// DataDir holds every file a request spec may read. Request specs are
	// refused when it is unset.
	DataDir string `envconfig:"LABELEVAL_DATA_DIR"`
}

// LoadConfig reads the server settings from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	cfg.CorsOrigins = stringsutil.TrimNonEmpty(cfg.CorsOrigins)
	if len(cfg.CorsOrigins) == 0 {
		cfg.CorsOrigins = []string{"*"}
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}
	return &cfg, nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
