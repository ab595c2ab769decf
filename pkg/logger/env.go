package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/logkit/pkg/severity"
)

// envConfig is the environment surface of the logger factory. Severity
// parses through its TextUnmarshaler, so LOG_LEVEL accepts any level
// name case-insensitively.
type envConfig struct {
	Level  severity.Severity `env:"LOG_LEVEL" envDefault:"INFO"`
	Format string            `env:"LOG_FORMAT" envDefault:"json"`
	Label  string            `env:"LOG_LABEL"`
	Output string            `env:"LOG_OUTPUT" envDefault:"stdout"`
}

var defaultEnvLoaded sync.Once

// NewFromEnv creates a Logger configured from LOG_LEVEL, LOG_FORMAT,
// LOG_LABEL, and LOG_OUTPUT, loading a .env file once per process when
// one exists. Explicit options are applied after the environment and win
// on conflict. Invalid environment values fail fast with ErrEnvConfig.
func NewFromEnv(opts ...Option) (*Logger, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional; absence is not an error.
		_ = godotenv.Load()
	})

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrEnvConfig, err)
	}

	format := Format(cfg.Format)
	switch format {
	case FormatJSON, FormatText:
	default:
		return nil, fmt.Errorf("%w: unknown LOG_FORMAT %q", ErrEnvConfig, cfg.Format)
	}

	output, err := parseOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithLevel(cfg.Level),
		WithFormat(format),
		WithLabel(cfg.Label),
		WithOutput(output),
	}
	return New(append(base, opts...)...), nil
}

func parseOutput(name string) (io.Writer, error) {
	switch name {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "discard":
		return io.Discard, nil
	default:
		return nil, fmt.Errorf("%w: unknown LOG_OUTPUT %q", ErrEnvConfig, name)
	}
}
