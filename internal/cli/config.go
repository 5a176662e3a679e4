// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is read from the environment. Flags override it.
type Config struct {
	LogLevel     string `env:"DPCHAIN_LOG_LEVEL" envDefault:"info"`
	LedgerPath   string `env:"DPCHAIN_LEDGER_PATH"`
	ConstantTime bool   `env:"DPCHAIN_CONSTANT_TIME" envDefault:"false"`
}

// LoadConfig parses Config from the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
