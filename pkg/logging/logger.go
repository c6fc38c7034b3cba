// Package logging builds the zap logger used across catalog-engine.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a logger configured for the given environment. Local
// environments get a human-readable console logger at debug level; everything
// else gets the production JSON logger.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "local" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
