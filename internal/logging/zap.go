// Package logging builds the zap logger used across billsdr.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Modes accepted by New.
const (
	ModeDebug      = "debug"
	ModeProduction = "production"
	ModeQuiet      = "quiet"
)

// New builds a logger for mode. Debug writes colored console lines,
// quiet discards everything, any other mode writes JSON to stderr.
func New(mode string) (*zap.Logger, error) {
	var config zap.Config

	switch mode {
	case ModeQuiet:
		return zap.NewNop(), nil
	case ModeDebug:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building %s logger: %w", mode, err)
	}
	return logger, nil
}
