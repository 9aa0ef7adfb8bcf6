// Package logger создаёт zap-логгер в зависимости от режима запуска.
package logger

import (
	"fmt"

	"github.com/aseptimu/shortyurl/internal/app/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New возвращает JSON-логгер для боевого режима и консольный для остальных.
func New(mode, level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if mode == config.ModeProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
