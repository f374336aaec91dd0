// internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/javajoker/storefront-backend/internal/config"
)

// Setup configures the standard logrus logger from cfg. When a log file is
// configured, output goes to stdout and to a size-rotated file. The returned
// closer releases the file and is a no-op otherwise.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	return Configure(logrus.StandardLogger(), cfg, os.Stdout)
}

// Configure applies cfg to logger, writing to out plus the rotated file.
func Configure(logger *logrus.Logger, cfg config.LogConfig, out io.Writer) (io.Closer, error) {
	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File == "" {
		logger.SetOutput(out)
		return nopCloser{}, nil
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	logger.SetOutput(io.MultiWriter(out, rotator))
	return rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
