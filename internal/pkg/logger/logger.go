// Package logger builds the application zap logger.
//
// Entries are written as JSON to a size-rotated file and mirrored to stdout.
// Outside production the console copy uses the human readable development
// encoder.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how the logger writes.
type Config struct {
	// FilePath is the rotated JSON log file. Empty disables the file core.
	FilePath string

	// Production switches the console core to the JSON encoder and raises
	// its level to info.
	Production bool
}

// New creates a logger teeing a rotated file core with a console core.
//
// Example:
//
//	log := logger.New(logger.Config{FilePath: "logs/bookstore.log"})
//	defer func() { _ = log.Sync() }()
//	log.Info("server started", zap.String("port", "8080"))
func New(cfg Config) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	consoleEncoder := jsonEncoder
	consoleLevel := zapcore.InfoLevel
	if !cfg.Production {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		consoleLevel = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), consoleLevel),
	}

	if cfg.FilePath != "" {
		cores = append(cores, zapcore.NewCore(
			jsonEncoder,
			zapcore.AddSync(newRotator(cfg.FilePath)),
			zapcore.InfoLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// NewFileOnly creates a logger that writes JSON entries to the rotated file
// only. The conversation transcript sink uses it to keep chat text out of
// the service log.
func NewFileOnly(filePath string) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(newRotator(filePath)),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}

func newRotator(filePath string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
}
