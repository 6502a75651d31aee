package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seitarof/gen-dtl/internal/cli"
	"github.com/seitarof/gen-dtl/internal/generator"
	"github.com/seitarof/gen-dtl/internal/schema"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	logger := newLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	var g generator.Generator
	if cfg.Check {
		g = generator.NewChecker(generator.NewFileReader())
	} else {
		g = generator.New(generator.NewFileWriter())
	}

	runner := cli.NewRunner(schema.New(), g, logger)
	if err := runner.Run(cfg); err != nil {
		logger.Errorw("gen-dtl failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(level string) *zap.SugaredLogger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.Encoding = "console"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return logger.Sugar()
}
