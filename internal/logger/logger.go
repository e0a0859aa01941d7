package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the gateway's structured logger. Development gets colored
// console output; production gets JSON on stdout so container log
// collectors can parse it.
func New(env string) (*zap.Logger, error) {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.Encoding = "json"
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", "gvnatural-gateway")), nil
}

// NewWithDefaults creates a logger from the SERVER_ENV environment
// variable, falling back to a plain production logger if that fails.
func NewWithDefaults() *zap.Logger {
	env := os.Getenv("SERVER_ENV")
	if env == "" {
		env = "development"
	}

	logger, err := New(env)
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return logger
}
