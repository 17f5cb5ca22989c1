package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger installs a JSON production logger as the zap global and returns
// its sugared form.
func InitLogger(namespace, environment, logLevel string) *zap.SugaredLogger {
	var zapLogLevel zapcore.Level = zap.InfoLevel
	if logLevel == "debug" {
		zapLogLevel = zap.DebugLevel
	}

	zapConfig := zap.NewProductionConfig()

	zapConfig.Level.SetLevel(zapLogLevel)
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapConfig.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	logger = logger.WithOptions(zap.AddStacktrace(zapcore.FatalLevel)).With(zap.String("namespace", namespace)).With(zap.String("environment", environment))
	zap.ReplaceGlobals(logger)

	return logger.Sugar()
}
