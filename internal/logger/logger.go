// Package logger builds the zap logger shared by the service layer, the
// event consumer and the command entry points.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger in production and a colored console logger
// otherwise.  A level parsed from LOG_LEVEL (debug, info, warn, error)
// overrides the default; an unparseable level is ignored.  Output always
// goes to stderr so that the interactive console keeps stdout for itself.
func New(env, level string) (*zap.Logger, error) {
	var config zap.Config
	if env == "production" || env == "prod" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		// stack traces on every warn drown the console
		config.DisableStacktrace = true
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err == nil {
			config.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	return config.Build()
}

// MustNew is New for entry points: it falls back to a no-op logger and
// reports the problem on stderr instead of failing.
func MustNew(env, level string) *zap.Logger {
	l, err := New(env, level)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "; logging disabled\n")
		return zap.NewNop()
	}
	return l
}
