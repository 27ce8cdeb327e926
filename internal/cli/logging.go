package cli

import (
	"io"
	stdslog "log/slog"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/brewxml"
	bxlogrus "github.com/unkn0wn-root/brewxml/log/logrus"
	bxslog "github.com/unkn0wn-root/brewxml/log/slog"
	bxzap "github.com/unkn0wn-root/brewxml/log/zap"
)

// newLogger builds the codec logger for cfg. The returned func flushes
// buffered output.
func newLogger(cfg LogConfig, w io.Writer) (brewxml.Logger, func()) {
	switch cfg.Backend {
	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(logrusLevel(cfg.Level))
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return bxlogrus.New(l), func() {}
	case "slog":
		h := stdslog.NewTextHandler(w, &stdslog.HandlerOptions{Level: slogLevel(cfg.Level)})
		return bxslog.New(stdslog.New(h)), func() {}
	default:
		l := newZapLogger(cfg.Level, w)
		return bxzap.New(l), func() { _ = l.Sync() }, nil
	}
}

func newZapLogger(level string, w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(parseLogLevel(level)),
	)
	return zap.New(core)
}

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func logrusLevel(level string) logrus.Level {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}

func slogLevel(level string) stdslog.Level {
	var l stdslog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return stdslog.LevelInfo
	}
	return l
}
