package logger

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"goldenorders/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = (*Adapter)(nil)

// Adapter implements Logger on top of zap.
type Adapter struct {
	zap *zap.Logger
	// bound is set once Ctx has attached the request fields.
	bound bool
}

func NewAdapter(cfg *config.Config, opts ...Option) (*Adapter, error) {
	z, err := newZap(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("logger.NewAdapter: %w", err)
	}
	return &Adapter{zap: z}, nil
}

func (a *Adapter) Debugw(msg string, keysAndValues ...any) {
	a.zap.Sugar().Debugw(msg, keysAndValues...)
}

func (a *Adapter) Infow(msg string, keysAndValues ...any) {
	a.zap.Sugar().Infow(msg, keysAndValues...)
}

func (a *Adapter) Warnw(msg string, keysAndValues ...any) {
	a.zap.Sugar().Warnw(msg, keysAndValues...)
}

func (a *Adapter) Errorw(msg string, keysAndValues ...any) {
	a.zap.Sugar().Errorw(msg, keysAndValues...)
}

func (a *Adapter) Ctx(ctx context.Context) Logger {
	if a.bound {
		return a
	}
	return &Adapter{zap: a.fromContext(ctx), bound: true}
}

func (a *Adapter) With(args ...any) Logger {
	return &Adapter{zap: a.zap.Sugar().With(args...).Desugar(), bound: a.bound}
}

func (a *Adapter) LogAttrs(ctx context.Context, level Level, msg string, attrs ...Attr) {
	zapLevel := toZapLevel(level)
	if !a.zap.Core().Enabled(zapLevel) {
		return
	}

	var fields []zap.Field
	if !a.bound {
		fields = contextFields(ctx)
	}
	for _, attr := range attrs {
		fields = append(fields, zap.Any(attr.Key, attr.Value))
	}
	a.zap.Log(zapLevel, msg, fields...)
}

// Sync flushes buffered entries. Sync errors on a terminal are ignored.
func (a *Adapter) Sync() error {
	err := a.zap.Sync()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return fmt.Errorf("logger.Sync: %w", err)
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
