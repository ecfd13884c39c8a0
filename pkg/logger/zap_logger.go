package logger

import (
	"fmt"
	"os"

	"goldenorders/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	_defaultMaxSize    = 100
	_defaultMaxBackups = 3
	_defaultMaxAge     = 28
)

func newZap(cfg *config.Config, opts ...Option) (*zap.Logger, error) {
	const op = "logger.newZap"

	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("%s: parse level: %w", op, err)
	}

	s := &settings{
		maxSize:    orDefault(cfg.Logger.MaxSize, _defaultMaxSize),
		maxBackups: cfg.Logger.MaxBackups,
		maxAge:     orDefault(cfg.Logger.MaxAge, _defaultMaxAge),
	}
	if s.maxBackups < 0 {
		s.maxBackups = _defaultMaxBackups
	}

	for _, opt := range opts {
		opt(s)
	}

	if err = s.validate(); err != nil {
		return nil, fmt.Errorf("%s: validation: %w", op, err)
	}

	sink := s.output
	if sink == nil {
		sink = zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.Logger.Filename,
				MaxSize:    s.maxSize,
				MaxBackups: s.maxBackups,
				MaxAge:     s.maxAge,
				Compress:   true,
			}),
			zapcore.AddSync(os.Stdout),
		)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), sink, level)

	return zap.New(core,
		zap.Fields(
			zap.String("service", cfg.App.Name),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.Env),
		),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zap.ErrorLevel),
	), nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		FunctionKey:   zapcore.OmitKey,
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
