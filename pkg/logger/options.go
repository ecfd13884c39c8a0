package logger

import (
	"errors"

	"go.uber.org/zap/zapcore"
)

type settings struct {
	maxSize    int
	maxBackups int
	maxAge     int

	// output replaces both the rotated file and stdout when set.
	output zapcore.WriteSyncer
}

type Option func(*settings)

// Rotation overrides the lumberjack limits from the config.
func Rotation(maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(s *settings) {
		s.maxSize = maxSizeMB
		s.maxBackups = maxBackups
		s.maxAge = maxAgeDays
	}
}

// Output sends every entry to ws only. Command line tools use it with stderr.
func Output(ws zapcore.WriteSyncer) Option {
	return func(s *settings) {
		s.output = ws
	}
}

func (s *settings) validate() error {
	if s.output != nil {
		return nil
	}

	if s.maxSize <= 0 {
		return errors.New("invalid maxSize: must be > 0")
	}

	if s.maxBackups < 0 {
		return errors.New("invalid maxBackups: must be >= 0")
	}

	if s.maxAge <= 0 {
		return errors.New("invalid maxAge: must be > 0")
	}
	return nil
}
