package logger

import (
	"context"
	"strings"
	"time"
	"unicode"
)

//go:generate mockgen -source=logger.go -destination=mock/logger.go -package=mock_logger

type Level int

const (
	DebugLevel Level = iota - 4
	InfoLevel
	WarnLevel
	ErrorLevel
)

const _visibleDocumentDigits = 4

type (
	Attr struct {
		Key   string
		Value any
	}

	// Logger is the structured logger shared by every layer of the service.
	// Ctx returns a child carrying the request id and user stored in ctx.
	Logger interface {
		Debugw(msg string, keysAndValues ...any)
		Infow(msg string, keysAndValues ...any)
		Warnw(msg string, keysAndValues ...any)
		Errorw(msg string, keysAndValues ...any)

		Ctx(ctx context.Context) Logger
		With(args ...any) Logger

		WithRequestID(ctx context.Context, requestID string) context.Context
		WithUser(ctx context.Context, email string) context.Context
		GenerateRequestID() string

		LogAttrs(ctx context.Context, level Level, msg string, attrs ...Attr)
	}
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func String(key string, value string) Attr {
	return Attr{Key: key, Value: value}
}

func Int(key string, value int) Attr {
	return Attr{Key: key, Value: value}
}

func Int64(key string, value int64) Attr {
	return Attr{Key: key, Value: value}
}

func Bool(key string, value bool) Attr {
	return Attr{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Attr {
	return Attr{Key: key, Value: value}
}

func Any(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Err logs err under the "error" key. A nil error is logged as null.
func Err(err error) Attr {
	if err == nil {
		return Attr{Key: "error", Value: nil}
	}
	return Attr{Key: "error", Value: err.Error()}
}

// Document logs a CPF or CNPJ with every digit but the last four hidden.
func Document(key, doc string) Attr {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, doc)

	if len(digits) <= _visibleDocumentDigits {
		return Attr{Key: key, Value: strings.Repeat("*", len(digits))}
	}
	hidden := len(digits) - _visibleDocumentDigits
	return Attr{Key: key, Value: strings.Repeat("*", hidden) + digits[hidden:]}
}
