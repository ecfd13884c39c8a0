package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"goldenorders/internal/config"
	"goldenorders/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func newBufferedLogger(t *testing.T, level string) (*logger.Adapter, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	log, err := logger.NewAdapter(&config.Config{
		App:    config.App{Name: "golden-orders", Version: "test"},
		Logger: config.Logger{Level: level},
		Env:    "local",
	}, logger.Output(zapcore.AddSync(buf)))
	require.NoError(t, err)
	return log, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestAdapter_LogAttrsCarriesContext(t *testing.T) {
	t.Parallel()

	log, buf := newBufferedLogger(t, "info")

	ctx := log.WithRequestID(context.Background(), "req-42")
	ctx = log.WithUser(ctx, "vendas@goldenpr.com.br")

	log.LogAttrs(ctx, logger.InfoLevel, "order saved",
		logger.String("order_id", "PED-123456"),
		logger.Err(errors.New("boom")),
	)
	log.LogAttrs(ctx, logger.DebugLevel, "hidden")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "order saved", entries[0]["msg"])
	assert.Equal(t, "req-42", entries[0]["request_id"])
	assert.Equal(t, "vendas@goldenpr.com.br", entries[0]["user"])
	assert.Equal(t, "PED-123456", entries[0]["order_id"])
	assert.Equal(t, "boom", entries[0]["error"])
	assert.Equal(t, "golden-orders", entries[0]["service"])
}

func TestAdapter_CtxAndWith(t *testing.T) {
	t.Parallel()

	log, buf := newBufferedLogger(t, "debug")

	ctx := log.WithRequestID(context.Background(), "req-7")
	log.Ctx(ctx).With("component", "kafka").Debugw("consumed", "offset", 3)
	log.Infow("plain")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "req-7", entries[0]["request_id"])
	assert.Equal(t, "kafka", entries[0]["component"])
	assert.InDelta(t, 3, entries[0]["offset"], 0)
	assert.NotContains(t, entries[1], "request_id")
}

func TestNewAdapter_Validation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc  string
		level string
		opts  []logger.Option
	}{
		{desc: "UnknownLevel", level: "verbose"},
		{desc: "ZeroSize", level: "info", opts: []logger.Option{logger.Rotation(0, 1, 1)}},
		{desc: "NegativeBackups", level: "info", opts: []logger.Option{logger.Rotation(1, -1, 1)}},
		{desc: "ZeroAge", level: "info", opts: []logger.Option{logger.Rotation(1, 1, 0)}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			_, err := logger.NewAdapter(&config.Config{
				Logger: config.Logger{Level: tc.level, Filename: t.TempDir() + "/app.log"},
			}, tc.opts...)
			require.Error(t, err)
		})
	}
}

func TestDocument(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc string
		doc  string
		want string
	}{
		{desc: "CPF", doc: "529.982.247-25", want: "*******4725"},
		{desc: "CNPJ", doc: "11.222.333/0001-81", want: "**********0181"},
		{desc: "Short", doc: "12", want: "**"},
		{desc: "Empty", doc: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			attr := logger.Document("signer_document", tc.doc)
			assert.Equal(t, "signer_document", attr.Key)
			assert.Equal(t, tc.want, attr.Value)
		})
	}
}

func TestErr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, logger.Attr{Key: "error", Value: "x"}, logger.Err(errors.New("x")))
	assert.Equal(t, logger.Attr{Key: "error", Value: nil}, logger.Err(nil))
}

func TestAdapter_CtxFieldsNotDuplicated(t *testing.T) {
	t.Parallel()

	log, buf := newBufferedLogger(t, "info")

	ctx := log.WithRequestID(context.Background(), "req-9")
	log.Ctx(ctx).LogAttrs(ctx, logger.InfoLevel, "once")

	assert.Equal(t, 1, strings.Count(buf.String(), `"request_id"`))
}
