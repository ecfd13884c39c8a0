package httpt_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	httpt "goldenorders/internal/transport/http"
	mock_logger "goldenorders/pkg/logger/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestServer_ServeUntilCancelled(t *testing.T) {
	t.Parallel()

	log := mock_logger.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Infow(gomock.Any(), gomock.Any()).AnyTimes()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := httpt.NewServer("api", ln.Addr().String(), handler, log, httpt.ShutdownTimeout(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/", ln.Addr().String())) //nolint:noctx
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartReportsBindError(t *testing.T) {
	t.Parallel()

	log := mock_logger.NewMockLogger(gomock.NewController(t))

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	srv := httpt.NewServer("metrics", taken.Addr().String(), http.NotFoundHandler(), log)

	err = srv.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics")
}
