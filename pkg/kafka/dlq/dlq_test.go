package dlq_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"goldenorders/pkg/kafka/dlq"
	mock_logger "goldenorders/pkg/logger/mock"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var _policy = dlq.RetryPolicy{
	MaxAttempts: 3,
	BaseDelay:   time.Millisecond,
	MaxDelay:    2 * time.Millisecond,
}

func TestProcessWithRetry(t *testing.T) {
	t.Parallel()

	errTemporary := errors.New("connection refused")

	testCases := []struct {
		desc         string
		failures     []error
		wantAttempts int
		wantErr      error
		permanent    bool
	}{
		{
			desc:         "FirstAttempt",
			wantAttempts: 1,
		},
		{
			desc:         "SucceedsAfterRetry",
			failures:     []error{errTemporary, errTemporary},
			wantAttempts: 3,
		},
		{
			desc:         "Exhausted",
			failures:     []error{errTemporary, errTemporary, errTemporary},
			wantAttempts: 3,
			wantErr:      errTemporary,
		},
		{
			desc:         "PermanentStopsImmediately",
			failures:     []error{dlq.Permanent(fmt.Errorf("decode: %w", errTemporary))},
			wantAttempts: 1,
			wantErr:      errTemporary,
			permanent:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			log := mock_logger.NewMockLogger(ctrl)
			log.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

			calls := 0
			handler := func(context.Context, kafka.Message) error {
				calls++
				if calls <= len(tc.failures) {
					return tc.failures[calls-1]
				}
				return nil
			}

			attempts, err := dlq.ProcessWithRetry(context.Background(), kafka.Message{Offset: 42}, handler, _policy, log)

			assert.Equal(t, tc.wantAttempts, attempts)
			assert.Equal(t, tc.wantAttempts, calls)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.permanent, dlq.IsPermanent(err))
		})
	}
}

func TestProcessWithRetry_CancelledContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	log := mock_logger.NewMockLogger(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts, err := dlq.ProcessWithRetry(ctx, kafka.Message{}, func(context.Context, kafka.Message) error {
		t.Fatal("handler must not run")
		return nil
	}, _policy, log)

	assert.Zero(t, attempts)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	msg := kafka.Message{Topic: "orders", Partition: 2, Offset: 17, Value: []byte(`{"id":"PED-1"}`)}

	raw, err := dlq.Encode(msg, dlq.Permanent(errors.New("bad payload")), 4, at)
	require.NoError(t, err)

	decoded, err := dlq.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, dlq.Metadata{
		OriginalTopic: "orders",
		Partition:     2,
		Offset:        17,
		RetryCount:    4,
		Permanent:     true,
		Error:         "bad payload",
		Timestamp:     "2026-03-10T12:00:00Z",
	}, decoded.Metadata)
	assert.Equal(t, `{"id":"PED-1"}`, decoded.Payload)

	_, err = dlq.Decode([]byte("DLQ_FALLOUT:17"))
	require.Error(t, err)
}

func TestPermanent(t *testing.T) {
	t.Parallel()

	require.NoError(t, dlq.Permanent(nil))
	assert.False(t, dlq.IsPermanent(errors.New("plain")))
	assert.True(t, dlq.IsPermanent(fmt.Errorf("wrapped: %w", dlq.Permanent(errors.New("x")))))
}

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()

	policy := dlq.RetryPolicy{MaxAttempts: 6, BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}

	testCases := []struct {
		desc    string
		attempt int
		ceiling time.Duration
	}{
		{desc: "FirstRetry", attempt: 2, ceiling: 100 * time.Millisecond},
		{desc: "Doubles", attempt: 3, ceiling: 200 * time.Millisecond},
		{desc: "Capped", attempt: 6, ceiling: 300 * time.Millisecond},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			for range 50 {
				got := policy.Delay(tc.attempt)
				assert.GreaterOrEqual(t, got, tc.ceiling/2)
				assert.LessOrEqual(t, got, tc.ceiling)
			}
		})
	}
}

func TestReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rejected", dlq.Reason(dlq.Permanent(errors.New("bad json"))))
	assert.Equal(t, "retry_limit_exceeded", dlq.Reason(errors.New("timeout")))
}
