package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"listing-search-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		err  string
		want bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"write: broken pipe", true},
		{"NOT_FOUND: job with key 1 not found", false},
		{"permission denied", false},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(stderrors.New(tt.err)))
		})
	}
}

func TestMapZeebeError(t *testing.T) {
	c := &Client{config: &ClientConfig{RetryConfig: DefaultRetryConfig}}

	err := c.mapZeebeError(stderrors.New("connection reset by peer"), "topology", 2)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNetwork))
	assert.Contains(t, errors.As(err).Details, `zeebe operation "topology" failed after 3 attempts`)

	err = c.mapZeebeError(stderrors.New("job already completed"), "complete", 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnexpected))
}

func TestExecuteWithRetry(t *testing.T) {
	c := &Client{config: &ClientConfig{RetryConfig: &RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
	}}}

	t.Run("retries transient errors then succeeds", func(t *testing.T) {
		calls := 0
		result, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			calls++
			if calls < 3 {
				return nil, stderrors.New("unavailable")
			}
			return "ok", nil
		}, "topology")

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			calls++
			return nil, stderrors.New("invalid argument")
		}, "topology")

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, errors.IsCode(err, errors.ErrCodeUnexpected))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			calls++
			return nil, stderrors.New("timeout")
		}, "topology")

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNetwork))
	})
}
