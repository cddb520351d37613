package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiterKnownServices(t *testing.T) {
	for _, svc := range []ServiceType{ServiceGmail, ServiceCalendar, ServiceTasks} {
		limiter := NewRateLimiter(svc)
		require.NotNil(t, limiter)
		assert.True(t, limiter.Allow(), "fresh limiter for %s should allow a request", svc)
	}
}

func TestNewRateLimiterUnknownServiceUsesDefaults(t *testing.T) {
	limiter := NewRateLimiter(ServiceType("unknown"))
	require.NotNil(t, limiter)
	assert.True(t, limiter.Allow())
}

func TestRateLimiterBurst(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 3})

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(), "request %d within burst", i)
	}
	assert.False(t, limiter.Allow(), "request beyond burst")
}

func TestRecordRateLimitError(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	assert.True(t, limiter.Allow())

	limiter.RecordRateLimitError(30)
	assert.False(t, limiter.Allow())
}

func TestRecordRateLimitErrorDefaultBackoff(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

	// Zero or negative retry-after falls back to the default backoff.
	limiter.RecordRateLimitError(0)
	assert.False(t, limiter.Allow())
}

func TestRecordRateLimitErrorPerServiceBackoff(t *testing.T) {
	tests := []struct {
		service ServiceType
		want    time.Duration
	}{
		{ServiceGmail, 60 * time.Second},
		{ServiceCalendar, 30 * time.Second},
		{ServiceTasks, 30 * time.Second},
		{ServiceType("unknown"), 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(string(tt.service), func(t *testing.T) {
			limiter := NewRateLimiter(tt.service)
			before := time.Now()
			limiter.RecordRateLimitError(0)

			hold := limiter.retryAt.Sub(before)
			assert.InDelta(t, tt.want.Seconds(), hold.Seconds(), 1.0)
			assert.False(t, limiter.Allow())
		})
	}
}

func TestWaitRespectsContext(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	limiter.RecordRateLimitError(60)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitWithoutBackoff(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	require.NoError(t, limiter.Wait(context.Background()))
}
