package endpoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	defaultInitialLimiterRate     = 10
	defaultInitialLimiterCapacity = 100
	defaultUpdateLimiterRate      = 100
	defaultUpdateLimiterCapacity  = 50
	defaultUnlimitedPath          = "/rest"
	defaultLimitedPath            = "/rest/v1/tables"
)

func TestFlowLimiter(t *testing.T) {
	re := require.New(t)
	flowLimiter := NewFlowLimiter(LimiterConfig{
		Enable:                        true,
		TokenBucketFillRate:           defaultInitialLimiterRate,
		TokenBucketBurstEventCapacity: defaultInitialLimiterCapacity,
	})

	for i := 0; i < defaultInitialLimiterCapacity; i++ {
		re.True(flowLimiter.Allow(defaultLimitedPath))
	}
	re.False(flowLimiter.Allow(defaultLimitedPath))

	time.Sleep(time.Second)
	for i := 0; i < defaultInitialLimiterRate; i++ {
		re.True(flowLimiter.Allow(defaultLimitedPath))
	}

	flowLimiter.UpdateLimiter(LimiterConfig{
		Enable:                        true,
		TokenBucketFillRate:           defaultUpdateLimiterRate,
		TokenBucketBurstEventCapacity: defaultUpdateLimiterCapacity,
	})
	time.Sleep(time.Second)
	for i := 0; i < defaultUpdateLimiterCapacity; i++ {
		re.True(flowLimiter.Allow(defaultLimitedPath))
	}
	re.False(flowLimiter.Allow(defaultLimitedPath))

	flowLimiter.UpdateUnlimitedPaths([]string{defaultUnlimitedPath}, nil)
	re.True(flowLimiter.Allow(defaultUnlimitedPath))
	flowLimiter.UpdateUnlimitedPaths(nil, []string{defaultUnlimitedPath})
	re.False(flowLimiter.Allow(defaultUnlimitedPath))
}

func TestFlowLimiterDisabled(t *testing.T) {
	flowLimiter := NewFlowLimiter(LimiterConfig{TokenBucketBurstEventCapacity: 1})
	for i := 0; i < 10; i++ {
		require.True(t, flowLimiter.Allow(defaultLimitedPath))
	}
}
