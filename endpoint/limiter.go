package endpoint

import (
	"net/http"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/time/rate"

	"github.com/datastax/bigtable-admin-apis/rest/models"
	restEndpointV1 "github.com/datastax/bigtable-admin-apis/rest/endpoint/v1"
)

type LimiterConfig struct {
	Enable bool `mapstructure:"enable"`
	// Requests added to the bucket per second.
	TokenBucketFillRate int `mapstructure:"fill-rate"`
	// Largest burst of requests served at once.
	TokenBucketBurstEventCapacity int `mapstructure:"burst"`
	// Paths served without taking a token.
	UnlimitedPaths []string `mapstructure:"unlimited-paths"`
}

func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Enable:                        false,
		TokenBucketFillRate:           100,
		TokenBucketBurstEventCapacity: 1000,
	}
}

type FlowLimiter struct {
	l      *rate.Limiter
	enable *atomic.Bool
	// RWMutex is used to protect following fields.
	lock           sync.RWMutex
	unlimitedPaths map[string]struct{}
}

func NewFlowLimiter(config LimiterConfig) *FlowLimiter {
	f := &FlowLimiter{
		l:              rate.NewLimiter(rate.Limit(config.TokenBucketFillRate), config.TokenBucketBurstEventCapacity),
		enable:         atomic.NewBool(config.Enable),
		unlimitedPaths: make(map[string]struct{}),
	}
	f.UpdateUnlimitedPaths(config.UnlimitedPaths, nil)
	return f
}

func (f *FlowLimiter) Allow(path string) bool {
	if !f.enable.Load() {
		return true
	}
	f.lock.RLock()
	_, ok := f.unlimitedPaths[path]
	f.lock.RUnlock()
	if ok {
		return true
	}
	return f.l.Allow()
}

func (f *FlowLimiter) UpdateLimiter(config LimiterConfig) {
	f.l.SetLimit(rate.Limit(config.TokenBucketFillRate))
	f.l.SetBurst(config.TokenBucketBurstEventCapacity)
	f.enable.Store(config.Enable)
}

func (f *FlowLimiter) UpdateUnlimitedPaths(unlimited []string, limited []string) {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, path := range unlimited {
		f.unlimitedPaths[path] = struct{}{}
	}
	for _, path := range limited {
		delete(f.unlimitedPaths, path)
	}
}

// Handler rejects requests with 429 once the bucket is empty.
func (f *FlowLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.Allow(r.URL.Path) {
			restEndpointV1.RespondJSONObjectWithCode(w, http.StatusTooManyRequests, models.ModelError{
				Description: "too many requests",
				Code:        http.StatusTooManyRequests,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
