package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
)

func TestRateLimiterExhaustsBurst(t *testing.T) {
	rl := NewRateLimiter(60, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d should fit in the burst", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other clients have their own bucket
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterConfiguredDefaults(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiter.RequestsPerMinute, config.RateLimiter.Burst)

	assert.Equal(t, config.RateLimiter.RequestsPerMinute, rl.rate)
	assert.Equal(t, config.RateLimiter.Burst, rl.burst)
}
