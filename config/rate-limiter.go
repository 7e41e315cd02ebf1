package config

// Rate limiter configuration
type RateLimiterConfig struct {
	RequestsPerMinute int // Tokens added back per minute
	Burst             int // Requests a client may make before refills matter
}

var RateLimiter = RateLimiterConfig{
	RequestsPerMinute: 10000,
	Burst:             1500,
}
