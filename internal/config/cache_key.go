package config

import (
	"fmt"
	"time"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RateLimitKey returns the counter key for a client within the fixed window
// containing at. Windows are whole seconds; anything shorter counts as one.
func (r *CacheKeyStruct) RateLimitKey(clientIP string, window time.Duration, at time.Time) string {
	secs := int64(window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("ratelimit:%s:%d", clientIP, at.Unix()/secs)
}

var CacheKey = NewCacheKeyStruct()
