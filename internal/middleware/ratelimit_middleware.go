package middleware

import (
	"sync"
	"time"
)

// InvalidAuthRateLimiter throttles repeated failed login attempts per IP.
// Successful logins are never counted.
type InvalidAuthRateLimiter struct {
	mu       sync.Mutex
	failures map[string]*failureInfo
}

type failureInfo struct {
	count   int
	firstAt time.Time
}

func NewInvalidAuthRateLimiter() *InvalidAuthRateLimiter {
	rl := &InvalidAuthRateLimiter{
		failures: make(map[string]*failureInfo),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether the IP may attempt another login.
// Limit: 5 failed attempts per minute.
func (r *InvalidAuthRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, exists := r.failures[ip]
	if !exists {
		return true
	}

	// Window expired
	if time.Since(info.firstAt) > time.Minute {
		delete(r.failures, ip)
		return true
	}

	return info.count < 5
}

// RecordFailure counts a failed login attempt for the IP.
func (r *InvalidAuthRateLimiter) RecordFailure(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.failures[ip]
	if !exists || now.Sub(info.firstAt) > time.Minute {
		r.failures[ip] = &failureInfo{count: 1, firstAt: now}
		return
	}
	info.count++
}

func (r *InvalidAuthRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.failures {
			if now.Sub(info.firstAt) > time.Minute {
				delete(r.failures, ip)
			}
		}
		r.mu.Unlock()
	}
}
