package ratelimit

import (
	"sync"
	"time"
)

// BucketConfig configures a token bucket.
type BucketConfig struct {
	// Capacity is the maximum number of tokens the bucket holds.
	// Default: 100
	Capacity int

	// RefillRate is the number of tokens added per second.
	// Default: 100/60 (100 tokens per minute)
	RefillRate float64
}

// TokenBucket implements a token bucket with lazy, linear refill.
//
// There is no background timer: pending refill is applied on every
// access, under the bucket's own lock. Buckets for different identities
// never share a lock.
type TokenBucket struct {
	config BucketConfig

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewTokenBucket creates a full bucket.
func NewTokenBucket(config BucketConfig) *TokenBucket {
	// Apply defaults
	if config.Capacity <= 0 {
		config.Capacity = 100
	}
	if config.RefillRate <= 0 {
		config.RefillRate = 100.0 / 60.0
	}

	return &TokenBucket{
		config:     config,
		tokens:     float64(config.Capacity),
		lastRefill: time.Now(),
	}
}

// Allow reports whether one token could be acquired, consuming it if so.
func (b *TokenBucket) Allow() bool {
	return b.AllowN(1)
}

// AllowN atomically refills, then consumes n tokens if available.
// On failure nothing is consumed.
func (b *TokenBucket) AllowN(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked()

	if b.tokens >= float64(n) {
		b.tokens -= float64(n)
		return true
	}

	return false
}

// WaitTime returns how long until n tokens will be available, or zero
// if they already are. It refills but never consumes.
func (b *TokenBucket) WaitTime(n int) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked()

	deficit := float64(n) - b.tokens
	if deficit <= 0 {
		return 0
	}
	return time.Duration(deficit / b.config.RefillRate * float64(time.Second))
}

// Refund returns n previously acquired tokens to the bucket, clamped to
// capacity. Used by the Limiter when a global acquisition must be rolled
// back after a per-identity rejection.
func (b *TokenBucket) Refund(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += float64(n)
	if b.tokens > float64(b.config.Capacity) {
		b.tokens = float64(b.config.Capacity)
	}
}

func (b *TokenBucket) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(b.lastRefill)
	b.lastRefill = now

	b.tokens += elapsed.Seconds() * b.config.RefillRate

	// Clamp to capacity
	if b.tokens > float64(b.config.Capacity) {
		b.tokens = float64(b.config.Capacity)
	}
}

// Tokens returns the current token count after applying pending refill.
func (b *TokenBucket) Tokens() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refillLocked()
	return b.tokens
}

// Capacity returns the configured maximum token count.
func (b *TokenBucket) Capacity() int {
	return b.config.Capacity
}
