package client

import (
	"context"
	"testing"

	"github.com/jonwraymond/apiguard/ratelimit"
)

func benchLimiter() *ratelimit.Limiter {
	return ratelimit.NewLimiter(ratelimit.Config{
		Global:      ratelimit.BucketConfig{Capacity: 1 << 20, RefillRate: 1e9},
		PerIdentity: ratelimit.BucketConfig{Capacity: 1 << 20, RefillRate: 1e9},
	})
}

func BenchmarkClient_Do(b *testing.B) {
	transport := &fakeTransport{steps: []step{ok(`{"login":"alice"}`)}}
	c, err := New(Config{Transport: transport, Limiter: benchLimiter()})
	if err != nil {
		b.Fatal(err)
	}
	req := &Request{Method: "GET", URL: "https://api.example.com/user"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Do(context.Background(), "alice", req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkClient_DoJSON(b *testing.B) {
	transport := &fakeTransport{steps: []step{ok(`{"login":"alice","id":7}`)}}
	c, err := New(Config{Transport: transport, Limiter: benchLimiter()})
	if err != nil {
		b.Fatal(err)
	}
	req := &Request{Method: "GET", URL: "https://api.example.com/user"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out struct {
			Login string `json:"login"`
			ID    int64  `json:"id"`
		}
		if _, err := c.DoJSON(context.Background(), "alice", req, &out); err != nil {
			b.Fatal(err)
		}
	}
}
