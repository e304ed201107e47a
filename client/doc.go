// Package client provides the retrying request executor that sits
// between callers and the remote API.
//
// Every logical request goes through the same pipeline: local admission
// control (ratelimit.Limiter), one or more transport exchanges,
// classification of the outcome (apierror.Classifier), circuit-breaker
// feedback, and fixed-backoff retry of transient failures. Callers
// receive either a successful Response or exactly one *apierror.Error —
// never a raw transport error, never a secret.
//
// The transport itself is pluggable: anything implementing Transport
// can carry the exchange. HTTPTransport is the net/http default.
//
// # Usage
//
//	c, err := client.New(client.Config{
//	    Transport: client.NewHTTPTransport(nil),
//	    Limiter:   ratelimit.NewLimiter(ratelimit.Config{}),
//	})
//	if err != nil {
//	    return err
//	}
//
//	resp, err := c.Do(ctx, identity, &client.Request{
//	    Method:  "GET",
//	    URL:     "https://api.github.com/user",
//	    Header:  headers,
//	    Timeout: 10 * time.Second,
//	})
package client
