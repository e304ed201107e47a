package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// Request describes one HTTP exchange to perform.
type Request struct {
	// Method is the HTTP method.
	Method string

	// URL is the absolute request URL.
	URL string

	// Header carries the request headers, including Authorization when
	// the caller supplies one.
	Header http.Header

	// Body is the raw request body, or nil.
	Body []byte

	// Timeout bounds connect plus read for a single attempt. Each retry
	// gets a fresh timeout budget. Zero means the transport default.
	Timeout time.Duration
}

// Response is the raw result of one HTTP exchange.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Transport is the pluggable synchronous send primitive. Implementations
// perform exactly one HTTP exchange: no retries, no rate limiting, no
// classification.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Send must honor cancellation/deadlines.
// - Errors: a received HTTP response, whatever its status, is returned
//   as *Response; errors are reserved for transport-level failures.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport implements Transport over net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport backed by the given http.Client.
// A nil client uses a zero http.Client; per-request timeouts come from
// Request.Timeout, not from http.Client.Timeout.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPTransport{client: client}
}

// Send performs one HTTP exchange.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   respBody,
	}, nil
}
