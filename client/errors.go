package client

import "errors"

// Sentinel errors for client construction.
var (
	// ErrNoTransport is returned when a Client is created without a Transport.
	ErrNoTransport = errors.New("client: transport is required")
)
