package github

import "errors"

// Sentinel errors for service construction and argument validation.
var (
	// ErrNoClient is returned when a Service is created without a client.
	ErrNoClient = errors.New("github: client is required")

	// ErrNoRepositoryName is returned when CreateRepository is called
	// without a repository name.
	ErrNoRepositoryName = errors.New("github: repository name is required")
)
