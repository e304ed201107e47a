package secret

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jonwraymond/apiguard/auth"
)

// Provider resolves one reference scheme to a credential value.
//
// Implementations must be safe for concurrent use and must not log
// resolved values.
type Provider interface {
	// Scheme is the reference prefix this provider handles, without
	// the "://" separator.
	Scheme() string

	// Resolve turns the part after "scheme://" into a credential value.
	Resolve(ctx context.Context, ref string) (string, error)
}

// Resolver turns token references into auth.Token values.
//
// References use a scheme prefix:
//
//	env://GITHUB_TOKEN   value of the GITHUB_TOKEN environment variable
//	file:///etc/token    contents of the file, surrounding space trimmed
//	ghp_xxxx             anything without a scheme is a literal token
//
// Additional schemes can be added with Register.
type Resolver struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewResolver creates a resolver with the env and file providers
// registered.
func NewResolver() *Resolver {
	r := &Resolver{providers: make(map[string]Provider)}
	r.Register(envProvider{})
	r.Register(fileProvider{})
	return r
}

// Register adds a provider, replacing any previous provider for the
// same scheme.
func (r *Resolver) Register(provider Provider) {
	if provider == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Scheme()] = provider
}

// Schemes returns the registered scheme names, in no particular order.
func (r *Resolver) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.providers))
	for scheme := range r.providers {
		schemes = append(schemes, scheme)
	}
	return schemes
}

// Resolve turns reference into a token. An empty reference yields the
// zero token, which the limiter treats as the anonymous identity.
func (r *Resolver) Resolve(ctx context.Context, reference string) (auth.Token, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return auth.Token(""), nil
	}

	scheme, ref, ok := splitReference(reference)
	if !ok {
		return auth.Token(reference), nil
	}

	r.mu.RLock()
	provider, registered := r.providers[scheme]
	r.mu.RUnlock()
	if !registered {
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}

	value, err := provider.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("%w: %s://%s", ErrEmptyValue, scheme, ref)
	}
	return auth.Token(value), nil
}

// splitReference splits "scheme://rest" into its parts. References
// without a separator are not scheme references.
func splitReference(reference string) (scheme, ref string, ok bool) {
	idx := strings.Index(reference, "://")
	if idx <= 0 {
		return "", "", false
	}
	return reference[:idx], reference[idx+len("://"):], true
}

type envProvider struct{}

func (envProvider) Scheme() string { return "env" }

func (envProvider) Resolve(_ context.Context, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: env reference names no variable", ErrBadReference)
	}
	value, ok := os.LookupEnv(ref)
	if !ok {
		return "", fmt.Errorf("%w: environment variable %s is not set", ErrBadReference, ref)
	}
	return strings.TrimSpace(value), nil
}

type fileProvider struct{}

func (fileProvider) Scheme() string { return "file" }

func (fileProvider) Resolve(_ context.Context, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: file reference names no path", ErrBadReference)
	}
	raw, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
