package github

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/apiguard/auth"
	"github.com/jonwraymond/apiguard/client"
)

const (
	defaultBaseURL    = "https://api.github.com"
	defaultAPIVersion = "2022-11-28"
	defaultUserAgent  = "apiguard"
	defaultTimeout    = 10 * time.Second

	acceptJSON = "application/vnd.github+json"
)

// Config configures the GitHub service.
type Config struct {
	// Client executes requests with rate limiting, circuit breaking, and
	// retry. Required.
	Client *client.Client

	// Token is the bearer credential. Optional; unauthenticated requests
	// share the "anonymous" identity budget.
	Token auth.Token

	// BaseURL overrides the API host, e.g. for GitHub Enterprise.
	// Default: https://api.github.com
	BaseURL string

	// UserAgent identifies the embedding application.
	// Default: apiguard
	UserAgent string

	// APIVersion is the X-GitHub-Api-Version header value.
	// Default: 2022-11-28
	APIVersion string

	// Timeout bounds each transport attempt.
	// Default: 10 seconds
	Timeout time.Duration
}

// Service exposes the typed API operations. All calls share one
// identity, derived from the token, so they draw from the same rate
// budget and circuit state.
type Service struct {
	config   Config
	identity string
	lookups  singleflight.Group
}

// NewService creates a service.
func NewService(config Config) (*Service, error) {
	if config.Client == nil {
		return nil, ErrNoClient
	}
	// Apply defaults
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.APIVersion == "" {
		config.APIVersion = defaultAPIVersion
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	return &Service{
		config:   config,
		identity: auth.IdentityFor(config.Token),
	}, nil
}

// Identity returns the limiter identity this service operates under.
func (s *Service) Identity() string {
	return s.identity
}

// ListRepositories lists the authenticated user's repositories.
// A single page is fetched; pagination is the caller's concern.
func (s *Service) ListRepositories(ctx context.Context, opts ListOptions) ([]Repository, error) {
	query := url.Values{}
	if opts.Visibility != "" {
		query.Set("visibility", opts.Visibility)
	}
	if opts.Affiliation != "" {
		query.Set("affiliation", opts.Affiliation)
	}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}

	req, err := s.newRequest(http.MethodGet, "/user/repos", query, nil)
	if err != nil {
		return nil, err
	}

	var repos []Repository
	if _, err := s.config.Client.DoJSON(ctx, s.identity, req, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// AuthenticatedUser looks up the account behind the configured token.
// Concurrent identical lookups are coalesced into one API call.
func (s *Service) AuthenticatedUser(ctx context.Context) (*User, error) {
	v, err, _ := s.lookups.Do("user:"+s.identity, func() (any, error) {
		req, err := s.newRequest(http.MethodGet, "/user", nil, nil)
		if err != nil {
			return nil, err
		}

		var user User
		if _, err := s.config.Client.DoJSON(ctx, s.identity, req, &user); err != nil {
			return nil, err
		}
		return &user, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*User), nil
}

// CreateRepository creates a repository for the authenticated user.
func (s *Service) CreateRepository(ctx context.Context, create CreateRepositoryRequest) (*Repository, error) {
	if create.Name == "" {
		return nil, ErrNoRepositoryName
	}

	req, err := s.newRequest(http.MethodPost, "/user/repos", nil, create)
	if err != nil {
		return nil, err
	}

	var repo Repository
	if _, err := s.config.Client.DoJSON(ctx, s.identity, req, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

func (s *Service) newRequest(method, path string, query url.Values, body any) (*client.Request, error) {
	header := http.Header{}
	header.Set("Accept", acceptJSON)
	header.Set("User-Agent", s.config.UserAgent)
	header.Set("X-GitHub-Api-Version", s.config.APIVersion)
	s.config.Token.Apply(header)

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
		header.Set("Content-Type", "application/json")
	}

	u := s.config.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	return &client.Request{
		Method:  method,
		URL:     u,
		Header:  header,
		Body:    raw,
		Timeout: s.config.Timeout,
	}, nil
}
