package github

import "time"

// User is the authenticated account behind a token.
type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Type      string `json:"type"`
}

// Repository is a repository as returned by the API. Only the fields the
// resilience layer's consumers need are mapped.
type Repository struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Owner         User      `json:"owner"`
	Private       bool      `json:"private"`
	Fork          bool      `json:"fork"`
	Archived      bool      `json:"archived"`
	Description   string    `json:"description"`
	HTMLURL       string    `json:"html_url"`
	DefaultBranch string    `json:"default_branch"`
	Visibility    string    `json:"visibility"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListOptions filters ListRepositories.
type ListOptions struct {
	// Visibility is all, public, or private. Empty means the API default.
	Visibility string

	// Affiliation is a comma-separated subset of owner, collaborator,
	// organization_member.
	Affiliation string

	// PerPage caps the page size. Zero means the API default.
	PerPage int
}

// CreateRepositoryRequest describes a repository to create for the
// authenticated user.
type CreateRepositoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	Private     bool   `json:"private"`
	AutoInit    bool   `json:"auto_init"`
}
