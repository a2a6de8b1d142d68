package models

import (
	"strings"

	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
)

// ExistingIssue is an issue already present in the tracker.
type ExistingIssue struct {
	Number int
	Title  string
	URL    string
}

// Repository identifies a repository as owner/name.
type Repository struct {
	Owner string
	Name  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository splits an "owner/name" reference.
func ParseRepository(ref string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, domainErrors.ErrInvalidRepository.WithContext("repo", ref)
	}
	return Repository{Owner: owner, Name: name}, nil
}

// Credentials holds what is needed to authenticate against the tracker.
// A username means basic auth; otherwise Secret is used as a token.
type Credentials struct {
	Username string
	Secret   string
}

// IsBasic reports whether the credentials carry a username.
func (c Credentials) IsBasic() bool {
	return c.Username != ""
}

// ParseCredentials parses "user:secret" or a bare token. Only the first
// colon separates the parts, so secrets may contain colons.
func ParseCredentials(auth string) (Credentials, error) {
	auth = strings.TrimSpace(auth)
	if auth == "" {
		return Credentials{}, domainErrors.ErrAuthMissing
	}

	user, secret, ok := strings.Cut(auth, ":")
	if !ok {
		return Credentials{Secret: auth}, nil
	}
	if user == "" || secret == "" {
		return Credentials{}, domainErrors.ErrAuthMissing.
			WithSuggestion("Credentials must look like user:token")
	}
	return Credentials{Username: user, Secret: secret}, nil
}
