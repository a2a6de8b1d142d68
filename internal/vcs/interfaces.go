package vcs

import (
	"context"

	"github.com/thomas-vilte/gh-issues-importer/internal/models"
)

// IssueTracker is the remote side of an import: the issues already there and
// a way to add new ones.
type IssueTracker interface {
	// ListIssues returns the open issues of the repository in a single call.
	ListIssues(ctx context.Context) ([]models.ExistingIssue, error)
	// CreateIssue creates an issue with no labels.
	CreateIssue(ctx context.Context, title, body string) (*models.ExistingIssue, error)
}
