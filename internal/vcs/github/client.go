package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/logger"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"github.com/thomas-vilte/gh-issues-importer/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.IssueTracker = (*GitHubClient)(nil)

const (
	defaultTimeout = 30 * time.Second
	// listPageSize is the most the API returns in one page. Larger
	// repositories are only partially deduplicated.
	listPageSize = 100
)

type IssuesService interface {
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	owner         string
	repo          string
}

// NewGitHubClient authenticates with basic auth when creds carry a username
// and with a bearer token otherwise. A non-empty baseURL points the client at
// a GitHub Enterprise server.
func NewGitHubClient(repo models.Repository, creds models.Credentials, baseURL string) (*GitHubClient, error) {
	var httpClient *http.Client
	if creds.IsBasic() {
		transport := &github.BasicAuthTransport{
			Username: creds.Username,
			Password: creds.Secret,
		}
		httpClient = transport.Client()
	} else if creds.Secret != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Secret})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = defaultTimeout

	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, domainErrors.NewAppError(domainErrors.TypeConfiguration, "invalid GitHub API URL", err).
				WithContext("api_url", baseURL)
		}
	}
	return NewGitHubClientWithServices(client.Issues, repo.Owner, repo.Name), nil
}

func NewGitHubClientWithServices(issuesService IssuesService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
	}
}

func (ghc *GitHubClient) repoName() string {
	return fmt.Sprintf("%s/%s", ghc.owner, ghc.repo)
}

// ListIssues fetches the first page of open issues. Pull requests share the
// issues endpoint and are left out.
func (ghc *GitHubClient) ListIssues(ctx context.Context) ([]models.ExistingIssue, error) {
	log := logger.FromContext(ctx)
	log.Info("Reading issues", "repo", ghc.repoName())

	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	issues, resp, err := ghc.issuesService.ListByRepo(ctx, ghc.owner, ghc.repo, opts)
	if err != nil {
		log.Error("failed to list github issues", "error", err, "repo", ghc.repoName())
		return nil, ghc.mapError(domainErrors.ErrListIssues, "list issues", resp, err)
	}

	result := make([]models.ExistingIssue, 0, len(issues))
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		result = append(result, toExistingIssue(issue))
	}

	if resp != nil && resp.NextPage != 0 {
		log.Warn("repository has more open issues than one page, duplicates beyond it are not detected",
			"repo", ghc.repoName(),
			"count", len(result))
	}

	log.Debug("github issues listed", "repo", ghc.repoName(), "count", len(result))
	return result, nil
}

func (ghc *GitHubClient) CreateIssue(ctx context.Context, title, body string) (*models.ExistingIssue, error) {
	req := &github.IssueRequest{
		Title:  github.Ptr(title),
		Body:   github.Ptr(body),
		Labels: &[]string{},
	}

	issue, resp, err := ghc.issuesService.Create(ctx, ghc.owner, ghc.repo, req)
	if err != nil {
		return nil, ghc.mapError(domainErrors.ErrCreateIssue, "create issue", resp, err).
			WithContext("title", title)
	}

	created := toExistingIssue(issue)
	logger.Debug(ctx, "github issue created",
		"repo", ghc.repoName(),
		"number", created.Number,
		"url", created.URL)
	return &created, nil
}

func (ghc *GitHubClient) mapError(fallback *domainErrors.AppError, operation string, resp *github.Response, err error) *domainErrors.AppError {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return domainErrors.ErrGitHubRateLimit.
			WithError(err).
			WithContext("operation", operation)
	}

	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.
				WithError(err).
				WithContext("operation", operation)
		case http.StatusForbidden:
			return domainErrors.ErrGitHubInsufficientPerms.
				WithError(err).
				WithContext("operation", operation).
				WithContext("repo", ghc.repoName())
		case http.StatusNotFound:
			return domainErrors.ErrRepositoryNotFound.
				WithError(err).
				WithContext("operation", operation).
				WithContext("repo", ghc.repoName())
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.
				WithError(err).
				WithContext("retry_after", resp.Header.Get("Retry-After")).
				WithContext("operation", operation)
		}
	}

	return fallback.
		WithError(err).
		WithContext("operation", operation).
		WithContext("repo", ghc.repoName())
}

func toExistingIssue(issue *github.Issue) models.ExistingIssue {
	return models.ExistingIssue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		URL:    issue.GetHTMLURL(),
	}
}
