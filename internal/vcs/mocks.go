package vcs

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
)

type MockIssueTracker struct {
	mock.Mock
}

func (m *MockIssueTracker) ListIssues(ctx context.Context) ([]models.ExistingIssue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExistingIssue), args.Error(1)
}

func (m *MockIssueTracker) CreateIssue(ctx context.Context, title, body string) (*models.ExistingIssue, error) {
	args := m.Called(ctx, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExistingIssue), args.Error(1)
}
