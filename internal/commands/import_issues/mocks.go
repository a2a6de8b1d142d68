package import_issues

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
)

type MockProposalImporter struct {
	mock.Mock
}

func (m *MockProposalImporter) Import(ctx context.Context, opts models.ImportOptions) (*models.ImportSummary, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportSummary), args.Error(1)
}
