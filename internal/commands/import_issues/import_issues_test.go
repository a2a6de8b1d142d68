package import_issues

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/gh-issues-importer/internal/config"
	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/i18n"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"github.com/urfave/cli/v3"
)

type providerCall struct {
	repo   models.Repository
	creds  models.Credentials
	apiURL string
}

func setupImportTest(t *testing.T) (*MockProposalImporter, *[]providerCall, *i18n.Translations, *config.Config) {
	t.Helper()
	t.Setenv("GITHUB_AUTH", "")
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	cfg := &config.Config{Language: "en", DefaultParser: "default", Concurrency: 5}
	return &MockProposalImporter{}, &[]providerCall{}, trans, cfg
}

func runImport(t *testing.T, imp *MockProposalImporter, calls *[]providerCall, trans *i18n.Translations, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	provider := func(ctx context.Context, repo models.Repository, creds models.Credentials, apiURL string) (ProposalImporter, error) {
		*calls = append(*calls, providerCall{repo: repo, creds: creds, apiURL: apiURL})
		return imp, nil
	}

	var out bytes.Buffer
	cmd := NewImportCommandFactory(provider).CreateCommand(trans, cfg)
	app := &cli.Command{Name: "test", Writer: &out, Commands: []*cli.Command{cmd}}
	err := app.Run(context.Background(), append([]string{"test", "import"}, args...))
	return out.String(), err
}

func TestImportAction(t *testing.T) {
	t.Run("should fail without the required flags", func(t *testing.T) {
		imp, calls, trans, cfg := setupImportTest(t)

		_, err := runImport(t, imp, calls, trans, cfg, "--auth", "me:tok", "--file", "talks.tsv")

		assert.Error(t, err)
		assert.Empty(t, *calls)
	})

	t.Run("should reject a malformed repository", func(t *testing.T) {
		imp, calls, trans, cfg := setupImportTest(t)

		_, err := runImport(t, imp, calls, trans, cfg, "-a", "me:tok", "-r", "nope", "-f", "talks.tsv")

		assert.True(t, errors.Is(err, domainErrors.ErrInvalidRepository))
		assert.Empty(t, *calls)
	})

	t.Run("should require credentials", func(t *testing.T) {
		imp, calls, trans, cfg := setupImportTest(t)

		_, err := runImport(t, imp, calls, trans, cfg, "-r", "empirejs/2014-cfp", "-f", "talks.tsv")

		assert.True(t, errors.Is(err, domainErrors.ErrAuthMissing))
		assert.Empty(t, *calls)
		imp.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
	})

	t.Run("should import with flags merged over config", func(t *testing.T) {
		imp, calls, trans, cfg := setupImportTest(t)
		cfg.DefaultParser = "empirenode-2014"
		cfg.Concurrency = 3

		expected := models.ImportOptions{
			Auth:        "me:tok",
			Repo:        "empirejs/2014-cfp",
			File:        "talks.tsv",
			Template:    "issue.md",
			Parser:      "empirenode-2014",
			Concurrency: 3,
		}
		imp.On("Import", mock.Anything, expected).Return(&models.ImportSummary{
			Parsed:  2,
			Skipped: 1,
			Created: []models.ExistingIssue{{Number: 7, Title: "Go at scale"}},
		}, nil).Once()

		out, err := runImport(t, imp, calls, trans, cfg,
			"-a", "me:tok", "-r", "empirejs/2014-cfp", "-f", "talks.tsv", "-t", "issue.md")

		require.NoError(t, err)
		imp.AssertExpectations(t)
		require.Len(t, *calls, 1)
		assert.Equal(t, models.Repository{Owner: "empirejs", Name: "2014-cfp"}, (*calls)[0].repo)
		assert.Equal(t, models.Credentials{Username: "me", Secret: "tok"}, (*calls)[0].creds)
		assert.Contains(t, out, "#7: Go at scale")
		assert.Contains(t, out, "2 parsed, 1 skipped, 1 created")
	})

	t.Run("should read credentials from the environment", func(t *testing.T) {
		imp, calls, trans, cfg := setupImportTest(t)
		t.Setenv("GITHUB_AUTH", "ghp_token")

		imp.On("Import", mock.Anything, mock.Anything).Return(&models.ImportSummary{}, nil).Once()

		_, err := runImport(t, imp, calls, trans, cfg, "-r", "o/r", "-f", "talks.tsv")

		require.NoError(t, err)
		assert.Equal(t, models.Credentials{Secret: "ghp_token"}, (*calls)[0].creds)
	})

	t.Run("should fall back to config credentials and api url", func(t *testing.T) {
		imp, calls, trans, cfg := setupImportTest(t)
		cfg.Auth = "bot:secret"
		cfg.APIURL = "https://ghe.example.com/"

		imp.On("Import", mock.Anything, mock.Anything).Return(&models.ImportSummary{}, nil).Once()

		_, err := runImport(t, imp, calls, trans, cfg, "-r", "o/r", "-f", "talks.tsv")

		require.NoError(t, err)
		assert.Equal(t, models.Credentials{Username: "bot", Secret: "secret"}, (*calls)[0].creds)
		assert.Equal(t, "https://ghe.example.com/", (*calls)[0].apiURL)
	})

	t.Run("should report the debug file", func(t *testing.T) {
		imp, calls, trans, cfg := setupImportTest(t)

		imp.On("Import", mock.Anything, mock.MatchedBy(func(o models.ImportOptions) bool {
			return o.Debug && o.Sheet == "Responses" && o.SkipHeader && o.Concurrency == 2
		})).Return(&models.ImportSummary{Parsed: 3, DebugFile: "/tmp/debug.md"}, nil).Once()

		out, err := runImport(t, imp, calls, trans, cfg,
			"-a", "tok", "-r", "o/r", "-f", "talks.xlsx", "-d", "--sheet", "Responses", "--skip-header", "-c", "2")

		require.NoError(t, err)
		imp.AssertExpectations(t)
		assert.Contains(t, out, "Rendered 3 issues into /tmp/debug.md")
		assert.NotContains(t, out, "created")
	})

	t.Run("should say when nothing is new", func(t *testing.T) {
		imp, calls, trans, cfg := setupImportTest(t)

		imp.On("Import", mock.Anything, mock.Anything).Return(&models.ImportSummary{Parsed: 2, Skipped: 2}, nil).Once()

		out, err := runImport(t, imp, calls, trans, cfg, "-a", "tok", "-r", "o/r", "-f", "talks.tsv")

		require.NoError(t, err)
		assert.Contains(t, out, "Every proposal already has an issue")
	})

	t.Run("should print partial results and return the error", func(t *testing.T) {
		imp, calls, trans, cfg := setupImportTest(t)
		createErr := domainErrors.ErrCreateIssue.WithError(errors.New("502"))

		imp.On("Import", mock.Anything, mock.Anything).Return(&models.ImportSummary{
			Parsed:  3,
			Created: []models.ExistingIssue{{Number: 1, Title: "First"}},
		}, createErr).Once()

		out, err := runImport(t, imp, calls, trans, cfg, "-a", "tok", "-r", "o/r", "-f", "talks.tsv")

		assert.True(t, errors.Is(err, domainErrors.ErrCreateIssue))
		assert.Contains(t, out, "#1: First")
		assert.Contains(t, out, "Import stopped after 1 issues")
	})

	t.Run("should return provider errors", func(t *testing.T) {
		_, _, trans, cfg := setupImportTest(t)
		provider := func(ctx context.Context, repo models.Repository, creds models.Credentials, apiURL string) (ProposalImporter, error) {
			return nil, domainErrors.ErrInvalidConfig
		}

		cmd := NewImportCommandFactory(provider).CreateCommand(trans, cfg)
		app := &cli.Command{Name: "test", Writer: &bytes.Buffer{}, Commands: []*cli.Command{cmd}}
		err := app.Run(context.Background(), []string{"test", "import", "-a", "tok", "-r", "o/r", "-f", "talks.tsv"})

		assert.True(t, errors.Is(err, domainErrors.ErrInvalidConfig))
	})
}
