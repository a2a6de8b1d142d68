package template

import (
	"context"
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/logger"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultTitlePrefix is stripped from existing titles when the template does
// not say otherwise.
const DefaultTitlePrefix = "[Talk] "

//go:embed templates/issue.md
var defaultTemplate string

// IssueTemplate is a markdown issue body with optional YAML front matter.
type IssueTemplate struct {
	Name  string  `yaml:"name"`
	About string  `yaml:"about,omitempty"`
	Title *string `yaml:"title,omitempty"`

	Body     string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// TitlePrefix is the marker removed from existing issue titles before they are
// compared with proposal titles.
func (t *IssueTemplate) TitlePrefix() string {
	if t.Title == nil {
		return DefaultTitlePrefix
	}
	return *t.Title
}

// Render fills the template body with p.
func (t *IssueTemplate) Render(p models.Proposal) string {
	return Render(t.Body, p)
}

// Load reads the template at path, or the bundled one when path is empty.
func Load(ctx context.Context, path string) (*IssueTemplate, error) {
	if path == "" {
		logger.Debug(ctx, "using bundled issue template")
		return Parse(ctx, defaultTemplate, "issue.md"), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Error(ctx, "failed to read template file", err, "path", path)
		return nil, domainErrors.ErrReadTemplate.WithError(err).WithContext("path", path)
	}

	return Parse(ctx, string(content), path), nil
}

// Parse splits optional front matter from the body. Front matter that is not
// valid YAML is kept as part of the body.
func Parse(ctx context.Context, content, filePath string) *IssueTemplate {
	t := &IssueTemplate{FilePath: filePath, Body: content}

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if strings.HasPrefix(normalized, "---\n") {
		parts := strings.SplitN(normalized, "---\n", 3)
		if len(parts) == 3 {
			var meta IssueTemplate
			if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
				logger.Warn(ctx, "failed to parse YAML front matter, using as plain markdown", "path", filePath, "error", err)
			} else {
				t.Name, t.About, t.Title = meta.Name, meta.About, meta.Title
				t.Body = strings.TrimSpace(parts[2])
			}
		}
	}

	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	logger.Debug(ctx, "issue template loaded", "name", t.Name, "path", filePath)
	return t
}
