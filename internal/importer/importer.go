package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/logger"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"github.com/thomas-vilte/gh-issues-importer/internal/parser"
	"github.com/thomas-vilte/gh-issues-importer/internal/reader"
	"github.com/thomas-vilte/gh-issues-importer/internal/template"
	"github.com/thomas-vilte/gh-issues-importer/internal/vcs"
	"golang.org/x/sync/errgroup"
)

// debugSeparator puts two blank lines between rendered proposals.
const debugSeparator = "\n\n\n"

// TemplateLoader resolves a template path into a parsed template.
type TemplateLoader func(ctx context.Context, path string) (*template.IssueTemplate, error)

type Importer struct {
	tracker      vcs.IssueTracker
	parsers      *parser.Registry
	loadTemplate TemplateLoader
}

type Option func(*Importer)

func WithParserRegistry(r *parser.Registry) Option {
	return func(i *Importer) {
		i.parsers = r
	}
}

func WithTemplateLoader(l TemplateLoader) Option {
	return func(i *Importer) {
		i.loadTemplate = l
	}
}

func NewImporter(tracker vcs.IssueTracker, opts ...Option) *Importer {
	i := &Importer{
		tracker:      tracker,
		parsers:      parser.NewRegistry(),
		loadTemplate: template.Load,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import runs one import: read everything, drop proposals whose title is
// already an issue, then either write debug.md or create the rest. The first
// error aborts the run; issues created before it are kept.
func (i *Importer) Import(ctx context.Context, opts models.ImportOptions) (*models.ImportSummary, error) {
	rowParser, err := i.parsers.Lookup(opts.Parser)
	if err != nil {
		return nil, err
	}
	// fail on the extension before anything reaches the tracker
	if _, err := reader.DetectFormat(opts.File); err != nil {
		return nil, err
	}

	var (
		proposals []models.Proposal
		tmpl      *template.IssueTemplate
		existing  []models.ExistingIssue
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		proposals, err = reader.ReadProposals(gctx, opts.File, rowParser,
			reader.WithSheet(opts.Sheet),
			reader.WithSkipHeader(opts.SkipHeader))
		return err
	})
	g.Go(func() error {
		var err error
		tmpl, err = i.loadTemplate(gctx, opts.Template)
		return err
	})
	g.Go(func() error {
		var err error
		existing, err = i.tracker.ListIssues(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &models.ImportSummary{Parsed: len(proposals)}
	pending := filterExisting(ctx, proposals, existingTitles(existing, tmpl.TitlePrefix()))
	summary.Skipped = len(proposals) - len(pending)

	if opts.Debug {
		path, err := writeDebug(opts.DebugDir, tmpl, pending)
		if err != nil {
			return nil, err
		}
		summary.DebugFile = path
		logger.Info(ctx, "Debug output written", "path", path, "count", len(pending))
		return summary, nil
	}

	created, err := i.createAll(ctx, tmpl, pending, opts.Concurrency)
	summary.Created = created
	if err != nil {
		return summary, err
	}

	logger.Info(ctx, "Import finished",
		"parsed", summary.Parsed,
		"skipped", summary.Skipped,
		"created", len(summary.Created))
	return summary, nil
}

func (i *Importer) createAll(ctx context.Context, tmpl *template.IssueTemplate, pending []models.Proposal, limit int) ([]models.ExistingIssue, error) {
	if limit <= 0 {
		limit = models.DefaultConcurrency
	}

	// each goroutine writes only its own slot
	results := make([]*models.ExistingIssue, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for idx, p := range pending {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			logger.Info(gctx, "Creating", "title", p.Title())
			issue, err := i.tracker.CreateIssue(gctx, p.Title(), tmpl.Render(p))
			if err != nil {
				logger.Error(gctx, "failed to create issue", err, "title", p.Title())
				return err
			}
			results[idx] = issue
			return nil
		})
	}
	err := g.Wait()

	created := make([]models.ExistingIssue, 0, len(results))
	for _, issue := range results {
		if issue != nil {
			created = append(created, *issue)
		}
	}
	return created, err
}

// NormalizeTitle removes prefix from the start of title. Only a leading
// prefix is removed, once.
func NormalizeTitle(title, prefix string) string {
	return strings.TrimPrefix(title, prefix)
}

func existingTitles(issues []models.ExistingIssue, prefix string) map[string]struct{} {
	titles := make(map[string]struct{}, len(issues))
	for _, issue := range issues {
		titles[NormalizeTitle(issue.Title, prefix)] = struct{}{}
	}
	return titles
}

func filterExisting(ctx context.Context, proposals []models.Proposal, titles map[string]struct{}) []models.Proposal {
	pending := make([]models.Proposal, 0, len(proposals))
	for _, p := range proposals {
		title := p.Title()
		if title == "" {
			logger.Warn(ctx, "Skipping proposal without title", "fields", len(p))
			continue
		}
		if _, exists := titles[title]; exists {
			logger.Info(ctx, "Already exists", "title", title)
			continue
		}
		pending = append(pending, p)
	}
	return pending
}

func writeDebug(dir string, tmpl *template.IssueTemplate, proposals []models.Proposal) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", domainErrors.ErrWriteDebug.WithError(err)
		}
		dir = wd
	}

	rendered := make([]string, len(proposals))
	for idx, p := range proposals {
		rendered[idx] = tmpl.Render(p)
	}

	path := filepath.Join(dir, models.DebugFileName)
	if err := os.WriteFile(path, []byte(strings.Join(rendered, debugSeparator)), 0644); err != nil {
		return "", domainErrors.ErrWriteDebug.WithError(err).WithContext("path", path)
	}
	return path, nil
}
