package import_issues

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/gh-issues-importer/internal/config"
	"github.com/thomas-vilte/gh-issues-importer/internal/i18n"
	"github.com/thomas-vilte/gh-issues-importer/internal/logger"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"github.com/thomas-vilte/gh-issues-importer/internal/ui"
	"github.com/urfave/cli/v3"
)

// ProposalImporter is the slice of the importer the command drives.
type ProposalImporter interface {
	Import(ctx context.Context, opts models.ImportOptions) (*models.ImportSummary, error)
}

// ImporterProvider builds an importer bound to one repository.
type ImporterProvider func(ctx context.Context, repo models.Repository, creds models.Credentials, apiURL string) (ProposalImporter, error)

// ImportCommandFactory is the factory to create the import command.
type ImportCommandFactory struct {
	importerProvider ImporterProvider
}

func NewImportCommandFactory(provider ImporterProvider) *ImportCommandFactory {
	return &ImportCommandFactory{importerProvider: provider}
}

func (f *ImportCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "import",
		Usage:  t.GetMessage("import.usage", 0, nil),
		Flags:  f.createFlags(t),
		Action: f.createAction(t, cfg),
	}
}

func (f *ImportCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "auth",
			Aliases: []string{"a"},
			Usage:   t.GetMessage("import.auth_flag", 0, nil),
			Sources: cli.EnvVars("GITHUB_AUTH"),
		},
		&cli.StringFlag{
			Name:     "repo",
			Aliases:  []string{"r"},
			Usage:    t.GetMessage("import.repo_flag", 0, nil),
			Required: true,
		},
		&cli.StringFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Usage:    t.GetMessage("import.file_flag", 0, nil),
			Required: true,
		},
		&cli.StringFlag{
			Name:    "template",
			Aliases: []string{"t"},
			Usage:   t.GetMessage("import.template_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:    "parser",
			Aliases: []string{"p"},
			Usage:   t.GetMessage("import.parser_flag", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   t.GetMessage("import.debug_flag", 0, nil),
		},
		&cli.IntFlag{
			Name:    "concurrency",
			Aliases: []string{"c"},
			Usage:   t.GetMessage("import.concurrency_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  "sheet",
			Usage: t.GetMessage("import.sheet_flag", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "skip-header",
			Usage: t.GetMessage("import.skip_header_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  "api-url",
			Usage: t.GetMessage("import.api_url_flag", 0, nil),
		},
	}
}

// buildOptions merges flags over the config file. Flags win when set.
func buildOptions(cmd *cli.Command, cfg *config.Config) models.ImportOptions {
	opts := models.ImportOptions{
		Auth:        cmd.String("auth"),
		Repo:        cmd.String("repo"),
		File:        cmd.String("file"),
		Sheet:       cmd.String("sheet"),
		SkipHeader:  cmd.Bool("skip-header"),
		Template:    cmd.String("template"),
		Parser:      cmd.String("parser"),
		Debug:       cmd.Bool("debug"),
		Concurrency: int(cmd.Int("concurrency")),
	}

	if opts.Auth == "" {
		opts.Auth = cfg.Auth
	}
	if opts.Template == "" {
		opts.Template = cfg.DefaultTemplate
	}
	if opts.Parser == "" {
		opts.Parser = cfg.DefaultParser
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = cfg.Concurrency
	}
	return opts
}

func (f *ImportCommandFactory) createAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		opts := buildOptions(cmd, cfg)

		repo, err := models.ParseRepository(opts.Repo)
		if err != nil {
			return err
		}
		creds, err := models.ParseCredentials(opts.Auth)
		if err != nil {
			return err
		}

		apiURL := cmd.String("api-url")
		if apiURL == "" {
			apiURL = cfg.APIURL
		}

		ctx = logger.With(ctx, "repo", repo.String())
		imp, err := f.importerProvider(ctx, repo, creds, apiURL)
		if err != nil {
			return err
		}

		out := cmd.Root().Writer
		var summary *models.ImportSummary
		run := func() error {
			var err error
			summary, err = imp.Import(ctx, opts)
			return err
		}

		// in quiet mode there are no progress logs, so show a spinner
		if cmd.Bool("quiet") {
			err = ui.WithSpinner(out, t.GetMessage("import.working", 0, nil), t.GetMessage("import.done", 0, nil), run)
		} else {
			err = run()
		}

		if summary != nil {
			printSummary(cmd, t, summary)
		}
		if err != nil {
			if summary != nil {
				ui.PrintWarning(out, t.GetMessage("import.interrupted", 0, map[string]interface{}{
					"Created": len(summary.Created),
				}))
			}
			return err
		}
		return nil
	}
}

func printSummary(cmd *cli.Command, t *i18n.Translations, summary *models.ImportSummary) {
	out := cmd.Root().Writer

	if summary.DebugFile != "" {
		count := summary.Parsed - summary.Skipped
		ui.PrintSuccess(out, t.GetMessage("import.debug_written", count, map[string]interface{}{
			"Count": count,
			"Path":  summary.DebugFile,
		}))
		return
	}

	if len(summary.Created) > 0 {
		ui.PrintSectionBanner(out, t.GetMessage("import.created_header", 0, nil))
		for _, issue := range summary.Created {
			ui.PrintKeyValue(out, fmt.Sprintf("#%d", issue.Number), issue.Title)
		}
		_, _ = fmt.Fprintln(out)
	} else if summary.Parsed > 0 && summary.Skipped == summary.Parsed {
		ui.PrintInfo(out, t.GetMessage("import.nothing_to_create", 0, nil))
	}

	ui.PrintSuccess(out, t.GetMessage("import.summary", 0, map[string]interface{}{
		"Parsed":  summary.Parsed,
		"Skipped": summary.Skipped,
		"Created": len(summary.Created),
	}))
}
