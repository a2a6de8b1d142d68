package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thomas-vilte/gh-issues-importer/internal/commands/import_issues"
	"github.com/thomas-vilte/gh-issues-importer/internal/commands/parsers"
	"github.com/thomas-vilte/gh-issues-importer/internal/commands/registry"
	cfg "github.com/thomas-vilte/gh-issues-importer/internal/config"
	"github.com/thomas-vilte/gh-issues-importer/internal/i18n"
	"github.com/thomas-vilte/gh-issues-importer/internal/importer"
	"github.com/thomas-vilte/gh-issues-importer/internal/logger"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"github.com/thomas-vilte/gh-issues-importer/internal/parser"
	"github.com/thomas-vilte/gh-issues-importer/internal/ui"
	"github.com/thomas-vilte/gh-issues-importer/internal/vcs/github"
	"github.com/thomas-vilte/gh-issues-importer/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		ui.HandleAppError(os.Stderr, err, nil)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	configPath, err := cfg.DefaultPath()
	if err != nil {
		return nil, nil, err
	}

	cfgApp, err := cfg.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	rowParsers := parser.NewRegistry()
	commands := registry.NewRegistry(cfgApp, translations)

	if err := commands.Register("import", import_issues.NewImportCommandFactory(newImporterProvider(rowParsers))); err != nil {
		return nil, nil, err
	}
	if err := commands.Register("parsers", parsers.NewParsersCommandFactory(rowParsers)); err != nil {
		return nil, nil, err
	}

	return &cli.Command{
		Name:        "gh-issues-importer",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Description: translations.GetMessage("app_description", 0, nil),
		Version:     version.FullVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("verbose_flag", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   translations.GetMessage("quiet_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: translations.GetMessage("lang_flag", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("verbose"), cmd.Bool("quiet"))
			if lang := cmd.String("lang"); lang != "" {
				if err := translations.SetLanguage(cfg.GetLocaleConfig(lang)); err != nil {
					logger.Warn(ctx, "language not available", "lang", lang)
				}
			}
			return ctx, nil
		},
		Commands: commands.CreateCommands(),
	}, translations, nil
}

func newImporterProvider(rowParsers *parser.Registry) import_issues.ImporterProvider {
	return func(ctx context.Context, repo models.Repository, creds models.Credentials, apiURL string) (import_issues.ProposalImporter, error) {
		client, err := github.NewGitHubClient(repo, creds, apiURL)
		if err != nil {
			return nil, err
		}
		logger.Debug(ctx, "github client ready", "repo", repo.String(), "basic_auth", creds.IsBasic())
		return importer.NewImporter(client, importer.WithParserRegistry(rowParsers)), nil
	}
}
