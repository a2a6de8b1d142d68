package parsers

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/gh-issues-importer/internal/config"
	"github.com/thomas-vilte/gh-issues-importer/internal/i18n"
	"github.com/thomas-vilte/gh-issues-importer/internal/parser"
	"github.com/thomas-vilte/gh-issues-importer/internal/ui"
	"github.com/urfave/cli/v3"
)

// ParsersCommandFactory lists the registered row parsers.
type ParsersCommandFactory struct {
	registry *parser.Registry
}

func NewParsersCommandFactory(registry *parser.Registry) *ParsersCommandFactory {
	return &ParsersCommandFactory{registry: registry}
}

func (f *ParsersCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "parsers",
		Usage: t.GetMessage("parsers.usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			defaultName := cfg.DefaultParser
			if defaultName == "" {
				defaultName = parser.DefaultName
			}

			ui.PrintInfo(out, t.GetMessage("parsers.header", 0, nil))
			for _, name := range f.registry.Names() {
				if name == defaultName {
					_, _ = fmt.Fprintf(out, "   %s %s\n", name, ui.Dim.Sprint(t.GetMessage("parsers.default_marker", 0, nil)))
					continue
				}
				_, _ = fmt.Fprintf(out, "   %s\n", name)
			}
			return nil
		},
	}
}
