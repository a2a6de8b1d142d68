package template

import (
	"sort"
	"strings"

	"github.com/thomas-vilte/gh-issues-importer/internal/models"
)

// Render replaces every <field> placeholder in tmpl with the proposal value.
// Substitution is a single left-to-right pass: values are never rescanned, so
// a value containing "<title>" is inserted literally. Placeholders without a
// matching field stay as they are.
func Render(tmpl string, p models.Proposal) string {
	if len(p) == 0 {
		return tmpl
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "<"+k+">", p[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
