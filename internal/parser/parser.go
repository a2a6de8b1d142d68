package parser

import "github.com/thomas-vilte/gh-issues-importer/internal/models"

// RowParser maps one source row to a proposal. Implementations must be pure:
// the same row always yields the same proposal.
type RowParser interface {
	Parse(row models.Row) models.Proposal
}

// ParserFunc adapts a plain function to RowParser.
type ParserFunc func(row models.Row) models.Proposal

func (f ParserFunc) Parse(row models.Row) models.Proposal {
	return f(row)
}

// Column returns row[i], or "" when the row is too short.
func Column(row models.Row, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
