package parser

import (
	"strings"

	"github.com/thomas-vilte/gh-issues-importer/internal/models"
)

const (
	DefaultName        = "default"
	EmpireNode2014Name = "empirenode-2014"
)

// Default reads the stock call-for-papers export: timestamp, three author
// columns, then title, description, audience and free-form notes.
var Default = ParserFunc(func(row models.Row) models.Proposal {
	authors := make([]string, 0, 3)
	for i := 1; i <= 3; i++ {
		if v := Column(row, i); v != "" {
			authors = append(authors, v)
		}
	}

	return models.Proposal{
		"author":        strings.Join(authors, "\n"),
		"title":         Column(row, 4),
		"description":   Column(row, 5),
		"audience":      Column(row, 6),
		"anything-else": Column(row, 7),
	}
})

// EmpireNode2014 matches the EmpireNode 2014 submission form.
var EmpireNode2014 = ParserFunc(func(row models.Row) models.Proposal {
	return models.Proposal{
		"author":       Column(row, 1),
		"email":        Column(row, 2),
		"twitter":      Column(row, 3),
		"github":       Column(row, 4),
		"outside":      Column(row, 5),
		"title":        Column(row, 6),
		"audience":     Column(row, 7),
		"company":      Column(row, 8),
		"attend":       Column(row, 9),
		"kitchen-sink": Column(row, 10),
		"description":  Column(row, 11),
	}
})

func registerBuiltins(r *Registry) {
	// names are distinct constants, so registration cannot collide
	_ = r.Register(DefaultName, Default)
	_ = r.Register(EmpireNode2014Name, EmpireNode2014)
}
