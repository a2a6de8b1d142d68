package reader

import (
	"context"
	"path/filepath"
	"strings"

	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/logger"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"github.com/thomas-vilte/gh-issues-importer/internal/parser"
)

// Format is a supported source file format.
type Format int

const (
	FormatTSV Format = iota + 1
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatTSV:
		return "tsv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

var formatsByExtension = map[string]Format{
	".tsv":  FormatTSV,
	".xlsx": FormatXLSX,
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formatsByExtension[ext]
	if !ok {
		return 0, domainErrors.ErrUnsupportedFormat.
			WithContext("extension", ext).
			WithContext("path", path)
	}
	return f, nil
}

type options struct {
	sheet      string
	skipHeader bool
}

type Option func(*options)

// WithSheet reads the named sheet instead of the first one. Ignored for TSV.
func WithSheet(name string) Option {
	return func(o *options) {
		o.sheet = name
	}
}

// WithSkipHeader drops the first non-blank row.
func WithSkipHeader(skip bool) Option {
	return func(o *options) {
		o.skipHeader = skip
	}
}

// ReadRows returns the non-blank rows of path in file order.
func ReadRows(ctx context.Context, path string, opts ...Option) ([]models.Row, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []models.Row
	switch format {
	case FormatTSV:
		rows, err = readTSV(path)
	case FormatXLSX:
		rows, err = readXLSX(path, o.sheet)
	}
	if err != nil {
		return nil, err
	}

	rows = dropBlank(rows)
	if o.skipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	logger.Debug(ctx, "source rows read", "path", path, "format", format.String(), "count", len(rows))
	return rows, nil
}

// ReadProposals reads path and maps every row through p.
func ReadProposals(ctx context.Context, path string, p parser.RowParser, opts ...Option) ([]models.Proposal, error) {
	logger.Info(ctx, "Parsing", "file", path)

	rows, err := ReadRows(ctx, path, opts...)
	if err != nil {
		return nil, err
	}

	proposals := make([]models.Proposal, len(rows))
	for i, row := range rows {
		proposals[i] = p.Parse(row)
	}
	return proposals, nil
}

func dropBlank(rows []models.Row) []models.Row {
	kept := rows[:0]
	for _, row := range rows {
		if !isBlank(row) {
			kept = append(kept, row)
		}
	}
	return kept
}

func isBlank(row models.Row) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
