package reader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"github.com/thomas-vilte/gh-issues-importer/internal/parser"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}, order ...string) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		require.NoError(t, f.Close())
	}()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, values := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := values
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "talks.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"talks.tsv", FormatTSV, false},
		{"TALKS.TSV", FormatTSV, false},
		{"dir/talks.xlsx", FormatXLSX, false},
		{"talks.csv", 0, true},
		{"talks", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainErrors.ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadRows_TSV(t *testing.T) {
	t.Run("should split lines and tabs and drop blank lines", func(t *testing.T) {
		path := writeFile(t, "talks.tsv", "a\tb\tc\r\n\nd\te\n")

		rows, err := ReadRows(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, []models.Row{{"a", "b", "c"}, {"d", "e"}}, rows)
	})

	t.Run("should keep quotes verbatim", func(t *testing.T) {
		path := writeFile(t, "talks.tsv", "\"quoted\ttitle\"\tx\n")

		rows, err := ReadRows(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, []models.Row{{"\"quoted", "title\"", "x"}}, rows)
	})

	t.Run("should skip the header row when asked", func(t *testing.T) {
		path := writeFile(t, "talks.tsv", "\nTimestamp\tName\n1\tAda\n")

		rows, err := ReadRows(context.Background(), path, WithSkipHeader(true))

		require.NoError(t, err)
		assert.Equal(t, []models.Row{{"1", "Ada"}}, rows)
	})

	t.Run("should fail with a filesystem error when missing", func(t *testing.T) {
		_, err := ReadRows(context.Background(), filepath.Join(t.TempDir(), "missing.tsv"))

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrReadSource))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("should not read once the context is done", func(t *testing.T) {
		path := writeFile(t, "talks.tsv", "a\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ReadRows(ctx, path)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestReadRows_XLSX(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Responses": {
			{"ts", "Ada", "", "@ada", "Go at scale"},
			{},
			{"ts", "Grace", "", "", "Compilers"},
		},
		"Archive": {
			{"old", "Linus", "", "", "Kernels"},
		},
	}, "Responses", "Archive")

	t.Run("should read the first sheet by default", func(t *testing.T) {
		rows, err := ReadRows(context.Background(), path)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Go at scale", parser.Column(rows[0], 4))
		assert.Equal(t, "Compilers", parser.Column(rows[1], 4))
	})

	t.Run("should read the named sheet", func(t *testing.T) {
		rows, err := ReadRows(context.Background(), path, WithSheet("Archive"))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Kernels", parser.Column(rows[0], 4))
	})

	t.Run("should fail for an unknown sheet", func(t *testing.T) {
		_, err := ReadRows(context.Background(), path, WithSheet("Nope"))

		assert.True(t, errors.Is(err, domainErrors.ErrReadSource))
	})

	t.Run("should fail for a file that is not a workbook", func(t *testing.T) {
		bogus := writeFile(t, "bogus.xlsx", "not a zip")

		_, err := ReadRows(context.Background(), bogus)

		assert.True(t, errors.Is(err, domainErrors.ErrReadSource))
	})
}

func TestReadProposals(t *testing.T) {
	t.Run("should apply the parser to every row in order", func(t *testing.T) {
		path := writeFile(t, "talks.tsv", "ts\tAda\t\t\tFirst\n\nts\tGrace\t\t\tSecond\n")

		proposals, err := ReadProposals(context.Background(), path, parser.Default)

		require.NoError(t, err)
		require.Len(t, proposals, 2)
		assert.Equal(t, "First", proposals[0].Title())
		assert.Equal(t, "Ada", proposals[0]["author"])
		assert.Equal(t, "Second", proposals[1].Title())
	})

	t.Run("should reject unsupported extensions before touching the file", func(t *testing.T) {
		called := false
		p := parser.ParserFunc(func(row models.Row) models.Proposal {
			called = true
			return nil
		})

		_, err := ReadProposals(context.Background(), "talks.csv", p)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrUnsupportedFormat))
		assert.Contains(t, err.Error(), "talks.csv")
		assert.False(t, called)
	})
}
