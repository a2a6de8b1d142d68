package reader

import (
	"os"
	"strings"

	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
)

// readTSV splits on newlines and tabs only. Quotes carry no meaning, which
// matches how spreadsheet tools export tab-separated sheets.
func readTSV(path string) ([]models.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainErrors.ErrReadSource.WithError(err).WithContext("path", path)
	}

	lines := strings.Split(string(data), "\n")
	rows := make([]models.Row, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		rows = append(rows, models.Row(strings.Split(line, "\t")))
	}
	return rows, nil
}
