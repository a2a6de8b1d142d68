package reader

import (
	"fmt"

	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"github.com/xuri/excelize/v2"
)

func readXLSX(path, sheet string) (rows []models.Row, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domainErrors.ErrReadSource.WithError(err).WithContext("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = domainErrors.ErrReadSource.WithError(cerr).WithContext("path", path)
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, domainErrors.ErrReadSource.
			WithError(fmt.Errorf("sheet %q: %w", sheet, err)).
			WithContext("path", path)
	}

	rows = make([]models.Row, len(cells))
	for i, c := range cells {
		rows[i] = models.Row(c)
	}
	return rows, nil
}
