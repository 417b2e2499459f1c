package pipeline

import (
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"triaxis/internal/models"
)

// ReadXLSX parses the first worksheet of a workbook. The first row is the
// header; short rows are padded with empty cells and blank rows dropped.
func ReadXLSX(r io.Reader, source string) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no worksheets")
	}

	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var rows [][]string
	width := 0
	for _, row := range raw {
		if blank(row) {
			continue
		}
		rows = append(rows, row)
		if len(row) > width {
			width = len(row)
		}
	}
	if len(rows) == 0 {
		return nil, errNoColumns(source)
	}

	for i, row := range rows {
		if len(row) < width {
			rows[i] = append(row, make([]string, width-len(row))...)
		}
	}
	return models.NewTable(source, rows[0], rows[1:])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
