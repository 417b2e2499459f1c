package pipeline

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"triaxis/internal/models"
)

const utf8BOM = "\ufeff"

// ReadCSV parses comma-separated text with a header row.
func ReadCSV(r io.Reader, source string) (*models.Table, error) {
	return readSeparated(r, source, ',')
}

// ReadTSV parses tab-separated text with a header row.
func ReadTSV(r io.Reader, source string) (*models.Table, error) {
	return readSeparated(r, source, '\t')
}

func readSeparated(r io.Reader, source string, sep rune) (*models.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errNoColumns(source)
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	return models.NewTable(source, header, records[1:])
}

// ReadWhitespace parses text whose fields are separated by runs of spaces
// or tabs. Blank lines are skipped.
func ReadWhitespace(r io.Reader, source string) (*models.Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var header []string
	var rows [][]string
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if header == nil {
			fields[0] = strings.TrimPrefix(fields[0], utf8BOM)
			header = fields
			continue
		}
		rows = append(rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if header == nil {
		return nil, errNoColumns(source)
	}
	return models.NewTable(source, header, rows)
}
