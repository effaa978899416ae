// Package poll reads the polling-tool export and computes the presence
// set for a lecture.
package poll

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMalformedDataset indicates the poll export could not be parsed at all.
var ErrMalformedDataset = errors.New("malformed poll dataset")

// Dataset is a column-oriented snapshot of the poll export: one header
// row plus data records. Records may be ragged; missing trailing fields
// read as empty.
type Dataset struct {
	Headers []string
	Records [][]string
}

// Field returns the trimmed value at a record column, or "" when the
// record is shorter.
func (d *Dataset) Field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}

// HeaderIndex returns the index of the first header equal to name
// (case-insensitive), or -1.
func (d *Dataset) HeaderIndex(name string) int {
	target := strings.ToLower(strings.TrimSpace(name))
	for i, h := range d.Headers {
		if strings.ToLower(strings.TrimSpace(h)) == target {
			return i
		}
	}
	return -1
}

// ReadDataset loads a poll export from disk. CSV and XLSX are supported;
// the extension decides which parser runs.
func ReadDataset(path string) (*Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSV(path)
	}
	return readExcel(path)
}

func readCSV(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read poll file: %w", err)
	}

	content, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}

	r := csv.NewReader(strings.NewReader(content))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty file", ErrMalformedDataset)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}

	ds := &Dataset{Headers: headers}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
		}
		ds.Records = append(ds.Records, record)
	}
	return ds, nil
}

func readExcel(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrMalformedDataset)
	}

	return &Dataset{Headers: rows[0], Records: rows[1:]}, nil
}

// decodeText converts raw export bytes to UTF-8. Polling tools emit
// UTF-8 (often with a BOM) or UTF-16; anything else that still validates
// as UTF-8 passes through unchanged.
func decodeText(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, []byte{0xFF, 0xFE}) || bytes.HasPrefix(raw, []byte{0xFE, 0xFF}) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		decoded, _, err := transform.Bytes(decoder, raw)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}

	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("not valid UTF-8 or UTF-16 text")
	}
	return string(raw), nil
}
