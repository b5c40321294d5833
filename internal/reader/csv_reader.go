package reader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// Table is a CSV file's header row and its raw rows in file order.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Column returns the index of the header name, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

type CSVReader struct {
	reader      io.Reader
	comma       rune
	detectComma bool
}

type CSVOption func(*CSVReader)

// WithComma sets a fixed field delimiter.
func WithComma(r rune) CSVOption {
	return func(cr *CSVReader) {
		cr.comma = r
		cr.detectComma = false
	}
}

// WithDetectedDelimiter sniffs the delimiter from the input before parsing.
func WithDetectedDelimiter() CSVOption {
	return func(cr *CSVReader) {
		cr.detectComma = true
	}
}

func NewCSVReader(reader io.Reader, opts ...CSVOption) *CSVReader {
	cr := &CSVReader{
		reader: reader,
		comma:  ',',
	}
	for _, opt := range opts {
		opt(cr)
	}
	return cr
}

// ReadTable reads the header and every row. Header cells are trimmed and a
// leading byte order mark is dropped.
func (cr *CSVReader) ReadTable() (*Table, error) {
	src := cr.reader
	comma := cr.comma

	if cr.detectComma {
		data, err := io.ReadAll(cr.reader)
		if err != nil {
			return nil, err
		}
		comma = DetectDelimiter(bytes.NewReader(data))
		src = bytes.NewReader(data)
	}

	csvReader := csv.NewReader(src)
	csvReader.Comma = comma

	headers, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, err
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	t := &Table{Headers: headers}
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// DetectDelimiter returns the most likely field delimiter, defaulting to a comma.
func DetectDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	// free text columns make spaces and punctuation look like delimiters too
	for _, c := range delimiters {
		if len(c) == 1 && strings.ContainsRune(knownDelimiters, rune(c[0])) {
			return rune(c[0])
		}
	}

	return ','
}

const knownDelimiters = ",\t;|"
