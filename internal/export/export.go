package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/lehigh-university-libraries/hbw/internal/search"
)

const (
	DefaultPrefix = "HBW"
	MIMEType      = "text/csv"
)

// Download is an export ready to hand to the user
type Download struct {
	Data     []byte
	Filename string
	MIMEType string
}

// Formatter writes filtered views as CSV
type Formatter struct {
	Prefix  string
	Columns []string
}

// NewFormatter exports the given columns (display columns followed by
// authority columns)
func NewFormatter(columns []string) *Formatter {
	return &Formatter{
		Prefix:  DefaultPrefix,
		Columns: columns,
	}
}

// CSV serializes the view with a header row and no index column
func (f *Formatter) CSV(rs corpus.RecordSet, view search.View) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(f.Columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(f.Columns))
	for _, pos := range view {
		rec := &rs[pos]
		for i, col := range f.Columns {
			row[i], _ = rec.Value(col)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// filenameReplacer turns search text into a single path element
var filenameReplacer = strings.NewReplacer(" ", "-", "/", "-", "\\", "-", "\x00", "")

// Filename encodes the active filter, e.g. HBW_1900-1925-harlem-poetry.csv.
// The result never contains a path separator.
func (f *Formatter) Filename(c search.Criteria) string {
	name := fmt.Sprintf("%s_%d-%d", f.Prefix, c.Begin, c.End)
	if c.Search != "" {
		name += "-" + filenameReplacer.Replace(c.Search)
	}
	return filenameReplacer.Replace(name) + ".csv"
}

// Export builds the CSV payload and its filename
func (f *Formatter) Export(rs corpus.RecordSet, view search.View, c search.Criteria) (*Download, error) {
	data, err := f.CSV(rs, view)
	if err != nil {
		return nil, err
	}
	return &Download{
		Data:     data,
		Filename: f.Filename(c),
		MIMEType: MIMEType,
	}, nil
}
