package corpus

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader reads the HBW metadata export and derives the RecordSet
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load reads every row of the dataset (CSV, Parquet or JSONL)
func (l *Loader) Load() (RecordSet, error) {
	return l.load(-1)
}

// LoadSample reads at most limit rows (useful for inspecting large files)
func (l *Loader) LoadSample(limit int) (RecordSet, error) {
	return l.load(limit)
}

func (l *Loader) load(limit int) (RecordSet, error) {
	raw, err := l.ReadRaw(limit)
	if err != nil {
		return nil, err
	}

	records, err := Derive(raw)
	if err != nil {
		var dle *DataLoadError
		if errors.As(err, &dle) {
			dle.Path = l.datasetPath
			return nil, dle
		}
		return nil, &DataLoadError{Path: l.datasetPath, Err: err}
	}

	slog.Debug("Derived records", "path", l.datasetPath, "records", len(records))
	return records, nil
}

// ReadRaw reads the source table without deriving anything. A negative
// limit reads every row.
func (l *Loader) ReadRaw(limit int) (RawTable, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	var (
		raw RawTable
		err error
	)
	switch ext {
	case ".csv":
		raw, err = l.readCSV(limit)
	case ".parquet":
		raw, err = l.readParquet(limit)
	case ".jsonl", ".json":
		raw, err = l.readJSONL(limit)
	default:
		err = fmt.Errorf("unsupported file format: %s (supported: .csv, .parquet, .jsonl)", ext)
	}
	if err != nil {
		return RawTable{}, &DataLoadError{Path: l.datasetPath, Err: err}
	}
	return raw, nil
}

func (l *Loader) open() (*os.File, os.FileInfo, error) {
	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	slog.Debug("Dataset file stats", "path", l.datasetPath, "size_bytes", info.Size())
	return file, info, nil
}

// readCSV loads a comma separated export with a header row
func (l *Loader) readCSV(limit int) (RawTable, error) {
	file, _, err := l.open()
	if err != nil {
		return RawTable{}, err
	}
	defer file.Close()

	r := csv.NewReader(bufio.NewReader(file))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return RawTable{}, fmt.Errorf("dataset is empty")
		}
		return RawTable{}, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	raw := RawTable{Columns: header}
	for limit < 0 || len(raw.Rows) < limit {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return RawTable{}, fmt.Errorf("failed to parse CSV: %w", err)
		}
		raw.Rows = append(raw.Rows, row)

		if len(raw.Rows)%1000 == 0 {
			slog.Debug("Reading CSV", "rows_read", len(raw.Rows))
		}
	}

	slog.Debug("Finished reading CSV file", "columns", len(raw.Columns), "rows", len(raw.Rows))
	return raw, nil
}

// readParquet loads a flat Parquet export; each leaf column becomes a column
// of the raw table
func (l *Loader) readParquet(limit int) (RawTable, error) {
	file, info, err := l.open()
	if err != nil {
		return RawTable{}, err
	}
	defer file.Close()

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return RawTable{}, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	paths := pf.Schema().Columns()
	raw := RawTable{Columns: make([]string, len(paths))}
	for i, path := range paths {
		raw.Columns[i] = strings.Join(path, ".")
	}

	buf := make([]parquet.Row, 128)
	for _, rg := range pf.RowGroups() {
		if limit >= 0 && len(raw.Rows) >= limit {
			break
		}
		if err := readRowGroup(rg, buf, len(paths), limit, &raw); err != nil {
			return RawTable{}, err
		}
	}

	slog.Debug("Finished reading Parquet file", "columns", len(raw.Columns), "rows", len(raw.Rows))
	return raw, nil
}

func readRowGroup(rg parquet.RowGroup, buf []parquet.Row, width, limit int, raw *RawTable) error {
	rows := rg.Rows()
	defer rows.Close()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			if limit >= 0 && len(raw.Rows) >= limit {
				return nil
			}
			cells := make([]string, width)
			for _, v := range row {
				col := v.Column()
				if v.IsNull() || col < 0 || col >= width {
					continue
				}
				if cells[col] != "" {
					cells[col] += "; " + v.String()
				} else {
					cells[col] = v.String()
				}
			}
			raw.Rows = append(raw.Rows, cells)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
}

// readJSONL loads one JSON object per line
func (l *Loader) readJSONL(limit int) (RawTable, error) {
	file, _, err := l.open()
	if err != nil {
		return RawTable{}, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	// Summaries can make lines long
	const maxCapacity = 10 * 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	var objects []map[string]any
	lineNum := 0
	for (limit < 0 || len(objects) < limit) && scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			return RawTable{}, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		objects = append(objects, obj)
	}
	if err := scanner.Err(); err != nil {
		return RawTable{}, fmt.Errorf("error reading dataset: %w", err)
	}

	raw := RawTable{Columns: jsonColumns(objects)}
	for _, obj := range objects {
		row := make([]string, len(raw.Columns))
		for i, col := range raw.Columns {
			row[i] = jsonString(obj[col])
		}
		raw.Rows = append(raw.Rows, row)
	}

	slog.Debug("Finished reading JSONL file", "columns", len(raw.Columns), "rows", len(raw.Rows), "lines", lineNum)
	return raw, nil
}

// jsonColumns puts the known schema first and any other keys after, sorted
func jsonColumns(objects []map[string]any) []string {
	seen := make(map[string]bool)
	for _, obj := range objects {
		for k := range obj {
			seen[k] = true
		}
	}

	var columns []string
	for _, c := range RequiredColumns {
		if seen[c] {
			columns = append(columns, c)
			delete(seen, c)
		}
	}
	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

func jsonString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := jsonString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
