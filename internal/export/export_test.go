package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lehigh-university-libraries/hbw/internal/corpus"
	"github.com/lehigh-university-libraries/hbw/internal/search"
)

func intPtr(n int) *int {
	return &n
}

func exportColumns() []string {
	return append(append([]string{}, corpus.DefaultColumns...), corpus.AuthorityColumns...)
}

func testRecords() corpus.RecordSet {
	return corpus.RecordSet{
		{Title: "Clotel", Authors: "Brown, William Wells", Date: intPtr(1853), Keywords: "Fiction; Slavery"},
		{Title: "Native Son", Authors: "Wright, Richard", Date: intPtr(1940), BBIPID: "BBIP-001", Summary: "A novel, of \"Chicago\".", LCCNURL: "https://lccn.loc.gov/40027418"},
		{Title: "Broadside", WorldCatURL: "https://search.worldcat.org/title/123"},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rs := testRecords()
	view := search.View{2, 1}
	f := NewFormatter(exportColumns())

	data, err := f.CSV(rs, view)
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}

	want := [][]string{
		exportColumns(),
		{"Broadside", "", "", "", "", "", "", "https://search.worldcat.org/title/123"},
		{"Native Son", "Wright, Richard", "1940", "BBIP-001", "", "A novel, of \"Chicago\".", "https://lccn.loc.gov/40027418", ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVEmptyView(t *testing.T) {
	data, err := NewFormatter(exportColumns()).CSV(testRecords(), search.View{})
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected header only, got %d rows", len(rows))
	}
}

func TestCSVIsDeterministic(t *testing.T) {
	rs := testRecords()
	f := NewFormatter(exportColumns())
	c := search.Criteria{Begin: 1850, End: 1950, Search: "son"}

	first, err := f.Export(rs, search.View{0, 1, 2}, c)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	second, err := f.Export(rs, search.View{0, 1, 2}, c)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if !bytes.Equal(first.Data, second.Data) || first.Filename != second.Filename {
		t.Error("Expected identical exports for identical input")
	}
	if first.MIMEType != "text/csv" {
		t.Errorf("Expected text/csv, got %s", first.MIMEType)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		criteria search.Criteria
		expected string
	}{
		{
			name:     "no search",
			criteria: search.Criteria{Begin: 1853, End: 1964},
			expected: "HBW_1853-1964.csv",
		},
		{
			name:     "search spaces become hyphens",
			criteria: search.Criteria{Begin: 1900, End: 1925, Search: "harlem poetry"},
			expected: "HBW_1900-1925-harlem-poetry.csv",
		},
		{
			name:     "single term",
			criteria: search.Criteria{Begin: 1900, End: 1900, Search: "Wright"},
			expected: "HBW_1900-1900-Wright.csv",
		},
		{
			name:     "path separators are replaced",
			criteria: search.Criteria{Begin: 1853, End: 1945, Search: `x/../..\escaped`},
			expected: "HBW_1853-1945-x-..-..-escaped.csv",
		},
	}

	f := NewFormatter(exportColumns())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Filename(tt.criteria)
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
			if filepath.Base(got) != got {
				t.Errorf("Expected a bare file name, got %s", got)
			}
		})
	}
}
