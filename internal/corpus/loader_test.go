package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/parquet-go/parquet-go"
)

func TestNewLoader(t *testing.T) {
	path := "./test.csv"
	loader := NewLoader(path)

	if loader.datasetPath != path {
		t.Errorf("Expected path %s, got %s", path, loader.datasetPath)
	}
}

const testCSVHeader = `,Title,Author,Second Author,Additional Authors,Literary movement,Genre,LC genre,LC subjects,wc_subject,wc_genre,Date of Publication,Other dates,LC Pub Date,BBIPID,wc_summary,Library of Congress ID,WorldCat-OCLC entry`

const testCSV = testCSVHeader + `
0,Native Son,"Wright, Richard",,,Chicago Black Renaissance,fiction,,,,,1940,,1940,BBIP-001,A novel of Chicago.,40027418,(OCoLC)00307361
1,The Souls of Black Folk,"Du Bois, W. E. B.",,,,essays,,African Americans.,,,1903,1903,,BBIP-002,,03013826,
2,Cane,"Toomer, Jean",,,Harlem Renaissance,,,,,,n.d.,,,,,,
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	loader := NewLoader(writeFile(t, "hbw.csv", testCSV))

	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.Title != "Native Son" {
		t.Errorf("Expected title 'Native Son', got %s", first.Title)
	}
	if first.Authors != "Wright, Richard" {
		t.Errorf("Expected authors 'Wright, Richard', got %s", first.Authors)
	}
	if first.DateString() != "1940" {
		t.Errorf("Expected date 1940, got %q", first.DateString())
	}
	if first.Keywords != "Chicago Black Renaissance; Fiction" {
		t.Errorf("Unexpected keywords %q", first.Keywords)
	}
	if first.LCCNURL != "https://lccn.loc.gov/40027418" {
		t.Errorf("Unexpected LCCN URL %q", first.LCCNURL)
	}
	if first.WorldCatURL != "https://search.worldcat.org/title/00307361" {
		t.Errorf("Unexpected WorldCat URL %q", first.WorldCatURL)
	}
	if len(first.Extra) != 0 {
		t.Errorf("Expected index column to be dropped, got extras %v", first.Extra)
	}

	if records[1].WorldCatURL != "" {
		t.Errorf("Expected absent WorldCat URL, got %q", records[1].WorldCatURL)
	}
	if records[2].Date != nil {
		t.Errorf("Expected absent date, got %d", *records[2].Date)
	}
	if records[2].Keywords != "Harlem Renaissance" {
		t.Errorf("Unexpected keywords %q", records[2].Keywords)
	}
}

func TestLoadSample(t *testing.T) {
	loader := NewLoader(writeFile(t, "hbw.csv", testCSV))

	records, err := loader.LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}

	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}
	if records[1].Title != "The Souls of Black Folk" {
		t.Errorf("Expected second title 'The Souls of Black Folk', got %s", records[1].Title)
	}
}

func TestLoadJSONLMatchesCSV(t *testing.T) {
	jsonl := `{"Title":"Native Son","Author":"Wright, Richard","Second Author":null,"Additional Authors":null,"Literary movement":"Chicago Black Renaissance","Genre":"fiction","LC genre":null,"LC subjects":null,"wc_subject":null,"wc_genre":null,"Date of Publication":"1940","Other dates":null,"LC Pub Date":"1940","BBIPID":"BBIP-001","wc_summary":"A novel of Chicago.","Library of Congress ID":"40027418","WorldCat-OCLC entry":"(OCoLC)00307361"}
`
	fromJSON, err := NewLoader(writeFile(t, "hbw.jsonl", jsonl)).Load()
	if err != nil {
		t.Fatalf("Load JSONL failed: %v", err)
	}

	fromCSV, err := NewLoader(writeFile(t, "hbw.csv", testCSV)).LoadSample(1)
	if err != nil {
		t.Fatalf("Load CSV failed: %v", err)
	}

	if diff := cmp.Diff(fromCSV, fromJSON); diff != "" {
		t.Errorf("JSONL and CSV records differ (-csv +jsonl):\n%s", diff)
	}
}

type parquetRow struct {
	Title             string `parquet:"Title"`
	Author            string `parquet:"Author"`
	SecondAuthor      string `parquet:"Second Author"`
	AdditionalAuthors string `parquet:"Additional Authors"`
	LiteraryMovement  string `parquet:"Literary movement"`
	Genre             string `parquet:"Genre"`
	LCGenre           string `parquet:"LC genre"`
	LCSubjects        string `parquet:"LC subjects"`
	WCSubject         string `parquet:"wc_subject"`
	WCGenre           string `parquet:"wc_genre"`
	DateOfPublication string `parquet:"Date of Publication"`
	OtherDates        string `parquet:"Other dates"`
	LCPubDate         string `parquet:"LC Pub Date"`
	BBIPID            string `parquet:"BBIPID"`
	WCSummary         string `parquet:"wc_summary"`
	LCCN              string `parquet:"Library of Congress ID"`
	WorldCat          string `parquet:"WorldCat-OCLC entry"`
}

func TestLoadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbw.parquet")
	rows := []parquetRow{
		{Title: "Cane", Author: "Toomer, Jean", LiteraryMovement: "Harlem Renaissance", DateOfPublication: "1923", LCCN: "23010771"},
		{Title: "Quicksand", Author: "Larsen, Nella", Genre: "fiction.", OtherDates: "1928", WorldCat: "ocm123"},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("Failed to write parquet file: %v", err)
	}

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].DateString() != "1923" || records[0].LCCNURL != "https://lccn.loc.gov/23010771" {
		t.Errorf("Unexpected first record %+v", records[0])
	}
	if records[1].Keywords != "Fiction" || records[1].WorldCatURL != "https://search.worldcat.org/title/123" {
		t.Errorf("Unexpected second record %+v", records[1])
	}
}

func TestLoadMissingColumn(t *testing.T) {
	content := strings.Replace(testCSV, "LC Pub Date,", "Publication,", 1)
	_, err := NewLoader(writeFile(t, "hbw.csv", content)).Load()

	var dle *DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("Expected DataLoadError, got %v", err)
	}
	if len(dle.Missing) != 1 || dle.Missing[0] != ColLCPubDate {
		t.Errorf("Expected missing %q, got %v", ColLCPubDate, dle.Missing)
	}
	if dle.Path == "" {
		t.Error("Expected path on DataLoadError")
	}
}

func TestLoadMalformedCSV(t *testing.T) {
	content := testCSVHeader + "\n0,\"unterminated,Wright\n"
	_, err := NewLoader(writeFile(t, "hbw.csv", content)).Load()

	var dle *DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("Expected DataLoadError, got %v", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	loader := NewLoader("test.txt")

	_, err := loader.Load()
	if err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}

	_, err = loader.LoadSample(10)
	if err == nil {
		t.Error("Expected error for unsupported format in LoadSample, got nil")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	loader := NewLoader("/nonexistent/path/file.csv")

	_, err := loader.Load()
	var dle *DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("Expected DataLoadError for non-existent file, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}
