package corpus

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	lccnBaseURL     = "https://lccn.loc.gov/"
	worldCatBaseURL = "https://search.worldcat.org/title/"
)

// RawTable is a source table as read from disk: a header and rows of cells
// aligned with it. An empty cell is a missing value.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// isIndexColumn matches the unnamed row-index column that dataframe
// exports write as their first column
func isIndexColumn(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || name == "Unnamed: 0"
}

// Derive validates the raw table and builds the normalized RecordSet
func Derive(raw RawTable) (RecordSet, error) {
	index := make(map[string]int, len(raw.Columns))
	var extras []int
	for i, name := range raw.Columns {
		if isIndexColumn(name) {
			continue
		}
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = i
		if !IsKnownColumn(name) && name != ColWCSummary {
			extras = append(extras, i)
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &DataLoadError{Missing: missing}
	}

	caser := cases.Title(language.Und)
	records := make(RecordSet, 0, len(raw.Rows))
	odd := 0

	for _, row := range raw.Rows {
		cell := func(col string) string {
			i := index[col]
			if i >= len(row) {
				return ""
			}
			return cellValue(row[i])
		}

		rec := Record{
			Title:             cell(ColTitle),
			Author:            cell(ColAuthor),
			SecondAuthor:      cell(ColSecondAuthor),
			AdditionalAuthors: cell(ColAdditionalAuthors),
			LiteraryMovement:  cell(ColLiteraryMovement),
			Genre:             cell(ColGenre),
			LCGenre:           cell(ColLCGenre),
			LCSubjects:        cell(ColLCSubjects),
			WCSubject:         cell(ColWCSubject),
			WCGenre:           cell(ColWCGenre),
			DateOfPublication: cell(ColDateOfPublication),
			OtherDates:        cell(ColOtherDates),
			LCPubDate:         cell(ColLCPubDate),
			BBIPID:            cell(ColBBIPID),
			Summary:           cell(ColWCSummary),
			LCCNURL:           lccnURL(cell(ColLCCN)),
			WorldCatURL:       worldCatURL(cell(ColWorldCat)),
		}

		rec.Authors = joinPresent(rec.Author, rec.SecondAuthor, rec.AdditionalAuthors)
		rec.Keywords = deriveKeywords(caser,
			rec.LiteraryMovement, rec.Genre, rec.LCGenre, rec.LCSubjects, rec.WCSubject, rec.WCGenre)
		rec.Date = earliestDate(rec.DateOfPublication, rec.OtherDates, rec.LCPubDate)

		if rec.Date != nil && len(strconv.Itoa(*rec.Date)) != 4 {
			odd++
			slog.Debug("Derived date is not a four digit year", "title", rec.Title, "date", *rec.Date)
		}

		for _, i := range extras {
			v := ""
			if i < len(row) {
				v = cellValue(row[i])
			}
			rec.Extra = append(rec.Extra, Field{Name: raw.Columns[i], Value: v})
		}

		records = append(records, rec)
	}

	if odd > 0 {
		slog.Warn("Some derived dates are not four digit years", "records", odd)
	}

	return records, nil
}

func cellValue(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func joinPresent(values ...string) string {
	present := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			present = append(present, v)
		}
	}
	return strings.Join(present, "; ")
}

// deriveKeywords merges the subject and genre columns into one
// deduplicated, title-cased, naturally sorted list
func deriveKeywords(caser cases.Caser, values ...string) string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, t := range strings.Split(joinPresent(values...), ";") {
		t = strings.TrimSpace(titleCase(caser, t))
		t = strings.TrimSpace(strings.TrimRight(t, "."))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}
	NaturalSort(tokens)
	return strings.Join(tokens, "; ")
}

// titleCase title-cases s and also capitalizes a letter that follows an
// apostrophe, so "o'neill" becomes "O'Neill"
func titleCase(caser cases.Caser, s string) string {
	runes := []rune(caser.String(s))
	for i := 1; i < len(runes); i++ {
		if runes[i-1] == '\'' || runes[i-1] == '’' {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}

// earliestDate returns the smallest all-digit value, or nil when there is
// none. Candidates compare as strings, so "1920" wins over "999".
func earliestDate(values ...string) *int {
	earliest := ""
	for _, v := range values {
		if !allDigits(v) {
			continue
		}
		if earliest == "" || v < earliest {
			earliest = v
		}
	}
	if earliest == "" {
		return nil
	}
	n, err := strconv.Atoi(earliest)
	if err != nil {
		return nil
	}
	return &n
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func lccnURL(id string) string {
	if id == "" {
		return ""
	}
	return lccnBaseURL + id
}

func worldCatURL(entry string) string {
	number := strings.TrimLeftFunc(entry, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if number == "" {
		return ""
	}
	return worldCatBaseURL + number
}
