package corpus

import "strconv"

// Source and derived column names of the HBW metadata export
const (
	ColTitle             = "Title"
	ColAuthor            = "Author"
	ColSecondAuthor      = "Second Author"
	ColAdditionalAuthors = "Additional Authors"
	ColAuthors           = "Author(s)"

	ColLiteraryMovement = "Literary movement"
	ColGenre            = "Genre"
	ColLCGenre          = "LC genre"
	ColLCSubjects       = "LC subjects"
	ColWCSubject        = "wc_subject"
	ColWCGenre          = "wc_genre"
	ColKeywords         = "All keywords"

	ColDateOfPublication = "Date of Publication"
	ColOtherDates        = "Other dates"
	ColLCPubDate         = "LC Pub Date"
	ColDate              = "Date"

	ColBBIPID    = "BBIPID"
	ColWCSummary = "wc_summary"
	ColSummary   = "Summary"

	ColLCCN     = "Library of Congress ID"
	ColWorldCat = "WorldCat-OCLC entry"
)

// RequiredColumns must all be present in the source table
var RequiredColumns = []string{
	ColTitle,
	ColAuthor,
	ColSecondAuthor,
	ColAdditionalAuthors,
	ColLiteraryMovement,
	ColGenre,
	ColLCGenre,
	ColLCSubjects,
	ColWCSubject,
	ColWCGenre,
	ColDateOfPublication,
	ColOtherDates,
	ColLCPubDate,
	ColBBIPID,
	ColWCSummary,
	ColLCCN,
	ColWorldCat,
}

// DefaultColumns are shown in the summary table and exports
var DefaultColumns = []string{ColTitle, ColAuthors, ColDate, ColBBIPID, ColKeywords, ColSummary}

// AuthorityColumns hold external identifiers resolved to lookup URLs
var AuthorityColumns = []string{ColLCCN, ColWorldCat}

// Record is one book in the corpus. An empty string field means the value
// is absent in the source.
type Record struct {
	Title             string `json:"title"`
	Author            string `json:"author,omitempty"`
	SecondAuthor      string `json:"second_author,omitempty"`
	AdditionalAuthors string `json:"additional_authors,omitempty"`
	Authors           string `json:"authors,omitempty"`

	LiteraryMovement string `json:"literary_movement,omitempty"`
	Genre            string `json:"genre,omitempty"`
	LCGenre          string `json:"lc_genre,omitempty"`
	LCSubjects       string `json:"lc_subjects,omitempty"`
	WCSubject        string `json:"wc_subject,omitempty"`
	WCGenre          string `json:"wc_genre,omitempty"`
	Keywords         string `json:"keywords,omitempty"`

	DateOfPublication string `json:"date_of_publication,omitempty"`
	OtherDates        string `json:"other_dates,omitempty"`
	LCPubDate         string `json:"lc_pub_date,omitempty"`
	Date              *int   `json:"date,omitempty"`

	BBIPID  string `json:"bbipid,omitempty"`
	Summary string `json:"summary,omitempty"`

	// Authority references, already resolved to lookup URLs
	LCCNURL     string `json:"lccn_url,omitempty"`
	WorldCatURL string `json:"worldcat_url,omitempty"`

	// Extra holds source columns outside the known schema, in file order
	Extra []Field `json:"extra,omitempty"`
}

// Field is a named column value
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RecordSet is the loaded corpus. It is never modified after loading and
// may be shared between sessions.
type RecordSet []Record

// DateString renders Date as a plain integer, or "" when absent
func (r *Record) DateString() string {
	if r.Date == nil {
		return ""
	}
	return strconv.Itoa(*r.Date)
}

// Value returns the textual value of a named column and whether it is present
func (r *Record) Value(column string) (string, bool) {
	var v string
	switch column {
	case ColTitle:
		v = r.Title
	case ColAuthor:
		v = r.Author
	case ColSecondAuthor:
		v = r.SecondAuthor
	case ColAdditionalAuthors:
		v = r.AdditionalAuthors
	case ColAuthors:
		v = r.Authors
	case ColLiteraryMovement:
		v = r.LiteraryMovement
	case ColGenre:
		v = r.Genre
	case ColLCGenre:
		v = r.LCGenre
	case ColLCSubjects:
		v = r.LCSubjects
	case ColWCSubject:
		v = r.WCSubject
	case ColWCGenre:
		v = r.WCGenre
	case ColKeywords:
		v = r.Keywords
	case ColDateOfPublication:
		v = r.DateOfPublication
	case ColOtherDates:
		v = r.OtherDates
	case ColLCPubDate:
		v = r.LCPubDate
	case ColDate:
		v = r.DateString()
	case ColBBIPID:
		v = r.BBIPID
	case ColSummary:
		v = r.Summary
	case ColLCCN:
		v = r.LCCNURL
	case ColWorldCat:
		v = r.WorldCatURL
	default:
		for _, f := range r.Extra {
			if f.Name == column {
				v = f.Value
				break
			}
		}
	}
	return v, v != ""
}

// Fields returns every column of the record, known columns first and
// extra source columns after, absent values included as empty strings.
func (r *Record) Fields() []Field {
	fields := make([]Field, 0, len(KnownColumns)+len(r.Extra))
	for _, name := range KnownColumns {
		v, _ := r.Value(name)
		fields = append(fields, Field{Name: name, Value: v})
	}
	return append(fields, r.Extra...)
}

// KnownColumns lists every typed column of a Record in display order
var KnownColumns = []string{
	ColTitle,
	ColAuthors,
	ColDate,
	ColBBIPID,
	ColKeywords,
	ColSummary,
	ColAuthor,
	ColSecondAuthor,
	ColAdditionalAuthors,
	ColLiteraryMovement,
	ColGenre,
	ColLCGenre,
	ColLCSubjects,
	ColWCSubject,
	ColWCGenre,
	ColDateOfPublication,
	ColOtherDates,
	ColLCPubDate,
	ColLCCN,
	ColWorldCat,
}

// IsKnownColumn reports whether name is a typed Record column
func IsKnownColumn(name string) bool {
	for _, c := range KnownColumns {
		if c == name {
			return true
		}
	}
	return false
}

// DateBounds returns the smallest and largest Date in the set. ok is false
// when no record carries a Date.
func (rs RecordSet) DateBounds() (minDate, maxDate int, ok bool) {
	for i := range rs {
		d := rs[i].Date
		if d == nil {
			continue
		}
		if !ok {
			minDate, maxDate, ok = *d, *d, true
			continue
		}
		minDate = min(minDate, *d)
		maxDate = max(maxDate, *d)
	}
	return minDate, maxDate, ok
}
