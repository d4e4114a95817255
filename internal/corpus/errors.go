package corpus

import (
	"fmt"
	"strings"
)

// DataLoadError reports a dataset that could not be turned into a RecordSet:
// missing or unreadable file, malformed content, or missing required columns.
type DataLoadError struct {
	Path    string
	Missing []string
	Err     error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	b.WriteString("failed to load dataset")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
