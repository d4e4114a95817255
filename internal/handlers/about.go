package handlers

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const aboutMarkdown = `This table contains metadata from HBW, Library of Congress, and OCLC/WorldCat. It contains the full HBW corpus as of December 31, 2024.

* **Title** - full title of the book
* **Author(s)** - all named authors of the book
* **Date** - earliest known publication date
* **BBIPID** - HBW's ID number, normally indicates the book was scanned
    * *Multiple BBIP IDs*: title was scanned more than once.
    * *No BBIP ID*: title has probably not been scanned
* **All keywords** - combined list of genres, keywords, subjects, etc. from all sources
* **Summary** - book summary taken from WorldCat
`

func renderAbout() (template.HTML, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	if err := md.Convert([]byte(aboutMarkdown), &buf); err != nil {
		return "", err
	}
	// Source is a constant above, not user input
	return template.HTML(buf.String()), nil
}
