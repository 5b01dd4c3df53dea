package tree

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Kind distinguishes files from directories in a contents listing
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "dir"
	}
	return "file"
}

// KindFromAPI maps the contents API "type" field; anything that is not "dir" renders as a file
func KindFromAPI(t string) Kind {
	if t == "dir" {
		return Directory
	}
	return File
}

// Entry is one item of a directory listing
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// SortEntries orders a listing in place: directories first, then names in
// root-locale collation order with byte order as the final tie-break
func SortEntries(entries []Entry) {
	c := collate.New(language.Und)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Kind != b.Kind {
			return a.Kind == Directory
		}
		if r := c.CompareString(a.Name, b.Name); r != 0 {
			return r < 0
		}
		return strings.Compare(a.Name, b.Name) < 0
	})
}
