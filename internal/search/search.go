// Package search provides fuzzy lookup of table and column names across a
// set of named schemas.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/sadopc/tabula/internal/schema"
)

// Kind tells tables and columns apart in results.
type Kind int

const (
	KindTable Kind = iota
	KindColumn
)

// Entry is one searchable item: a table, or one of its columns.
type Entry struct {
	Table  string
	Column schema.Column // zero for table entries
	Kind   Kind
}

// Label is the string the query is matched against: "table" or
// "table.column".
func (e Entry) Label() string {
	if e.Kind == KindTable {
		return e.Table
	}
	return e.Table + "." + e.Column.Name
}

// Match is a ranked search hit. MatchedIndexes are byte offsets into
// Label() for highlighting.
type Match struct {
	Entry
	Score          int
	MatchedIndexes []int
}

// Index holds the searchable entries for a set of schemas.
type Index struct {
	entries []Entry
}

// NewIndex returns an empty index.
func NewIndex() *Index { return &Index{} }

// Add indexes a table and all of its columns.
func (ix *Index) Add(table string, s *schema.Schema) {
	ix.entries = append(ix.entries, Entry{Table: table, Kind: KindTable})
	for _, col := range s.Columns() {
		ix.entries = append(ix.entries, Entry{Table: table, Column: col, Kind: KindColumn})
	}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return len(ix.entries) }

// labels implements fuzzy.Source over the index entries.
type labels []Entry

func (l labels) String(i int) string { return strings.ToLower(l[i].Label()) }
func (l labels) Len() int            { return len(l) }

// Search returns entries fuzzy-matching the query, best score first.
// Matching is case-insensitive.
func (ix *Index) Search(query string) []Match {
	if query == "" || len(ix.entries) == 0 {
		return nil
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), labels(ix.entries))
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	result := make([]Match, 0, len(matches))
	for _, m := range matches {
		result = append(result, Match{
			Entry:          ix.entries[m.Index],
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		})
	}
	return result
}
