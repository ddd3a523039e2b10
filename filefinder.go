package main

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// finderEntry is one candidate document in the file finder.
type finderEntry struct {
	Rel string
	Abs string
}

// fileFinder is the fuzzy open-file overlay: a query typed by the user,
// filtered and ranked against the document list.
type fileFinder struct {
	entries  []finderEntry
	query    string
	results  []finderEntry
	selected int
	limit    int
}

func newFileFinder(paths []string, root string, limit int) *fileFinder {
	entries := make([]finderEntry, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		entries = append(entries, finderEntry{Rel: rel, Abs: p})
	}
	f := &fileFinder{entries: entries, limit: limit}
	f.refresh()
	return f
}

// Type appends a rune to the query.
func (f *fileFinder) Type(r rune) {
	f.query += string(r)
	f.refresh()
}

// Backspace removes the last rune of the query.
func (f *fileFinder) Backspace() {
	if f.query == "" {
		return
	}
	runes := []rune(f.query)
	f.query = string(runes[:len(runes)-1])
	f.refresh()
}

// MoveSelection steps the highlighted result up or down.
func (f *fileFinder) MoveSelection(delta int) {
	if len(f.results) == 0 {
		return
	}
	f.selected = (f.selected + delta + len(f.results)) % len(f.results)
}

// Selected returns the highlighted candidate's absolute path, or "".
func (f *fileFinder) Selected() string {
	if f.selected < 0 || f.selected >= len(f.results) {
		return ""
	}
	return f.results[f.selected].Abs
}

// refresh recomputes results: keep candidates whose relative path contains
// the query as a subsequence, then rank by levenshtein distance to the
// query so near-exact names sort first.
func (f *fileFinder) refresh() {
	f.selected = 0
	q := strings.ToLower(f.query)
	if q == "" {
		f.results = f.entries
		if len(f.results) > f.limit {
			f.results = f.results[:f.limit]
		}
		return
	}

	type scored struct {
		entry finderEntry
		dist  int
	}
	var matches []scored
	for _, e := range f.entries {
		rel := strings.ToLower(e.Rel)
		if !subsequence(rel, q) {
			continue
		}
		matches = append(matches, scored{e, levenshtein.ComputeDistance(filepath.Base(rel), q)})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })
	if len(matches) > f.limit {
		matches = matches[:f.limit]
	}
	f.results = make([]finderEntry, len(matches))
	for i, m := range matches {
		f.results[i] = m.entry
	}
}

// subsequence reports whether every rune of q appears in s in order.
func subsequence(s, q string) bool {
	i := 0
	for _, r := range s {
		if i < len(q) && rune(q[i]) == r {
			i++
		}
	}
	return i == len(q)
}
