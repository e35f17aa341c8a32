// Package query filters, orders, and searches loaded entries. All
// operations are pure: inputs are never mutated, so the same loaded
// collection can back any number of listings.
package query

import (
	"iter"
	"sort"
	"strings"

	"foliogen/internal/model"
)

// Options controls List. The zero value lists public entries newest
// first with no limit.
type Options struct {
	IncludeDrafts bool
	Ascending     bool
	Limit         int
}

// List filters, orders, and slices a collection. Drafts are dropped
// unless IncludeDrafts is set. The sort is stable: entries sharing a
// date keep their input order, so repeated builds over the same tree
// produce identical listings.
func List(entries []*model.Entry, opts Options) []*model.Entry {
	out := make([]*model.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Draft && !opts.IncludeDrafts {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if opts.Ascending {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// ByCollection groups entries by collection name, preserving input
// order within each group.
func ByCollection(entries []*model.Entry) map[string][]*model.Entry {
	groups := make(map[string][]*model.Entry)
	for _, e := range entries {
		groups[e.Collection] = append(groups[e.Collection], e)
	}
	return groups
}

// Search yields the entries whose title, summary, or tags contain term
// as a case-insensitive substring. The sequence is lazy and can be
// ranged over any number of times.
func Search(entries []*model.Entry, term string) iter.Seq[*model.Entry] {
	needle := strings.ToLower(term)
	return func(yield func(*model.Entry) bool) {
		for _, e := range entries {
			if !matches(e, needle) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func matches(e *model.Entry, needle string) bool {
	if strings.Contains(strings.ToLower(e.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Summary), needle) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
