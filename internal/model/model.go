package model

import (
	"html/template"
	"time"

	"foliogen/internal/config"
)

// Entry represents a single piece of content: a blog post, a project
// write-up, or a work record. Entries are immutable once loaded; a new
// build reconstructs the full collection from source files.
type Entry struct {
	Slug       string
	Collection string
	Title      string
	Summary    string
	Date       time.Time
	Draft      bool
	Tags       []string
	DemoURL    string
	RepoURL    string
	Body       template.HTML
	SourcePath string
	Permalink  string
}

// Site holds all site-wide data for one build: the chrome plus the
// loaded content. Collections maps collection name to its public
// entries, date-descending; Entries is every loaded entry in input
// order, drafts included.
type Site struct {
	Chrome      *config.Chrome
	BaseURL     string
	Collections map[string][]*Entry
	Entries     []*Entry
}
