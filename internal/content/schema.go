package content

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"foliogen/internal/model"
)

// Meta is the raw frontmatter shape of an entry before validation.
type Meta struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Date    string   `yaml:"date"`
	Draft   *bool    `yaml:"draft"`
	Tags    []string `yaml:"tags"`
	DemoURL string   `yaml:"demoUrl"`
	RepoURL string   `yaml:"repoUrl"`
}

// SchemaError reports an entry whose metadata fails validation. It
// names the offending field so a failing build identifies the fix.
type SchemaError struct {
	Slug   string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("entry %q: field %q %s", e.Slug, e.Field, e.Reason)
}

// DuplicateSlugError reports two entries resolving to the same route.
type DuplicateSlugError struct {
	Collection string
	Slug       string
	FirstPath  string
	SecondPath string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("duplicate slug %q in collection %q: %s and %s",
		e.Slug, e.Collection, e.FirstPath, e.SecondPath)
}

// dateFormats are tried in order when parsing an entry's date field.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// validate checks raw metadata against the entry schema and fills the
// typed fields of entry. Identity and body are the loader's job.
func validate(slug string, meta *Meta, entry *model.Entry) error {
	if strings.TrimSpace(meta.Title) == "" {
		return &SchemaError{Slug: slug, Field: "title", Reason: "is required"}
	}
	entry.Title = meta.Title

	if strings.TrimSpace(meta.Summary) == "" {
		return &SchemaError{Slug: slug, Field: "summary", Reason: "is required"}
	}
	entry.Summary = meta.Summary

	if meta.Date == "" {
		return &SchemaError{Slug: slug, Field: "date", Reason: "is required"}
	}
	parsed := false
	for _, format := range dateFormats {
		if d, err := time.Parse(format, meta.Date); err == nil {
			entry.Date = d
			parsed = true
			break
		}
	}
	if !parsed {
		return &SchemaError{
			Slug:   slug,
			Field:  "date",
			Reason: fmt.Sprintf("value %q is not a date; use YYYY-MM-DD or RFC3339", meta.Date),
		}
	}

	if meta.Draft != nil {
		entry.Draft = *meta.Draft
	}
	entry.Tags = meta.Tags

	for _, link := range []struct {
		field string
		value string
		dst   *string
	}{
		{"demoUrl", meta.DemoURL, &entry.DemoURL},
		{"repoUrl", meta.RepoURL, &entry.RepoURL},
	} {
		if link.value == "" {
			continue
		}
		u, err := url.Parse(link.value)
		if err != nil || !u.IsAbs() {
			return &SchemaError{
				Slug:   slug,
				Field:  link.field,
				Reason: fmt.Sprintf("value %q is not an absolute URL", link.value),
			}
		}
		*link.dst = link.value
	}

	return nil
}
