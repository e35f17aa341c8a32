package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"foliogen/internal/model"
)

// Loader reads a content tree into a validated in-memory collection,
// decoupling the storage layout from the query and render stages.
type Loader struct {
	md goldmark.Markdown
}

func NewLoader() *Loader {
	return &Loader{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
	}
}

// Load walks dir and returns every entry in filesystem enumeration
// order, which WalkDir keeps lexical and therefore stable across
// builds. Any schema violation or duplicate slug aborts the load.
func (l *Loader) Load(dir string) ([]*model.Entry, error) {
	seen := make(map[string]string)
	var entries []*model.Entry

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", path, err)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		collection, slug, ok := identify(relPath)
		if !ok {
			// Markdown outside a collection, e.g. a stray README.
			return nil
		}

		entry, err := l.loadFile(path, collection, slug)
		if err != nil {
			return err
		}

		key := collection + "/" + slug
		if prev, dup := seen[key]; dup {
			return &DuplicateSlugError{
				Collection: collection,
				Slug:       slug,
				FirstPath:  prev,
				SecondPath: path,
			}
		}
		seen[key] = path
		entries = append(entries, entry)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return entries, nil
}

// identify derives the collection and slug from an entry's location
// relative to the content root. Both blog/hello/index.md and
// blog/hello.md resolve to ("blog", "hello").
func identify(relPath string) (collection, slug string, ok bool) {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	switch len(parts) {
	case 2:
		name := parts[1]
		return parts[0], strings.TrimSuffix(name, filepath.Ext(name)), true
	case 3:
		if parts[2] == "index.md" {
			return parts[0], parts[1], true
		}
	}
	return "", "", false
}

func (l *Loader) loadFile(path, collection, slug string) (*model.Entry, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(fileBytes), &meta)
	if err != nil {
		return nil, &SchemaError{Slug: slug, Field: "frontmatter", Reason: err.Error()}
	}

	entry := &model.Entry{
		Slug:       slug,
		Collection: collection,
		SourcePath: path,
		Permalink:  "/" + collection + "/" + slug + "/",
	}
	if err := validate(slug, &meta, entry); err != nil {
		return nil, err
	}

	var htmlBuffer bytes.Buffer
	if err := l.md.Convert(body, &htmlBuffer); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", path, err)
	}
	entry.Body = template.HTML(htmlBuffer.String())

	return entry, nil
}
