// Package builder materializes the site: it loads and validates the
// content store, then writes one page per public entry, paginated
// collection listings, the home page, the feed, and the sitemap.
// Identical inputs always produce an identical output page set.
package builder

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"foliogen/internal/config"
	"foliogen/internal/content"
	"foliogen/internal/model"
	"foliogen/internal/query"
)

// Conventional project directories, resolved relative to the root the
// Builder is constructed with.
const (
	ContentDir = "content"
	LayoutsDir = "layouts"
	StaticDir  = "static"
)

const (
	baseLayout      = "base.html"
	homeLayout      = "home.html"
	defaultPageSize = 10

	// feedCollection is the collection published as the RSS feed.
	feedCollection = "blog"
)

// Builder runs one build. Its inputs are fixed at construction and
// never mutated; Run can be called again after the source tree changes.
type Builder struct {
	cfg    config.Config
	chrome *config.Chrome
	root   string
}

func New(cfg config.Config, chrome *config.Chrome, root string) *Builder {
	if cfg.PageSize < 1 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Drafts == "" {
		cfg.Drafts = config.DraftsExclude
	}
	return &Builder{cfg: cfg, chrome: chrome, root: root}
}

type entryPage struct {
	Site  *model.Site
	Entry *model.Entry
}

type listingPage struct {
	Site            *model.Site
	Collection      string
	CollectionTitle string
	Pager           *model.Pager
}

type homePage struct {
	Site   *model.Site
	Recent []*model.Entry
}

// Run executes the full pipeline: content intake, validation, output
// directory preparation, static assets, and page generation. Any
// failure aborts the build; there is no partial-success mode.
func (b *Builder) Run() error {
	contentDir := filepath.Join(b.root, ContentDir)
	layoutsDir := filepath.Join(b.root, LayoutsDir)
	staticDir := filepath.Join(b.root, StaticDir)
	outputDir := b.outputDir()

	if _, err := os.Stat(contentDir); os.IsNotExist(err) {
		return fmt.Errorf("content directory '%s' not found. Please create it and add your Markdown entries", contentDir)
	}
	if _, err := os.Stat(layoutsDir); os.IsNotExist(err) {
		return fmt.Errorf("layouts directory '%s' not found. Please create it and add your .html layout files", layoutsDir)
	}

	fmt.Printf("Loading content from '%s'\n", contentDir)
	entries, err := content.NewLoader().Load(contentDir)
	if err != nil {
		return fmt.Errorf("content load failed: %w", err)
	}
	site := b.assemble(entries)
	fmt.Printf("Loaded %d entries across %d collections.\n", len(entries), len(site.Collections))

	templates, err := parseLayouts(layoutsDir)
	if err != nil {
		return err
	}

	fmt.Printf("Cleaning output directory: %s\n", outputDir)
	if err := os.RemoveAll(outputDir); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	if _, err := os.Stat(staticDir); !os.IsNotExist(err) {
		if err := copyDir(staticDir, outputDir); err != nil {
			return fmt.Errorf("failed to copy static assets: %w", err)
		}
		fmt.Println("Static assets copied.")
	}

	if err := b.writeEntryPages(templates, site); err != nil {
		return err
	}
	if err := b.writeListings(templates, site); err != nil {
		return err
	}
	if err := b.writeHome(templates, site); err != nil {
		return err
	}
	if err := b.writeFeed(site); err != nil {
		return err
	}
	if err := b.writeSitemap(site); err != nil {
		return err
	}

	fmt.Println("Build completed successfully.")
	return nil
}

func (b *Builder) outputDir() string {
	if filepath.IsAbs(b.cfg.OutputDir) {
		return b.cfg.OutputDir
	}
	return filepath.Join(b.root, b.cfg.OutputDir)
}

// assemble turns the loaded entries into the immutable Site shared by
// every render call. Collections hold public entries only, newest
// first, so listings, the feed, and the sitemap never see drafts.
func (b *Builder) assemble(entries []*model.Entry) *model.Site {
	site := &model.Site{
		Chrome:      b.chrome,
		BaseURL:     b.cfg.BaseURL,
		Collections: make(map[string][]*model.Entry),
		Entries:     entries,
	}
	for name, group := range query.ByCollection(entries) {
		site.Collections[name] = query.List(group, query.Options{})
	}
	return site
}

// parseLayouts loads the template set the way pages expect it: the
// root base.html plus everything under partials/ first, then the page
// layouts, so page layouts may reference any partial by file name.
func parseLayouts(layoutsDir string) (*template.Template, error) {
	var basePath string
	var partials []string
	var pages []string

	err := filepath.WalkDir(layoutsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		switch {
		case d.Name() == baseLayout && filepath.Dir(path) == layoutsDir:
			basePath = path
		case strings.HasPrefix(filepath.Dir(path), filepath.Join(layoutsDir, "partials")):
			partials = append(partials, path)
		default:
			pages = append(pages, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files in '%s': %w", layoutsDir, err)
	}
	if basePath == "" {
		return nil, fmt.Errorf("%s not found directly in layouts directory '%s'", baseLayout, layoutsDir)
	}

	templates, err := template.ParseFiles(append([]string{basePath}, partials...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s and partials: %w", baseLayout, err)
	}
	if len(pages) > 0 {
		if templates, err = templates.ParseFiles(pages...); err != nil {
			return nil, fmt.Errorf("failed to parse page layout files: %w", err)
		}
	}
	return templates, nil
}

func (b *Builder) writeEntryPages(templates *template.Template, site *model.Site) error {
	for _, e := range site.Entries {
		if e.Draft && b.cfg.Drafts != config.DraftsUnlisted {
			continue
		}

		layout := resolveLayout(templates, "single-"+e.Collection+".html", "single.html")
		outputPath := filepath.Join(b.outputDir(), filepath.FromSlash(e.Permalink), "index.html")
		if err := writePage(templates, layout, outputPath, entryPage{Site: site, Entry: e}); err != nil {
			return fmt.Errorf("entry '%s/%s': %w", e.Collection, e.Slug, err)
		}
	}
	return nil
}

func (b *Builder) writeListings(templates *template.Template, site *model.Site) error {
	titleCaser := cases.Title(language.English)

	for _, name := range sortedCollections(site) {
		public := site.Collections[name]
		if len(public) == 0 {
			continue
		}

		layout := ""
		for _, candidate := range []string{"list-" + name + ".html", "list.html"} {
			if templates.Lookup(candidate) != nil {
				layout = candidate
				break
			}
		}
		if layout == "" {
			fmt.Printf("Warning: no list layout for collection '%s', skipping its listing pages.\n", name)
			continue
		}

		basePath := "/" + name + "/"
		for _, pager := range paginate(public, b.cfg.PageSize, basePath) {
			data := listingPage{
				Site:            site,
				Collection:      name,
				CollectionTitle: titleCaser.String(name),
				Pager:           pager,
			}
			outputPath := filepath.Join(b.outputDir(), filepath.FromSlash(pageURL(basePath, pager.Number)), "index.html")
			if err := writePage(templates, layout, outputPath, data); err != nil {
				return fmt.Errorf("listing '%s' page %d: %w", name, pager.Number, err)
			}
		}
	}
	return nil
}

func (b *Builder) writeHome(templates *template.Template, site *model.Site) error {
	if templates.Lookup(homeLayout) == nil {
		return fmt.Errorf("homepage layout '%s' not found. Please create it in the layouts directory", homeLayout)
	}

	data := homePage{
		Site:   site,
		Recent: query.List(site.Entries, query.Options{Limit: b.cfg.PageSize}),
	}
	outputPath := filepath.Join(b.outputDir(), "index.html")
	if err := writePage(templates, homeLayout, outputPath, data); err != nil {
		return fmt.Errorf("homepage: %w", err)
	}
	return nil
}

// resolveLayout prefers the collection-specific layout, then the
// generic one, then base.html.
func resolveLayout(templates *template.Template, candidates ...string) string {
	for _, name := range candidates {
		if templates.Lookup(name) != nil {
			return name
		}
	}
	return baseLayout
}

func writePage(templates *template.Template, layout, outputPath string, data any) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", outputPath, err)
	}
	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", outputPath, err)
	}
	defer outFile.Close()

	if err := templates.ExecuteTemplate(outFile, layout, data); err != nil {
		return fmt.Errorf("failed to execute template '%s' for '%s': %w", layout, outputPath, err)
	}
	return nil
}

// paginate splits an ordered collection into pages of at most size
// entries. Page 1 lives at basePath, page N at basePath + "page/N/".
func paginate(entries []*model.Entry, size int, basePath string) []*model.Pager {
	total := (len(entries) + size - 1) / size
	if total == 0 {
		total = 1
	}

	pagers := make([]*model.Pager, 0, total)
	for n := 1; n <= total; n++ {
		start := (n - 1) * size
		end := min(start+size, len(entries))

		pager := &model.Pager{Number: n, Total: total, Entries: entries[start:end]}
		if n > 1 {
			pager.PrevURL = pageURL(basePath, n-1)
		}
		if n < total {
			pager.NextURL = pageURL(basePath, n+1)
		}
		pagers = append(pagers, pager)
	}
	return pagers
}

func pageURL(basePath string, n int) string {
	if n == 1 {
		return basePath
	}
	return fmt.Sprintf("%spage/%d/", basePath, n)
}

// sortedCollections returns collection names in sorted order so output
// generation is deterministic across runs.
func sortedCollections(site *model.Site) []string {
	names := make([]string, 0, len(site.Collections))
	for name := range site.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
