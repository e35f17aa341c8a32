package builder

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"foliogen/internal/model"
)

// XML structures mirroring the sitemap protocol's urlset element.

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Location string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
}

// writeSitemap emits sitemap.xml covering every public route: the home
// page, the first listing page of each collection, and each entry page.
func (b *Builder) writeSitemap(site *model.Site) error {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, urlEntry{Location: b.cfg.BaseURL + "/"})

	for _, name := range sortedCollections(site) {
		public := site.Collections[name]
		if len(public) == 0 {
			continue
		}
		set.URLs = append(set.URLs, urlEntry{Location: b.cfg.BaseURL + "/" + name + "/"})
		for _, e := range public {
			set.URLs = append(set.URLs, urlEntry{
				Location: b.cfg.BaseURL + e.Permalink,
				LastMod:  e.Date.Format("2006-01-02"),
			})
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sitemap: %w", err)
	}

	outputPath := filepath.Join(b.outputDir(), "sitemap.xml")
	data := append([]byte(xml.Header), out...)
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sitemap '%s': %w", outputPath, err)
	}
	fmt.Printf("Generated sitemap with %d URLs: %s\n", len(set.URLs), outputPath)
	return nil
}
