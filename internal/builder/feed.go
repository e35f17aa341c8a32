package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorilla/feeds"

	"foliogen/internal/model"
)

// writeFeed emits feed.xml: an RSS feed of the blog collection, newest
// first. Drafts never appear, since Collections holds public entries
// only.
func (b *Builder) writeFeed(site *model.Site) error {
	posts := site.Collections[feedCollection]

	feed := &feeds.Feed{
		Title:       site.Chrome.Title,
		Link:        &feeds.Link{Href: b.cfg.BaseURL + "/"},
		Description: site.Chrome.Description,
		Author:      &feeds.Author{Name: site.Chrome.Author},
	}
	if len(posts) > 0 {
		feed.Created = posts[0].Date
	}

	for _, e := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       e.Title,
			Link:        &feeds.Link{Href: b.cfg.BaseURL + e.Permalink},
			Id:          b.cfg.BaseURL + e.Permalink,
			Description: e.Summary,
			Created:     e.Date,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return fmt.Errorf("failed to render RSS feed: %w", err)
	}

	outputPath := filepath.Join(b.outputDir(), "feed.xml")
	if err := os.WriteFile(outputPath, []byte(rss), 0o644); err != nil {
		return fmt.Errorf("failed to write feed '%s': %w", outputPath, err)
	}
	fmt.Printf("Generated feed with %d items: %s\n", len(feed.Items), outputPath)
	return nil
}
