package builder

import (
	"bytes"
	"encoding/xml"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foliogen/internal/config"
	"foliogen/internal/model"
)

func testChrome() *config.Chrome {
	return &config.Chrome{
		Title:       "Test Portfolio",
		Description: "A portfolio and technical blog",
		Author:      "Sam Tester",
		Nav: []config.Link{
			{Label: "Blog", URL: "/blog/"},
		},
		Social: []config.SocialLink{
			{Label: "GitHub", Icon: "github", URL: "https://github.com/example"},
		},
	}
}

func testConfig(root string) config.Config {
	return config.Config{
		OutputDir: filepath.Join(root, "public"),
		BaseURL:   "https://example.com",
		PageSize:  10,
		Drafts:    config.DraftsExclude,
	}
}

func writeFile(t *testing.T, root, relPath, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// scaffold builds a minimal but complete site source tree: layouts with
// a partial, a blog collection matching the three-entry draft scenario,
// one project, and a static asset.
func scaffold(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "layouts/base.html",
		`<!DOCTYPE html><html><head><title>{{.Site.Chrome.Title}}</title></head><body>{{with .Entry}}{{.Body}}{{end}}</body></html>`)
	writeFile(t, root, "layouts/single.html",
		`<!DOCTYPE html><html><head><title>{{.Entry.Title}} | {{.Site.Chrome.Title}}</title></head><body><article><h1>{{.Entry.Title}}</h1>{{.Entry.Body}}</article>{{template "footer.html" .}}</body></html>`)
	writeFile(t, root, "layouts/list.html",
		`<!DOCTYPE html><html><body><h1>{{.CollectionTitle}}</h1><ul class="entries">{{range .Pager.Entries}}<li><a href="{{.Permalink}}">{{.Title}}</a></li>{{end}}</ul>{{if .Pager.PrevURL}}<a rel="prev" href="{{.Pager.PrevURL}}">Newer</a>{{end}}{{if .Pager.NextURL}}<a rel="next" href="{{.Pager.NextURL}}">Older</a>{{end}}</body></html>`)
	writeFile(t, root, "layouts/home.html",
		`<!DOCTYPE html><html><body><h1>{{.Site.Chrome.Title}}</h1><ul class="recent">{{range .Recent}}<li>{{.Title}}</li>{{end}}</ul>{{template "footer.html" .}}</body></html>`)
	writeFile(t, root, "layouts/partials/footer.html",
		`<footer class="site-footer">{{.Site.Chrome.Author}}</footer>`)

	writeFile(t, root, "content/blog/going-static/index.md", `---
title: Going Static
summary: Why this site is a static build
date: 2025-06-23
tags:
  - meta
---
Body of the first post.
`)
	writeFile(t, root, "content/blog/work-in-progress/index.md", `---
title: Work in Progress
summary: Not ready yet
date: 2025-06-24
draft: true
---
Unfinished.
`)
	writeFile(t, root, "content/blog/smooth-scrolling/index.md", `---
title: Smooth Scrolling
summary: A back to top button
date: 2025-07-30
---
Body of the newest post.
`)
	writeFile(t, root, "content/projects/store-clone/index.md", `---
title: Store Clone
summary: An e-commerce clone with Stripe checkout
date: 2025-03-10
tags:
  - stripe
  - go
repoUrl: https://github.com/example/store
---
Project write-up.
`)

	writeFile(t, root, "static/css/site.css", "body { margin: 0; }\n")
	return root
}

func parseHTML(t *testing.T, path string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestRun_EndToEnd(t *testing.T) {
	root := scaffold(t)
	cfg := testConfig(root)
	require.NoError(t, New(cfg, testChrome(), root).Run())

	out := cfg.OutputDir
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.FileExists(t, filepath.Join(out, "blog", "going-static", "index.html"))
	assert.FileExists(t, filepath.Join(out, "blog", "smooth-scrolling", "index.html"))
	assert.FileExists(t, filepath.Join(out, "projects", "store-clone", "index.html"))
	assert.FileExists(t, filepath.Join(out, "css", "site.css"))
	assert.NoDirExists(t, filepath.Join(out, "blog", "work-in-progress"))

	// Listing order follows the sort key: newest first, draft excluded.
	listing := parseHTML(t, filepath.Join(out, "blog", "index.html"))
	links := listing.Find("ul.entries li a")
	require.Equal(t, 2, links.Length())
	href, _ := links.First().Attr("href")
	assert.Equal(t, "/blog/smooth-scrolling/", href)
	assert.Equal(t, "Smooth Scrolling", links.First().Text())

	// The shared footer partial reaches entry pages.
	single := parseHTML(t, filepath.Join(out, "blog", "going-static", "index.html"))
	assert.Equal(t, "Sam Tester", single.Find("footer.site-footer").Text())
	assert.Equal(t, "Going Static", single.Find("article h1").Text())

	// The home page lists recent public entries across collections.
	home := parseHTML(t, filepath.Join(out, "index.html"))
	assert.Equal(t, 3, home.Find("ul.recent li").Length())
	assert.Equal(t, "Smooth Scrolling", home.Find("ul.recent li").First().Text())
}

func TestRun_FeedRoundTrip(t *testing.T) {
	root := scaffold(t)
	cfg := testConfig(root)
	require.NoError(t, New(cfg, testChrome(), root).Run())

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "feed.xml"))
	require.NoError(t, err)

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "Test Portfolio", feed.Title)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, "Smooth Scrolling", feed.Items[0].Title)
	assert.Equal(t, "https://example.com/blog/smooth-scrolling/", feed.Items[0].Link)
	assert.Equal(t, "A back to top button", feed.Items[0].Description)
	assert.Equal(t, "Going Static", feed.Items[1].Title)
}

func TestRun_Sitemap(t *testing.T) {
	root := scaffold(t)
	cfg := testConfig(root)
	require.NoError(t, New(cfg, testChrome(), root).Run())

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "sitemap.xml"))
	require.NoError(t, err)

	var set urlSet
	require.NoError(t, xml.Unmarshal(data, &set))

	locations := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		locations = append(locations, u.Location)
	}
	assert.Contains(t, locations, "https://example.com/")
	assert.Contains(t, locations, "https://example.com/blog/")
	assert.Contains(t, locations, "https://example.com/blog/going-static/")
	assert.Contains(t, locations, "https://example.com/projects/store-clone/")
	assert.NotContains(t, locations, "https://example.com/blog/work-in-progress/")
}

func TestRun_DraftPolicies(t *testing.T) {
	t.Run("exclude writes no draft page", func(t *testing.T) {
		root := scaffold(t)
		cfg := testConfig(root)
		cfg.Drafts = config.DraftsExclude
		require.NoError(t, New(cfg, testChrome(), root).Run())
		assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "blog", "work-in-progress", "index.html"))
	})

	t.Run("unlisted writes the page but keeps it out of indexes", func(t *testing.T) {
		root := scaffold(t)
		cfg := testConfig(root)
		cfg.Drafts = config.DraftsUnlisted
		require.NoError(t, New(cfg, testChrome(), root).Run())

		assert.FileExists(t, filepath.Join(cfg.OutputDir, "blog", "work-in-progress", "index.html"))

		listing := parseHTML(t, filepath.Join(cfg.OutputDir, "blog", "index.html"))
		assert.Equal(t, 2, listing.Find("ul.entries li").Length())

		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "feed.xml"))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "work-in-progress")

		data, err = os.ReadFile(filepath.Join(cfg.OutputDir, "sitemap.xml"))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "work-in-progress")
	})
}

func TestRun_Pagination(t *testing.T) {
	root := scaffold(t)
	writeFile(t, root, "content/blog/older-post/index.md", `---
title: Older Post
summary: Archive material
date: 2024-11-05
---
Body.
`)

	cfg := testConfig(root)
	cfg.PageSize = 2
	require.NoError(t, New(cfg, testChrome(), root).Run())

	pageOne := parseHTML(t, filepath.Join(cfg.OutputDir, "blog", "index.html"))
	assert.Equal(t, 2, pageOne.Find("ul.entries li").Length())
	next, _ := pageOne.Find("a[rel=next]").Attr("href")
	assert.Equal(t, "/blog/page/2/", next)

	pageTwo := parseHTML(t, filepath.Join(cfg.OutputDir, "blog", "page", "2", "index.html"))
	assert.Equal(t, 1, pageTwo.Find("ul.entries li").Length())
	prev, _ := pageTwo.Find("a[rel=prev]").Attr("href")
	assert.Equal(t, "/blog/", prev)
	assert.Equal(t, 0, pageTwo.Find("a[rel=next]").Length())
}

func snapshotTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func TestRun_IsIdempotent(t *testing.T) {
	root := scaffold(t)
	cfg := testConfig(root)
	b := New(cfg, testChrome(), root)

	require.NoError(t, b.Run())
	first := snapshotTree(t, cfg.OutputDir)

	require.NoError(t, b.Run())
	second := snapshotTree(t, cfg.OutputDir)

	assert.Equal(t, first, second)
}

func TestRun_SchemaFailureAbortsBeforeOutput(t *testing.T) {
	root := scaffold(t)
	writeFile(t, root, "content/blog/broken/index.md", `---
summary: Missing a title
date: 2025-01-01
---
Body.
`)

	cfg := testConfig(root)
	err := New(cfg, testChrome(), root).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"title"`)

	// The build failed during intake, before the output dir was touched.
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestRun_MissingHomeLayoutFails(t *testing.T) {
	root := scaffold(t)
	require.NoError(t, os.Remove(filepath.Join(root, "layouts", "home.html")))

	err := New(testConfig(root), testChrome(), root).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "home.html")
}

func TestPaginate(t *testing.T) {
	entries := []*model.Entry{{Slug: "a"}, {Slug: "b"}, {Slug: "c"}, {Slug: "d"}, {Slug: "e"}}

	pagers := paginate(entries, 2, "/blog/")
	require.Len(t, pagers, 3)

	assert.Equal(t, 1, pagers[0].Number)
	assert.Equal(t, 3, pagers[0].Total)
	assert.Empty(t, pagers[0].PrevURL)
	assert.Equal(t, "/blog/page/2/", pagers[0].NextURL)

	assert.Equal(t, "/blog/", pagers[1].PrevURL)
	assert.Equal(t, "/blog/page/3/", pagers[1].NextURL)

	assert.Len(t, pagers[2].Entries, 1)
	assert.Empty(t, pagers[2].NextURL)
	assert.Equal(t, "/blog/page/2/", pagers[2].PrevURL)
}
