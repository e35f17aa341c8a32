package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"foliogen/internal/builder"
)

var serverPort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of your site, then starts a
local web server to serve the output directory. It also watches your
content, layouts, and static directories for changes and automatically
rebuilds the site.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("Performing initial build...")
		if err := builder.New(appConfig, siteChrome, ".").Run(); err != nil {
			log.Fatalf("Initial build failed: %v. Please fix issues and try again.", err)
			return err
		}
		log.Println("Initial build successful.")

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Fatalf("Failed to create file watcher: %v", err)
			return err
		}
		defer watcher.Close()

		go func() {
			// Debounce: wait a short period after an event before rebuilding.
			var buildTimer *time.Timer
			debounceDuration := 500 * time.Millisecond

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}
					if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
						log.Printf("Change detected: %s (%s)", event.Name, event.Op.String())

						// Children of newly created directories are not watched
						// automatically, so add them as they appear.
						if event.Has(fsnotify.Create) && isDir(event.Name) {
							log.Printf("New directory created: %s. Adding to watcher.", event.Name)
							if err := watcher.Add(event.Name); err != nil {
								log.Printf("Error adding new directory %s to watcher: %v", event.Name, err)
							}
						}

						if buildTimer != nil {
							buildTimer.Stop()
						}
						buildTimer = time.AfterFunc(debounceDuration, func() {
							log.Println("Rebuilding site due to changes...")
							if err := builder.New(appConfig, siteChrome, ".").Run(); err != nil {
								log.Printf("Error during rebuild: %v", err)
							} else {
								log.Println("Site rebuilt successfully.")
							}
						})
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					log.Printf("Watcher error: %v", err)
				}
			}
		}()

		// fsnotify watches specific paths, so each directory is added
		// individually for recursive coverage.
		pathsToWatch := []string{
			builder.ContentDir,
			builder.LayoutsDir,
			builder.StaticDir,
		}

		for _, rootPath := range pathsToWatch {
			if _, statErr := os.Stat(rootPath); os.IsNotExist(statErr) {
				log.Printf("Directory '%s' not found, not watching.", rootPath)
				continue
			}

			log.Printf("Setting up watch for %s and its subdirectories...", rootPath)
			err = filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					log.Printf("Error walking %s: %v", path, err)
					return nil
				}
				if d.IsDir() {
					if watchErr := watcher.Add(path); watchErr != nil {
						log.Printf("Failed to watch %s: %v", path, watchErr)
					}
				}
				return nil
			})
			if err != nil {
				log.Printf("Error during initial directory walk for watching %s: %v", rootPath, err)
			}
		}

		serverAddr := fmt.Sprintf(":%d", serverPort)
		log.Printf("Serving site from '%s' on http://localhost%s", appConfig.OutputDir, serverAddr)
		log.Println("Press Ctrl+C to stop the server.")

		fs := http.FileServer(http.Dir(appConfig.OutputDir))
		http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			// Suppress directory listings for directories without an index.
			if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
				_, err := os.Stat(filepath.Join(appConfig.OutputDir, r.URL.Path, "index.html"))
				if os.IsNotExist(err) {
					http.NotFound(w, r)
					return
				}
			}
			// Disable caching during development.
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
			fs.ServeHTTP(w, r)
		})

		if err := http.ListenAndServe(serverAddr, nil); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
			return err
		}
		return nil
	},
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
