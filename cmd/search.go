package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"foliogen/internal/builder"
	"foliogen/internal/content"
	"foliogen/internal/query"
)

var (
	searchCollection string
	searchDrafts     bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Searches entry titles, summaries, and tags",
	Long: `The search command loads the content store and prints every entry whose
title, summary, or tags contain the given term, case-insensitively.
Drafts are excluded unless --drafts is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := content.NewLoader().Load(builder.ContentDir)
		if err != nil {
			return fmt.Errorf("content load failed: %w", err)
		}

		candidates := entries
		if searchCollection != "" {
			candidates = query.ByCollection(entries)[searchCollection]
		}
		listed := query.List(candidates, query.Options{IncludeDrafts: searchDrafts})

		count := 0
		for e := range query.Search(listed, args[0]) {
			fmt.Printf("%s  %-30s  %s\n", e.Date.Format("2006-01-02"), e.Collection+"/"+e.Slug, e.Title)
			count++
		}
		fmt.Printf("%d match(es) for %q\n", count, args[0])
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchCollection, "collection", "", "restrict the search to one collection")
	searchCmd.Flags().BoolVar(&searchDrafts, "drafts", false, "include draft entries in the search")
	rootCmd.AddCommand(searchCmd)
}
