package config

// Draft policy values for Config.Drafts.
const (
	// DraftsExclude drops draft entries from the build entirely.
	DraftsExclude = "exclude"
	// DraftsUnlisted writes a page for each draft at its permalink but
	// keeps it out of listings, the feed, and the sitemap.
	DraftsUnlisted = "unlisted"
)

// Config holds the build settings resolved by viper from config.yaml,
// environment variables, and defaults.
type Config struct {
	OutputDir string `mapstructure:"outputDir"`
	BaseURL   string `mapstructure:"baseURL"`
	PageSize  int    `mapstructure:"pageSize"`
	Drafts    string `mapstructure:"drafts"`
}
