package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foliogen/internal/config"
)

var cfgFile string
var appConfig config.Config
var siteChrome *config.Chrome

var rootCmd = &cobra.Command{
	Use:   "foliogen",
	Short: "foliogen builds a personal portfolio and blog from Markdown",
	Long: `Foliogen takes a content tree of Markdown entries (blog posts,
project write-ups, work records), validates their metadata, and
generates a static HTML site with listings, a feed, and a sitemap.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute stores the site chrome loaded in main and dispatches the CLI.
func Execute(chrome *config.Chrome) {
	siteChrome = chrome
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()

	v.SetDefault("outputDir", "public")
	v.SetDefault("baseURL", "")
	v.SetDefault("pageSize", 10)
	v.SetDefault("drafts", config.DraftsExclude)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIOGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found in current directory: %w", cfgFile, err)
			}
			fmt.Println("No config file found in current directory. Using default values and/or environment variables.")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Println("Using config file:", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if appConfig.Drafts != config.DraftsExclude && appConfig.Drafts != config.DraftsUnlisted {
		return fmt.Errorf("invalid drafts policy %q: must be %q or %q",
			appConfig.Drafts, config.DraftsExclude, config.DraftsUnlisted)
	}
	return nil
}
