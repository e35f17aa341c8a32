package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Link is a navigation destination shown in the site header.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// SocialLink is an outbound profile link shown in the site footer.
type SocialLink struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
	URL   string `yaml:"url"`
}

// Chrome is the site-wide configuration rendered into every page:
// title, description, author, and the nav/social link sets. It is
// loaded once at process start and never mutated afterwards.
type Chrome struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Author      string       `yaml:"author"`
	Nav         []Link       `yaml:"nav"`
	Social      []SocialLink `yaml:"social"`
}

// LoadChrome reads the site chrome from a YAML file.
func LoadChrome(filename string) (*Chrome, error) {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading site file %s: %w", filename, err)
	}

	var chrome Chrome
	if err := yaml.Unmarshal(yamlFile, &chrome); err != nil {
		return nil, fmt.Errorf("error unmarshalling site file %s: %w", filename, err)
	}
	return &chrome, nil
}
