package rssfeeds

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"newsdesk/types"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type presetFile struct {
	Feeds map[string][]FeedConfig `yaml:"feeds" toml:"feeds"`
}

// LoadPresets reads feed presets from a .yaml/.yml or .toml file. Categories
// missing from the file keep their built-in feeds.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var file presetFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported feeds file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	presets := make(Presets, len(DefaultPresets))
	for category, feeds := range DefaultPresets {
		presets[category] = feeds
	}

	for name, feeds := range file.Feeds {
		category, err := types.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("feeds file %s: %w", path, err)
		}
		for i, feed := range feeds {
			if strings.TrimSpace(feed.URL) == "" {
				return nil, fmt.Errorf("feeds file %s: %s feed %d has no url", path, category, i)
			}
			if feed.Name == "" {
				feeds[i].Name = feed.URL
			}
		}
		presets[category] = feeds
	}

	return presets, nil
}
