package main

import (
	"os"
	"path"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes template/index search paths, loaded from textfsm.yaml.
type Config struct {
	TemplatePaths []string `yaml:"templatepaths"`
	IndexFile     string   `yaml:"indexfile"`
}

// LoadConfig reads textfsm.yaml from the current directory, falling back to
// $XDG_CONFIG_HOME/textfsm/textfsm.yaml. A missing file is not an error: an
// empty Config is returned so that --templatedir/--indexfile flags alone
// are enough to drive the CLI.
func LoadConfig() (Config, error) {
	var result Config

	candidates := []string{
		"textfsm.yaml",
		path.Join(xdg.ConfigHome, "textfsm", "textfsm.yaml"),
	}

	var configFilename string
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			configFilename = c
			break
		}
	}
	if configFilename == "" {
		return result, nil
	}

	data, err := os.ReadFile(configFilename)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading %s", configFilename)
	}
	if err := yaml.Unmarshal(data, &result); err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", configFilename)
	}
	return result, nil
}

// resolveTemplateDirs merges config paths with --templatedir flags, flags
// taking precedence when searching.
func resolveTemplateDirs(cfg Config) []string {
	dirs := append([]string(nil), templateDirs...)
	dirs = append(dirs, cfg.TemplatePaths...)
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	return dirs
}

// resolveIndexFile prefers the --indexfile flag, then config.indexfile.
func resolveIndexFile(cfg Config) string {
	if indexFile != "" {
		return indexFile
	}
	return cfg.IndexFile
}
