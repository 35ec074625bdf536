package config

import (
	"fmt"

	"dario.cat/mergo"
)

// loader collects the config sources of one process start.
type loader struct {
	environ map[string]string
	args    []string
}

func newLoader(environ map[string]string, args []string) *loader {
	return &loader{environ: environ, args: args}
}

// load reads env, then flags, then the JSON file named by either of them,
// and merges the results in that order.
func (l *loader) load() (*StructuredConfig, error) {
	fromEnv, err := parseEnv(l.environ)
	if err != nil {
		return nil, err
	}

	fromFlags, err := parseFlags(l.args)
	if err != nil {
		return nil, err
	}

	sources := []*StructuredConfig{fromEnv, fromFlags}
	if path := jsonPath(sources); path != "" {
		fromFile, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fromFile)
	}

	return merge(sources...)
}

// jsonPath is the last non-empty JSONFilePath among sources.
func jsonPath(sources []*StructuredConfig) string {
	var path string
	for _, src := range sources {
		if src.JSONFilePath != "" {
			path = src.JSONFilePath
		}
	}
	return path
}

// merge overlays sources left to right. Zero fields never override.
func merge(sources ...*StructuredConfig) (*StructuredConfig, error) {
	cfg := new(StructuredConfig)
	for i, src := range sources {
		if err := mergo.Merge(cfg, src, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge config source %d: %w", i, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
