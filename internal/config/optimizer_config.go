// Package config provides configuration loading and validation for the feed optimizer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Loader reads per-optimizer JSON configuration files from a directory
// and caches the parsed contents for the process lifetime. Optimizer
// configs are named "<optimizer>_config_<language>.json".
type Loader struct {
	dir string

	mu    sync.Mutex
	cache map[string]map[string]any
}

// NewLoader creates a Loader rooted at the given config directory.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]map[string]any),
	}
}

// Get returns the parsed contents of <name>.json under the config
// directory. A missing file yields an empty map so optimizers without
// language-specific configuration degrade to their defaults; a file
// that exists but cannot be read or parsed is a configuration error.
func (l *Loader) Get(name string) (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.cache[name]; ok {
		return cached, nil
	}

	path := filepath.Join(l.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			empty := map[string]any{}
			l.cache[name] = empty
			return empty, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var contents map[string]any
	if err := json.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON %s: %w", path, err)
	}

	l.cache[name] = contents
	return contents, nil
}

// ForLanguage returns the named optimizer's config for a language,
// e.g. ForLanguage("free_shipping_optimizer_config", "en").
func (l *Loader) ForLanguage(prefix, language string) (map[string]any, error) {
	return l.Get(fmt.Sprintf("%s_%s", prefix, language))
}

// StringList extracts a list of strings from a parsed config value.
// Non-string elements are skipped.
func StringList(cfg map[string]any, key string) []string {
	raw, ok := cfg[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringMap extracts a map of string -> []string from a parsed config
// value, e.g. category-specific token tables.
func StringMap(cfg map[string]any, key string) map[string][]string {
	raw, ok := cfg[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string][]string, len(raw))
	for k, v := range raw {
		if list, ok := v.([]any); ok {
			tokens := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok {
					tokens = append(tokens, s)
				}
			}
			out[k] = tokens
		}
	}
	return out
}
