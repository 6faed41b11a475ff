package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ruleFile is the on-disk YAML shape for custom rule files.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadFile parses a custom rule YAML file. Validation (severity, language,
// pattern compilation) happens later in NewRegistry, so a broken custom rule
// still refuses startup rather than being skipped.
func LoadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("rule file %s defines no rules", path)
	}
	return rf.Rules, nil
}

// LoadDir loads every *.yaml / *.yml file in dir, in name order. A missing
// directory is not an error: custom rules are optional.
func LoadDir(dir string) ([]Rule, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rules directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var all []Rule
	for _, name := range names {
		loaded, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		all = append(all, loaded...)
	}
	return all, nil
}
