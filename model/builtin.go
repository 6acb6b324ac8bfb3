package model

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed scenarios/*.yaml
var scenarios embed.FS

const scenarioDir = "scenarios"

// Builtins lists the embedded scenario names, sorted.
func Builtins() []string {
	entries, err := scenarios.ReadDir(scenarioDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)

	return names
}

// Builtin parses the embedded scenario called name.
func Builtin(name string) (*Model, error) {
	data, err := scenarios.ReadFile(path.Join(scenarioDir, name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: no built-in scenario %q (have %s)",
			ErrInvalidModel, name, strings.Join(Builtins(), ", "))
	}

	return Parse(data)
}
