package prefab

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// BundleDir is the conventional template bundle directory inside a project.
const BundleDir = "prefabs"

// Catalog is one template catalog file.
type Catalog struct {
	Templates []*Template `yaml:"templates" json:"templates"`
}

// LoadCatalog reads a single catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", filepath.Base(path), err)
	}
	return &cat, nil
}

// LoadBundle reads every *.yaml and *.yml catalog in dir, in file-name order,
// and returns all templates. A missing directory is not an error.
func LoadBundle(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading bundle directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []*Template
	for _, name := range names {
		cat, err := LoadCatalog(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		for _, t := range cat.Templates {
			if t != nil && t.Name != "" {
				out = append(out, t)
			}
		}
	}
	return out, nil
}
