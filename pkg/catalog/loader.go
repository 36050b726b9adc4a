package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a catalog file. A file may declare one or
// more templates.
type document struct {
	Templates []TemplateDefinition `yaml:"templates"`
}

// LoadYAML parses a single YAML catalog document and registers every template
// it declares.
func LoadYAML(reg *Registry, data []byte) error {
	if reg == nil {
		return fmt.Errorf("catalog: registry is required")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("catalog: parse document: %w", err)
	}
	if len(doc.Templates) == 0 {
		return fmt.Errorf("catalog: document declares no templates")
	}

	for _, def := range doc.Templates {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// LoadFS walks the provided filesystem and registers every template declared
// in .yml/.yaml catalog files. When fsys is nil the registry is left
// untouched.
func LoadFS(reg *Registry, fsys fs.FS) error {
	if fsys == nil {
		return nil
	}

	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		if err := LoadYAML(reg, data); err != nil {
			return fmt.Errorf("catalog: file %s: %w", path, err)
		}
		return nil
	})
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}
