package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/draft"
)

const (
	templateExtensionKey = "x-invite-template"
	fieldExtensionKey    = "x-invite-field"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [documents...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint partner OpenAPI catalogs for malformed invite template annotations.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, fmt.Errorf("document has no component schemas")
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []violation
	annotated := 0
	for _, name := range names {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		raw, ok := ref.Value.Extensions[templateExtensionKey]
		if !ok {
			continue
		}
		annotated++
		result = append(result, lintTemplate(path, name, raw, ref.Value)...)
	}

	if annotated == 0 {
		result = append(result, violation{
			file:     path,
			location: "components.schemas",
			message:  fmt.Sprintf("no schema carries the %s extension", templateExtensionKey),
		})
	}
	return result, nil
}

func lintTemplate(file, name string, raw any, schema *openapi3.Schema) []violation {
	base := "components.schemas." + name

	meta, ok := raw.(map[string]any)
	if !ok || len(meta) == 0 {
		return []violation{{
			file:     file,
			location: base,
			message:  fmt.Sprintf("%s must be a non-empty object, found %T", templateExtensionKey, raw),
		}}
	}

	var result []violation
	report := func(location, format string, args ...any) {
		result = append(result, violation{
			file:     file,
			location: location,
			message:  fmt.Sprintf(format, args...),
		})
	}

	if slug, ok := meta["slug"].(string); ok && !draft.ValidSlug(slug) {
		report(base, "slug %q is not a valid lowercase-hyphen identifier", slug)
	}
	if category, ok := meta["category"].(string); ok && !knownCategory(catalog.Category(category)) {
		report(base, "unknown category %q", category)
	}
	if sections, ok := meta["sections"].([]any); ok {
		for _, entry := range sections {
			section, _ := entry.(string)
			if !knownSection(catalog.Section(section)) {
				report(base, "unknown section %q", section)
			}
		}
	}

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		prop := schema.Properties[key]
		if prop == nil || prop.Value == nil {
			continue
		}
		rawField, ok := prop.Value.Extensions[fieldExtensionKey]
		if !ok {
			continue
		}
		location := base + ".properties." + key

		fieldMeta, ok := rawField.(map[string]any)
		if !ok || len(fieldMeta) == 0 {
			report(location, "%s must be a non-empty object, found %T", fieldExtensionKey, rawField)
			continue
		}
		if typ, ok := fieldMeta["type"].(string); ok && !catalog.FieldType(typ).Known() {
			report(location, "unknown field type %q (supported: %s)", typ, strings.Join(knownFieldTypes(), ", "))
		}
		if section, ok := fieldMeta["section"].(string); ok && !knownSection(catalog.Section(section)) {
			report(location, "unknown section %q", section)
		}
	}

	return result
}

func knownCategory(category catalog.Category) bool {
	switch category {
	case catalog.CategoryWedding, catalog.CategoryBirthday,
		catalog.CategoryBabyShower, catalog.CategoryCorporate:
		return true
	}
	return false
}

func knownSection(section catalog.Section) bool {
	for _, s := range catalog.Sections() {
		if s == section {
			return true
		}
	}
	return false
}

func knownFieldTypes() []string {
	types := []catalog.FieldType{
		catalog.FieldTypeShortText, catalog.FieldTypeLongText, catalog.FieldTypeDate,
		catalog.FieldTypeTime, catalog.FieldTypeNumber, catalog.FieldTypeURL,
		catalog.FieldTypeBoolean, catalog.FieldTypeSingleImage, catalog.FieldTypeImageSet,
		catalog.FieldTypeScheduleList,
	}
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}
