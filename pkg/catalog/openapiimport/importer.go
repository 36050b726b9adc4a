// Package openapiimport converts annotated OpenAPI component schemas into
// catalog template definitions. Partners publish their template catalogs as
// OpenAPI documents; schemas carrying the x-invite-template extension become
// templates, their properties become fields.
package openapiimport

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-invitekit/pkg/catalog"
)

const (
	templateExtensionKey = "x-invite-template"
	fieldExtensionKey    = "x-invite-field"
)

// Options configures the importer.
type Options struct {
	// AllowExternalRefs permits $ref targets outside the document. Off by
	// default so imports stay deterministic and offline.
	AllowExternalRefs bool

	// Strict rejects annotated schemas whose properties cannot be mapped.
	// When false, unmappable properties are skipped.
	Strict bool
}

// Option mutates Options.
type Option func(*Options)

// WithExternalRefs permits externally referenced schemas.
func WithExternalRefs() Option {
	return func(o *Options) {
		o.AllowExternalRefs = true
	}
}

// WithStrict makes unmappable properties an error instead of a skip.
func WithStrict() Option {
	return func(o *Options) {
		o.Strict = true
	}
}

// Importer parses OpenAPI documents with kin-openapi and extracts template
// definitions from annotated component schemas.
type Importer struct {
	options Options
}

// New constructs an Importer.
func New(options ...Option) *Importer {
	imp := &Importer{}
	for _, opt := range options {
		if opt != nil {
			opt(&imp.options)
		}
	}
	return imp
}

// Import parses the raw document and returns every annotated template,
// ordered by slug.
func (i *Importer) Import(ctx context.Context, raw []byte) ([]catalog.TemplateDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapiimport: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.options.AllowExternalRefs,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapiimport: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("openapiimport: document has no component schemas")
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	var templates []catalog.TemplateDefinition
	for _, name := range names {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		meta, ok := templateMeta(ref.Value.Extensions)
		if !ok {
			continue
		}
		def, err := i.convertTemplate(name, ref.Value, meta)
		if err != nil {
			return nil, err
		}
		templates = append(templates, def)
	}

	if len(templates) == 0 {
		return nil, errors.New("openapiimport: no schemas carry the x-invite-template extension")
	}
	sort.Slice(templates, func(a, b int) bool {
		return templates[a].Slug < templates[b].Slug
	})
	return templates, nil
}

// ImportInto parses the raw document and registers every template, failing
// on the first registration conflict.
func (i *Importer) ImportInto(ctx context.Context, reg *catalog.Registry, raw []byte) error {
	templates, err := i.Import(ctx, raw)
	if err != nil {
		return err
	}
	for _, def := range templates {
		if err := reg.Register(def); err != nil {
			return fmt.Errorf("openapiimport: register %q: %w", def.Slug, err)
		}
	}
	return nil
}

func (i *Importer) convertTemplate(name string, schema *openapi3.Schema, meta map[string]any) (catalog.TemplateDefinition, error) {
	def := catalog.TemplateDefinition{
		Slug:        stringValue(meta["slug"]),
		Category:    catalog.Category(stringValue(meta["category"])),
		Name:        stringValue(meta["name"]),
		Description: stringValue(meta["description"]),
		Premium:     boolValue(meta["premium"]),
		PriceCents:  intValue(meta["priceCents"]),
	}
	if def.Slug == "" {
		def.Slug = slugFromName(name)
	}
	if def.Name == "" {
		def.Name = name
	}
	if def.Description == "" {
		def.Description = schema.Description
	}

	required := make(map[string]bool, len(schema.Required))
	for _, key := range schema.Required {
		required[key] = true
	}

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sections := make(map[catalog.Section]bool)
	for _, key := range keys {
		prop := schema.Properties[key]
		if prop == nil || prop.Value == nil {
			continue
		}
		field, ok := i.convertField(key, prop.Value, required[key])
		if !ok {
			if i.options.Strict {
				return catalog.TemplateDefinition{}, fmt.Errorf(
					"openapiimport: template %q: property %q has no field mapping", def.Slug, key)
			}
			continue
		}
		def.Fields = append(def.Fields, field)
		sections[field.Section] = true
	}

	if raw, ok := meta["sections"].([]any); ok {
		for _, entry := range raw {
			def.SupportedSections = append(def.SupportedSections, catalog.Section(stringValue(entry)))
		}
	} else {
		for _, section := range catalog.Sections() {
			if sections[section] {
				def.SupportedSections = append(def.SupportedSections, section)
			}
		}
	}
	return def, nil
}

func (i *Importer) convertField(key string, schema *openapi3.Schema, required bool) (catalog.FieldDefinition, bool) {
	field := catalog.FieldDefinition{
		Key:      key,
		Label:    schema.Title,
		Required: required,
		Section:  catalog.SectionBasic,
	}
	if meta, ok := fieldMeta(schema.Extensions); ok {
		if v := stringValue(meta["type"]); v != "" {
			field.Type = catalog.FieldType(v)
		}
		if v := stringValue(meta["label"]); v != "" {
			field.Label = v
		}
		if v := stringValue(meta["section"]); v != "" {
			field.Section = catalog.Section(v)
		}
		if v := stringValue(meta["placeholder"]); v != "" {
			field.Placeholder = v
		}
		if meta["required"] != nil {
			field.Required = boolValue(meta["required"])
		}
	}

	if field.Type == "" {
		inferred, ok := inferType(schema)
		if !ok {
			return catalog.FieldDefinition{}, false
		}
		field.Type = inferred
	}
	if !field.Type.Known() {
		return catalog.FieldDefinition{}, false
	}
	if field.Label == "" {
		field.Label = labelFromKey(key)
	}
	if schema.MaxLength != nil {
		field.MaxLength = int(*schema.MaxLength)
	}
	if schema.MaxItems != nil {
		field.Max = int(*schema.MaxItems)
	}
	return field, true
}

// inferType maps plain schema shapes onto field types for documents without
// per-property annotations.
func inferType(schema *openapi3.Schema) (catalog.FieldType, bool) {
	switch {
	case schema.Type.Is(openapi3.TypeString):
		switch schema.Format {
		case "date":
			return catalog.FieldTypeDate, true
		case "time":
			return catalog.FieldTypeTime, true
		case "uri":
			return catalog.FieldTypeURL, true
		}
		if schema.MaxLength != nil && *schema.MaxLength > 200 {
			return catalog.FieldTypeLongText, true
		}
		return catalog.FieldTypeShortText, true
	case schema.Type.Is(openapi3.TypeNumber), schema.Type.Is(openapi3.TypeInteger):
		return catalog.FieldTypeNumber, true
	case schema.Type.Is(openapi3.TypeBoolean):
		return catalog.FieldTypeBoolean, true
	case schema.Type.Is(openapi3.TypeArray):
		if schema.Items == nil || schema.Items.Value == nil {
			return "", false
		}
		item := schema.Items.Value
		if item.Type.Is(openapi3.TypeString) {
			return catalog.FieldTypeImageSet, true
		}
		if item.Type.Is(openapi3.TypeObject) {
			return catalog.FieldTypeScheduleList, true
		}
		return "", false
	default:
		return "", false
	}
}

func templateMeta(extensions map[string]any) (map[string]any, bool) {
	return extensionMap(extensions, templateExtensionKey)
}

func fieldMeta(extensions map[string]any) (map[string]any, bool) {
	return extensionMap(extensions, fieldExtensionKey)
}

func extensionMap(extensions map[string]any, key string) (map[string]any, bool) {
	raw, ok := extensions[key]
	if !ok {
		return nil, false
	}
	mapped, ok := raw.(map[string]any)
	if !ok || len(mapped) == 0 {
		return nil, false
	}
	return mapped, true
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func slugFromName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func labelFromKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case i == 0:
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
