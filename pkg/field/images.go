package field

import "github.com/goliatone/go-invitekit/pkg/catalog"

// SetImage stores an object-URL-like reference for a single-image field.
// Replacing overwrites the previous reference outright.
func SetImage(data map[string]any, def catalog.FieldDefinition, ref string) {
	if data == nil {
		return
	}
	if ref == "" {
		delete(data, def.Key)
		return
	}
	data[def.Key] = ref
}

// AppendImage adds a reference to an image-set field, preserving order.
// Appending beyond the field's bound is a no-op, not an error.
func AppendImage(data map[string]any, def catalog.FieldDefinition, ref string) {
	if data == nil || ref == "" {
		return
	}
	images := Images(data, def.Key)
	if len(images) >= imageSetMax(def) {
		return
	}
	data[def.Key] = append(images, ref)
}

// ClampImages normalizes a bulk image-set write: blank references drop out
// and the result truncates at the field's bound, matching the AppendImage
// invariant for one-at-a-time edits.
func ClampImages(def catalog.FieldDefinition, refs []string) []string {
	max := imageSetMax(def)
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if len(out) >= max {
			break
		}
		out = append(out, ref)
	}
	return out
}

// RemoveImage drops the reference at index from an image-set field. The
// remainder keeps its order; out-of-range indexes are ignored.
func RemoveImage(data map[string]any, def catalog.FieldDefinition, index int) {
	if data == nil {
		return
	}
	images := Images(data, def.Key)
	if index < 0 || index >= len(images) {
		return
	}
	data[def.Key] = append(images[:index], images[index+1:]...)
}
