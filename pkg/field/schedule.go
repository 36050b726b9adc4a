package field

import "github.com/goliatone/go-invitekit/pkg/catalog"

// ScheduleEntry is one row of a schedule-list field.
type ScheduleEntry struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Schedule returns the ordered entries under key, coercing both the native
// []ScheduleEntry shape and the []any form produced by JSON decoding.
func Schedule(data map[string]any, key string) []ScheduleEntry {
	if data == nil {
		return nil
	}
	switch v := data[key].(type) {
	case []ScheduleEntry:
		out := make([]ScheduleEntry, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]ScheduleEntry, 0, len(v))
		for _, item := range v {
			raw, ok := item.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, ScheduleEntry{
				Time:        stringAt(raw, "time"),
				Title:       stringAt(raw, "title"),
				Description: stringAt(raw, "description"),
			})
		}
		return out
	}
	return nil
}

// AddScheduleEntry appends an entry to a schedule-list field.
func AddScheduleEntry(data map[string]any, def catalog.FieldDefinition, entry ScheduleEntry) {
	if data == nil {
		return
	}
	data[def.Key] = append(Schedule(data, def.Key), entry)
}

// UpdateScheduleEntry replaces the entry at index. Out-of-range indexes are
// ignored.
func UpdateScheduleEntry(data map[string]any, def catalog.FieldDefinition, index int, entry ScheduleEntry) {
	if data == nil {
		return
	}
	entries := Schedule(data, def.Key)
	if index < 0 || index >= len(entries) {
		return
	}
	entries[index] = entry
	data[def.Key] = entries
}

// RemoveScheduleEntry drops the entry at index, re-indexing the remainder.
func RemoveScheduleEntry(data map[string]any, def catalog.FieldDefinition, index int) {
	if data == nil {
		return
	}
	entries := Schedule(data, def.Key)
	if index < 0 || index >= len(entries) {
		return
	}
	data[def.Key] = append(entries[:index], entries[index+1:]...)
}

func stringAt(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}
