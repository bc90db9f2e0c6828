package navigation

import (
	"fmt"
	"strings"
)

// Entry is a single navigable activity link rendered in the site menu.
type Entry struct {
	Name string
	Path string
}

const entriesField = "activities"

// entriesFromDocument decodes the activities list out of the navigation
// document body. Malformed members are skipped rather than failing the
// whole read.
func entriesFromDocument(data map[string]any) []Entry {
	raw, ok := data[entriesField]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	entries := make([]Entry, 0, len(list))
	for _, member := range list {
		record, ok := member.(map[string]any)
		if !ok {
			continue
		}
		entry := Entry{
			Name: stringField(record, "name"),
			Path: stringField(record, "path"),
		}
		if entry.Name == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// entriesToDocument encodes entries back into the document body shape.
func entriesToDocument(entries []Entry) map[string]any {
	list := make([]any, 0, len(entries))
	for _, entry := range entries {
		list = append(list, map[string]any{
			"name": entry.Name,
			"path": entry.Path,
		})
	}
	return map[string]any{entriesField: list}
}

func stringField(record map[string]any, key string) string {
	raw, ok := record[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}
