package upwork

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// FlattenedItem holds exactly one key, a snake_case path mapped to a scalar.
// An ordered slice of these is the tabular view of one extraction result.
type FlattenedItem map[string]any

const unknownClient = "Unknown Client"

// FlattenJobData converts a nested extraction result into the ordered list the
// UI table renders. Positions 0, 1, 2 are always client_name, job_title,
// job_description; the remaining leaves follow in walk order. Arrays are
// joined with ", " (lossy by design). Never fails.
func FlattenJobData(d AnalizedUpworkJobData) []FlattenedItem {
	items := make([]FlattenedItem, 0, 16)

	clientName := unknownClient
	if d.ClientInfo != nil && d.ClientInfo.ClientName != "" {
		clientName = d.ClientInfo.ClientName
	}
	items = append(items,
		FlattenedItem{"client_name": clientName},
		FlattenedItem{"job_title": d.JobDetails.Title},
		FlattenedItem{"job_description": d.JobDetails.Description},
	)

	// round trip lewat JSON supaya traversal generik atas camelCase keys,
	// field optional yang absen hilang sendiri di sini
	raw, err := json.Marshal(d)
	if err != nil {
		return items
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return items
	}

	skip := map[string]bool{
		"job.title":       true,
		"job.description": true,
		"clientName":      true,
	}

	if jd, ok := m["jobDetails"].(map[string]any); ok {
		flattenInto(&items, jd, "job", skip)
	}
	if ci, ok := m["clientInfo"].(map[string]any); ok {
		flattenInto(&items, ci, "", skip)
	}
	return items
}

func flattenInto(out *[]FlattenedItem, obj map[string]any, prefix string, skip map[string]bool) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if skip[path] {
			continue
		}

		switch v := obj[k].(type) {
		case map[string]any:
			flattenInto(out, v, path, skip)
		case []any:
			parts := make([]string, 0, len(v))
			for _, e := range v {
				parts = append(parts, fmt.Sprint(e))
			}
			*out = append(*out, FlattenedItem{toSnakeCase(path): strings.Join(parts, ", ")})
		default:
			// scalar atau null, dua-duanya tetap di-emit
			*out = append(*out, FlattenedItem{toSnakeCase(path): v})
		}
	}
}

// toSnakeCase turns a dotted camelCase path into a snake_case key:
// "." becomes "_", "_" is inserted before every uppercase letter, then
// everything is lowercased. Idempotent.
func toSnakeCase(path string) string {
	var b strings.Builder
	b.Grow(len(path) + 4)
	for _, r := range path {
		switch {
		case r == '.':
			b.WriteByte('_')
		case unicode.IsUpper(r):
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
