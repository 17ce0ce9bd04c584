package catalog

import "strings"

// AllTypes is the filter value that keeps every entry.
const AllTypes = "All"

// ApplyFilter keeps entries having typeName among their types, ignoring
// case. AllTypes or an empty name returns list itself. Order is stable.
func ApplyFilter(list []Entry, typeName string) []Entry {
	if typeName == AllTypes || typeName == "" {
		return list
	}
	return Filter{Type: typeName}.Apply(list)
}

// Filter applies all non-empty criteria and returns matching entries.
type Filter struct {
	Type       string
	Search     string // matches name or any type
	CustomOnly bool
}

// Apply returns the subset of entries matching all non-empty filter fields.
func (f Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Type != "" && f.Type != AllTypes && !e.HasType(f.Type) {
			continue
		}
		if f.CustomOnly && !e.IsCustom() {
			continue
		}
		if f.Search != "" && !matchesSearch(e, f.Search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ByID returns the first entry with the given id, or nil.
func ByID(entries []Entry, id int64) *Entry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// ByName returns the first entry whose name equals name ignoring case, or nil.
func ByName(entries []Entry, name string) *Entry {
	for i := range entries {
		if strings.EqualFold(entries[i].Name, name) {
			return &entries[i]
		}
	}
	return nil
}

// Types returns the distinct lower-cased type names in first-seen order.
func Types(entries []Entry) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		for _, t := range e.Types {
			t = strings.ToLower(t)
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func matchesSearch(e Entry, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	for _, t := range e.Types {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
