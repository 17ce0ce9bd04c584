package catalog

import (
	"slices"

	"github.com/blackwell-systems/dexctl/internal/util"
)

// Save writes the entry list as YAML to path.
func Save(path string, entries []Entry) error {
	data, err := Marshal(entries)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, data, 0600)
}

// Replace swaps every entry carrying e.ID for e and reports whether any
// was found. Ids are not unique in stored records, so all matches change.
func Replace(entries []Entry, e Entry) ([]Entry, bool) {
	found := false
	for i, existing := range entries {
		if existing.ID == e.ID {
			entries[i] = e
			found = true
		}
	}
	return entries, found
}

// Remove drops every entry with the given id. Returns the updated slice
// and whether anything was removed.
func Remove(entries []Entry, id int64) ([]Entry, bool) {
	n := len(entries)
	entries = slices.DeleteFunc(entries, func(e Entry) bool { return e.ID == id })
	return entries, len(entries) != n
}
