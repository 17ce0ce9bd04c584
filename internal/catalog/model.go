package catalog

import "strings"

// Origin tags where an entry came from. Remote entries are re-fetched on
// every refresh and are read-only; custom entries are owned by the local
// custom store.
type Origin int

const (
	OriginRemote Origin = iota
	OriginCustom
)

func (o Origin) String() string {
	if o == OriginCustom {
		return "custom"
	}
	return "remote"
}

// Entry is one creature as listed and shown in detail views.
type Entry struct {
	ID        int64    `yaml:"id"`
	Name      string   `yaml:"name"`
	Types     []string `yaml:"types"`
	SpriteURL string   `yaml:"sprite"`
	Abilities []string `yaml:"abilities,omitempty"`
	Stats     []Stat   `yaml:"stats,omitempty"`
	Origin    Origin   `yaml:"-"`
}

// Stat is a named base stat value.
type Stat struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

// Fields is an entry without its id, as supplied to add and edit.
type Fields struct {
	Name      string
	Types     []string
	SpriteURL string
	Abilities []string
	Stats     []Stat
}

// Fields returns the mutable part of e.
func (e Entry) Fields() Fields {
	return Fields{
		Name:      e.Name,
		Types:     e.Types,
		SpriteURL: e.SpriteURL,
		Abilities: e.Abilities,
		Stats:     e.Stats,
	}
}

// Entry builds an entry carrying id and origin.
func (f Fields) Entry(id int64, origin Origin) Entry {
	return Entry{
		ID:        id,
		Name:      f.Name,
		Types:     f.Types,
		SpriteURL: f.SpriteURL,
		Abilities: f.Abilities,
		Stats:     f.Stats,
		Origin:    origin,
	}
}

// IsCustom reports whether e is a locally owned entry.
func (e Entry) IsCustom() bool {
	return e.Origin == OriginCustom
}

// HasType reports whether any of e's types equals name, ignoring case.
func (e Entry) HasType(name string) bool {
	for _, t := range e.Types {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}
