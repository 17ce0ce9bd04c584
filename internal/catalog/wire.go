package catalog

import (
	"encoding/json"
	"fmt"
)

// Record is the JSON shape of a full catalogue entry. The remote detail
// endpoint returns it and the custom store persists it.
type Record struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Types     []TypeSlot    `json:"types"`
	Sprites   Sprites       `json:"sprites"`
	Abilities []AbilitySlot `json:"abilities,omitempty"`
	Stats     []StatSlot    `json:"stats,omitempty"`
}

// NamedRef is a {name, url} reference.
type NamedRef struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type TypeSlot struct {
	Type NamedRef `json:"type"`
}

type Sprites struct {
	FrontDefault string `json:"front_default"`
}

type AbilitySlot struct {
	Ability NamedRef `json:"ability"`
}

type StatSlot struct {
	Stat     NamedRef `json:"stat"`
	BaseStat int      `json:"base_stat"`
}

// Entry converts the record to an entry with the given origin.
func (r Record) Entry(origin Origin) Entry {
	e := Entry{
		ID:        r.ID,
		Name:      r.Name,
		SpriteURL: r.Sprites.FrontDefault,
		Origin:    origin,
	}
	if len(r.Types) > 0 {
		e.Types = make([]string, len(r.Types))
		for i, t := range r.Types {
			e.Types[i] = t.Type.Name
		}
	}
	if len(r.Abilities) > 0 {
		e.Abilities = make([]string, len(r.Abilities))
		for i, a := range r.Abilities {
			e.Abilities[i] = a.Ability.Name
		}
	}
	if len(r.Stats) > 0 {
		e.Stats = make([]Stat, len(r.Stats))
		for i, s := range r.Stats {
			e.Stats[i] = Stat{Name: s.Stat.Name, Value: s.BaseStat}
		}
	}
	return e
}

// RecordOf converts an entry to its wire shape.
func RecordOf(e Entry) Record {
	r := Record{
		ID:      e.ID,
		Name:    e.Name,
		Types:   make([]TypeSlot, len(e.Types)),
		Sprites: Sprites{FrontDefault: e.SpriteURL},
	}
	for i, t := range e.Types {
		r.Types[i] = TypeSlot{Type: NamedRef{Name: t}}
	}
	for _, a := range e.Abilities {
		r.Abilities = append(r.Abilities, AbilitySlot{Ability: NamedRef{Name: a}})
	}
	for _, s := range e.Stats {
		r.Stats = append(r.Stats, StatSlot{Stat: NamedRef{Name: s.Name}, BaseStat: s.Value})
	}
	return r
}

// EncodeEntries encodes entries as a JSON array of records.
func EncodeEntries(entries []Entry) ([]byte, error) {
	records := make([]Record, len(entries))
	for i, e := range entries {
		records[i] = RecordOf(e)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding entries: %w", err)
	}
	return data, nil
}

// DecodeEntries decodes a JSON array of records. Every entry gets origin.
func DecodeEntries(data []byte, origin Origin) ([]Entry, error) {
	if len(data) == 0 {
		return []Entry{}, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding entries: %w", err)
	}
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = r.Entry(origin)
	}
	return entries, nil
}
