package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/google/go-cmp/cmp"
)

var sampleYAML = []byte(`
- id: 1
  name: bulbasaur
  types: [grass, poison]
  sprite: "https://img.example/1.png"
  abilities: [overgrow, chlorophyll]
  stats:
    - name: hp
      value: 45

- id: 7
  name: squirtle
  types: [Water]
  sprite: "https://img.example/7.png"
`)

func sample() []catalog.Entry {
	return []catalog.Entry{
		{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}, SpriteURL: "a"},
		{ID: 7, Name: "squirtle", Types: []string{"water"}, SpriteURL: "b"},
		{ID: 25, Name: "pikachu", Types: []string{"electric"}, SpriteURL: "c"},
		{ID: 1700000000000, Name: "Zemo", Types: []string{"WATER"}, SpriteURL: "d", Origin: catalog.OriginCustom},
	}
}

// --- YAML Parse / Marshal ---

func TestParse_ValidYAML(t *testing.T) {
	entries, err := catalog.Parse(sampleYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "bulbasaur" {
		t.Errorf("entries[0].Name = %q, want %q", entries[0].Name, "bulbasaur")
	}
	if entries[0].Stats[0].Value != 45 {
		t.Errorf("entries[0].Stats[0].Value = %d, want 45", entries[0].Stats[0].Value)
	}
	if !entries[1].IsCustom() {
		t.Error("parsed entries should be tagged custom")
	}
}

func TestParse_Empty(t *testing.T) {
	entries, err := catalog.Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse empty: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := catalog.Parse([]byte(":: bad yaml ["))
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestMarshal_ParseKeepsFields(t *testing.T) {
	entries, err := catalog.Parse(sampleYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := catalog.Marshal(entries)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	if diff := cmp.Diff(entries, again); diff != "" {
		t.Errorf("entries changed after Marshal/Parse (-want +got):\n%s", diff)
	}
}

// --- JSON wire records ---

func TestDecodeEntries_RemoteShape(t *testing.T) {
	data := []byte(`[{
		"id": 25,
		"name": "pikachu",
		"types": [{"slot": 1, "type": {"name": "electric", "url": "https://x/type/13/"}}],
		"sprites": {"front_default": "https://img/25.png", "back_default": null},
		"abilities": [{"ability": {"name": "static"}, "is_hidden": false}],
		"stats": [{"base_stat": 35, "effort": 0, "stat": {"name": "hp"}}]
	}]`)
	entries, err := catalog.DecodeEntries(data, catalog.OriginRemote)
	if err != nil {
		t.Fatalf("DecodeEntries: %v", err)
	}
	want := []catalog.Entry{{
		ID:        25,
		Name:      "pikachu",
		Types:     []string{"electric"},
		SpriteURL: "https://img/25.png",
		Abilities: []string{"static"},
		Stats:     []catalog.Stat{{Name: "hp", Value: 35}},
		Origin:    catalog.OriginRemote,
	}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("DecodeEntries mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecode_CustomEntry(t *testing.T) {
	in := []catalog.Entry{{
		ID:        1700000000000,
		Name:      "Zemo",
		Types:     []string{"Fire"},
		SpriteURL: "http://x/img.png",
		Origin:    catalog.OriginCustom,
	}}
	data, err := catalog.EncodeEntries(in)
	if err != nil {
		t.Fatalf("EncodeEntries: %v", err)
	}
	out, err := catalog.DecodeEntries(data, catalog.OriginCustom)
	if err != nil {
		t.Fatalf("DecodeEntries: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("custom entry changed (-want +got):\n%s", diff)
	}
}

func TestDecodeEntries_Malformed(t *testing.T) {
	if _, err := catalog.DecodeEntries([]byte(`{"not":"a list"}`), catalog.OriginCustom); err == nil {
		t.Error("expected error decoding an object, got nil")
	}
}

func TestDecodeEntries_NullTypeIsIneligible(t *testing.T) {
	data := []byte(`[{"id":1,"name":"x","types":[{"type":null}],"sprites":{"front_default":"u"}}]`)
	entries, err := catalog.DecodeEntries(data, catalog.OriginCustom)
	if err != nil {
		t.Fatalf("DecodeEntries: %v", err)
	}
	if catalog.PersistEligible(entries[0]) {
		t.Error("entry with a null first type should not be persist-eligible")
	}
}

// --- Validation ---

func TestValidateFields(t *testing.T) {
	cases := []struct {
		name  string
		in    catalog.Fields
		field string
	}{
		{"complete", catalog.Fields{Name: "Zemo", Types: []string{"fire"}, SpriteURL: "u"}, ""},
		{"no name", catalog.Fields{Name: "  ", Types: []string{"fire"}, SpriteURL: "u"}, "name"},
		{"no types", catalog.Fields{Name: "Zemo", SpriteURL: "u"}, "type"},
		{"blank first type", catalog.Fields{Name: "Zemo", Types: []string{"", "fire"}, SpriteURL: "u"}, "type"},
		{"no image", catalog.Fields{Name: "Zemo", Types: []string{"fire"}}, "image"},
	}
	for _, c := range cases {
		err := catalog.ValidateFields(c.in)
		if c.field == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", c.name, err)
			}
			continue
		}
		var fe *catalog.FieldError
		if !errors.As(err, &fe) {
			t.Errorf("%s: error = %v, want *FieldError", c.name, err)
			continue
		}
		if fe.Field != c.field {
			t.Errorf("%s: Field = %q, want %q", c.name, fe.Field, c.field)
		}
		if !errors.Is(err, catalog.ErrValidation) {
			t.Errorf("%s: error should wrap ErrValidation", c.name)
		}
	}
}

func TestPartitionEligible(t *testing.T) {
	entries := []catalog.Entry{
		{ID: 1, Name: "ok", Types: []string{"fire"}, SpriteURL: "u"},
		{ID: 2, Name: "", Types: []string{"fire"}, SpriteURL: "u"},
		{ID: 3, Name: "no sprite", Types: []string{"fire"}},
		{ID: 4, Name: "ok too", Types: []string{"water"}, SpriteURL: "u"},
	}
	keep, dropped := catalog.PartitionEligible(entries)
	if len(keep) != 2 || keep[0].ID != 1 || keep[1].ID != 4 {
		t.Errorf("keep = %v, want ids [1 4]", ids(keep))
	}
	if diff := cmp.Diff([]int64{2, 3}, dropped); diff != "" {
		t.Errorf("dropped mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitTypes(t *testing.T) {
	got := catalog.SplitTypes(" fire, ,flying ")
	if diff := cmp.Diff([]string{"fire", "flying"}, got); diff != "" {
		t.Errorf("SplitTypes mismatch (-want +got):\n%s", diff)
	}
}

// --- Filter ---

func TestApplyFilter_AllReturnsInput(t *testing.T) {
	list := sample()
	got := catalog.ApplyFilter(list, catalog.AllTypes)
	if diff := cmp.Diff(list, got); diff != "" {
		t.Errorf("All filter changed list (-want +got):\n%s", diff)
	}
}

func TestApplyFilter_TypeCaseInsensitive(t *testing.T) {
	got := catalog.ApplyFilter(sample(), "water")
	if diff := cmp.Diff([]int64{7, 1700000000000}, ids(got)); diff != "" {
		t.Errorf("water filter mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFilter_SecondaryType(t *testing.T) {
	got := catalog.ApplyFilter(sample(), "Poison")
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("poison filter: got %v", ids(got))
	}
}

func TestApplyFilter_NoMatch(t *testing.T) {
	got := catalog.ApplyFilter(sample(), "dragon")
	if len(got) != 0 {
		t.Errorf("expected 0 results, got %d", len(got))
	}
}

func TestFilter_SearchAndCustomOnly(t *testing.T) {
	f := catalog.Filter{Search: "ZE", CustomOnly: true}
	got := f.Apply(sample())
	if len(got) != 1 || got[0].Name != "Zemo" {
		t.Errorf("search+custom filter: got %v", ids(got))
	}
}

func TestByID_And_ByName(t *testing.T) {
	list := sample()
	if e := catalog.ByID(list, 25); e == nil || e.Name != "pikachu" {
		t.Errorf("ByID(25) = %v", e)
	}
	if e := catalog.ByID(list, 999); e != nil {
		t.Errorf("ByID(999) should be nil, got %v", e)
	}
	if e := catalog.ByName(list, "PIKACHU"); e == nil || e.ID != 25 {
		t.Errorf("ByName(PIKACHU) = %v", e)
	}
}

func TestTypes_DistinctFirstSeen(t *testing.T) {
	got := catalog.Types(sample())
	want := []string{"grass", "poison", "water", "electric"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Types mismatch (-want +got):\n%s", diff)
	}
}

// --- Replace / Remove ---

func TestReplace(t *testing.T) {
	list := sample()
	list, ok := catalog.Replace(list, catalog.Entry{ID: 7, Name: "wartortle", Types: []string{"water"}})
	if !ok {
		t.Fatal("Replace returned ok=false for existing entry")
	}
	if list[1].Name != "wartortle" {
		t.Errorf("Name = %q, want %q", list[1].Name, "wartortle")
	}
	if _, ok := catalog.Replace(list, catalog.Entry{ID: 404}); ok {
		t.Error("Replace returned ok=true for missing entry")
	}
}

func TestRemove(t *testing.T) {
	list, ok := catalog.Remove(sample(), 25)
	if !ok {
		t.Error("Remove returned ok=false for existing entry")
	}
	if len(list) != 3 {
		t.Errorf("expected 3 entries after remove, got %d", len(list))
	}
	if _, ok := catalog.Remove(list, 25); ok {
		t.Error("Remove returned ok=true for missing entry")
	}
}

func TestReplaceRemove_EveryMatchingID(t *testing.T) {
	dup := []catalog.Entry{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 1, Name: "c"}}

	replaced, ok := catalog.Replace(slices.Clone(dup), catalog.Entry{ID: 1, Name: "z"})
	if !ok {
		t.Fatal("Replace returned ok=false")
	}
	if replaced[0].Name != "z" || replaced[2].Name != "z" || replaced[1].Name != "b" {
		t.Errorf("Replace = %+v, want both id 1 entries renamed", replaced)
	}

	removed, ok := catalog.Remove(slices.Clone(dup), 1)
	if !ok {
		t.Fatal("Remove returned ok=false")
	}
	if diff := cmp.Diff([]int64{2}, ids(removed)); diff != "" {
		t.Errorf("Remove ids mismatch (-want +got):\n%s", diff)
	}
}

func ids(entries []catalog.Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestSave_WritesParseableYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.yml")
	if err := catalog.Save(path, sample()[:2]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 || got[1].Name != "squirtle" {
		t.Errorf("unexpected entries after Save/Parse: %+v", got)
	}
}
