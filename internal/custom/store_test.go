package custom_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/custom"
	"github.com/blackwell-systems/dexctl/internal/kv"
)

// stepClock returns t0, t0+1ms, t0+2ms, ...
func stepClock(t0 time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		now := t0.Add(time.Duration(n) * time.Millisecond)
		n++
		return now
	}
}

var t0 = time.UnixMilli(1700000000000)

func newStore(store kv.Store) *custom.Store {
	return custom.New(store, custom.WithClock(stepClock(t0)))
}

func fields(name, typ, sprite string) catalog.Fields {
	return catalog.Fields{Name: name, Types: []string{typ}, SpriteURL: sprite}
}

func TestAdd_ThenList(t *testing.T) {
	s := newStore(kv.NewMemory())
	ctx := context.Background()

	e := s.Add(ctx, fields("Zemo", "Fire", "http://x/img.png"))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, int64(1700000000000), e.ID)
	assert.Equal(t, e, list[0])
	assert.Equal(t, "Zemo", list[0].Name)
	assert.True(t, list[0].IsCustom())
}

func TestAdd_IDsAreDistinctWithinOneMillisecond(t *testing.T) {
	s := custom.New(kv.NewMemory(), custom.WithClock(func() time.Time { return t0 }))
	ctx := context.Background()

	a := s.Add(ctx, fields("a", "fire", "u"))
	b := s.Add(ctx, fields("b", "fire", "u"))
	assert.NotEqual(t, a.ID, b.ID)
	assert.Greater(t, b.ID, a.ID)
}

func TestEdit_KeepsIDAndSize(t *testing.T) {
	s := newStore(kv.NewMemory())
	ctx := context.Background()
	e := s.Add(ctx, fields("Zemo", "Fire", "u"))
	s.Add(ctx, fields("Other", "water", "u"))

	ok := s.Edit(ctx, e.ID, fields("Zemok", "Fire", "u"))
	require.True(t, ok)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, e.ID, list[0].ID)
	assert.Equal(t, "Zemok", list[0].Name)
}

func TestEdit_UnknownIDLeavesCollection(t *testing.T) {
	s := newStore(kv.NewMemory())
	ctx := context.Background()
	s.Add(ctx, fields("Zemo", "Fire", "u"))
	before := s.List()

	ok := s.Edit(ctx, 42, fields("Ghost", "ghost", "u"))
	assert.False(t, ok)
	if diff := cmp.Diff(before, s.List()); diff != "" {
		t.Errorf("collection changed (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	s := newStore(kv.NewMemory())
	ctx := context.Background()
	a := s.Add(ctx, fields("a", "fire", "u"))
	b := s.Add(ctx, fields("b", "water", "u"))

	assert.False(t, s.Delete(ctx, 42))
	assert.Len(t, s.List(), 2)

	assert.True(t, s.Delete(ctx, a.ID))
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestClear_RemovesKey(t *testing.T) {
	store := kv.NewMemory()
	s := newStore(store)
	ctx := context.Background()
	s.Add(ctx, fields("a", "fire", "u"))

	s.Clear(ctx)
	assert.Empty(t, s.List())

	_, ok, err := store.Get(ctx, kv.KeyCustom)
	require.NoError(t, err)
	assert.False(t, ok, "clear must remove the key, not write an empty list")

	reloaded := newStore(store)
	reloaded.Load(ctx)
	assert.Empty(t, reloaded.List())
}

func TestClear_RemoveFailureStillClearsMemory(t *testing.T) {
	store := kv.NewMemory()
	s := newStore(store)
	ctx := context.Background()
	s.Add(ctx, fields("a", "fire", "u"))

	store.FailNext("remove", errors.New("locked"))
	s.Clear(ctx)
	assert.Empty(t, s.List())
}

func TestReload_EligibleEntrySurvives(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	s := newStore(store)
	e := s.Add(ctx, catalog.Fields{
		Name:      "Zemo",
		Types:     []string{"Fire", "Flying"},
		SpriteURL: "http://x/img.png",
		Abilities: []string{"blaze"},
		Stats:     []catalog.Stat{{Name: "hp", Value: 50}},
	})

	reloaded := newStore(store)
	reloaded.Load(ctx)
	if diff := cmp.Diff([]catalog.Entry{e}, reloaded.List()); diff != "" {
		t.Errorf("reloaded entries differ (-want +got):\n%s", diff)
	}
}

func TestReload_IneligibleEntryDropped(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	s := newStore(store)
	good := s.Add(ctx, fields("Zemo", "Fire", "u"))
	bad := s.Add(ctx, fields("NoSprite", "Fire", ""))

	assert.Len(t, s.List(), 2, "ineligible entry stays in memory")
	assert.Equal(t, []int64{bad.ID}, s.Unsaved())

	reloaded := newStore(store)
	reloaded.Load(ctx)
	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, good.ID, list[0].ID)
}

func TestReload_EmptyAbilitiesAndStatsRoundTrip(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	s := newStore(store)
	e := s.Add(ctx, catalog.Fields{
		Name:      "Zemo",
		Types:     []string{"Fire"},
		SpriteURL: "u",
		Abilities: []string{},
		Stats:     []catalog.Stat{},
	})

	reloaded := newStore(store)
	reloaded.Load(ctx)
	if diff := cmp.Diff([]catalog.Entry{e}, reloaded.List()); diff != "" {
		t.Errorf("reloaded entries differ (-want +got):\n%s", diff)
	}
}

const duplicateIDs = `[
	{"id":1,"name":"a","types":[{"type":{"name":"fire"}}],"sprites":{"front_default":"u"}},
	{"id":1,"name":"b","types":[{"type":{"name":"water"}}],"sprites":{"front_default":"u"}},
	{"id":2,"name":"c","types":[{"type":{"name":"grass"}}],"sprites":{"front_default":"u"}}
]`

func TestDuplicateIDs_DeleteRemovesEveryMatch(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeyCustom, duplicateIDs))

	s := newStore(store)
	s.Load(ctx)
	require.Len(t, s.List(), 3)

	assert.True(t, s.Delete(ctx, 1))
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "c", list[0].Name)
}

func TestDuplicateIDs_EditChangesEveryMatch(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeyCustom, duplicateIDs))

	s := newStore(store)
	s.Load(ctx)

	assert.True(t, s.Edit(ctx, 1, fields("z", "dragon", "u")))
	var names []string
	for _, e := range s.List() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"z", "z", "c"}, names)
}

func TestLoad_MalformedRecordYieldsEmpty(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kv.KeyCustom, `{"oops":`))

	s := newStore(store)
	s.Load(ctx)
	assert.Empty(t, s.List())
}

func TestLoad_StorageErrorYieldsEmpty(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	newStore(store).Add(ctx, fields("a", "fire", "u"))

	store.FailNext("get", errors.New("io"))
	s := newStore(store)
	s.Load(ctx)
	assert.Empty(t, s.List())
}

func TestPersistFailure_MemoryStaysAuthoritative(t *testing.T) {
	store := kv.NewMemory()
	s := newStore(store)
	ctx := context.Background()

	store.FailNext("set", errors.New("quota"))
	e := s.Add(ctx, fields("a", "fire", "u"))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, e.ID, list[0].ID)
}

func TestScenario_AddEditDelete(t *testing.T) {
	store := kv.NewMemory()
	s := newStore(store)
	ctx := context.Background()

	e := s.Add(ctx, fields("Zemo", "Fire", "http://x/img.png"))
	require.Len(t, s.List(), 1)

	require.True(t, s.Edit(ctx, e.ID, fields("Zemok", "Fire", "http://x/img.png")))
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Zemok", list[0].Name)
	assert.Equal(t, e.ID, list[0].ID)

	require.True(t, s.Delete(ctx, e.ID))
	assert.Empty(t, s.List())

	raw, ok, err := store.Get(ctx, kv.KeyCustom)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestListIsACopy(t *testing.T) {
	s := newStore(kv.NewMemory())
	ctx := context.Background()
	s.Add(ctx, fields("a", "fire", "u"))

	list := s.List()
	list[0].Name = "mutated"
	assert.Equal(t, "a", s.List()[0].Name)
}

func TestSubscribe(t *testing.T) {
	s := newStore(kv.NewMemory())
	ctx := context.Background()

	var sizes []int
	cancel := s.Subscribe(func(entries []catalog.Entry) { sizes = append(sizes, len(entries)) })

	e := s.Add(ctx, fields("a", "fire", "u"))
	s.Add(ctx, fields("b", "fire", "u"))
	s.Delete(ctx, e.ID)
	s.Clear(ctx)
	cancel()
	s.Add(ctx, fields("c", "fire", "u"))

	assert.Equal(t, []int{1, 2, 1, 0}, sizes)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newStore(kv.NewMemory())
	src.Add(ctx, fields("Zemo", "Fire", "u1"))
	src.Add(ctx, fields("Zemok", "Water", "u2"))

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	dst := custom.New(kv.NewMemory(), custom.WithClock(stepClock(t0.Add(time.Hour))))
	added, err := dst.Import(ctx, &buf)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "Zemo", added[0].Name)
	assert.NotEqual(t, src.List()[0].ID, added[0].ID, "imported entries get fresh ids")
	assert.Len(t, dst.List(), 2)
}

func TestImport_InvalidEntryAbortsAll(t *testing.T) {
	ctx := context.Background()
	s := newStore(kv.NewMemory())
	in := strings.NewReader(`
- name: ok
  types: [fire]
  sprite: u
- name: broken
  types: [fire]
`)
	_, err := s.Import(ctx, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrValidation)
	assert.Empty(t, s.List())
}
