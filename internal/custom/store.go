// Package custom owns the locally created catalogue entries.
//
// Every mutation changes the in-memory collection first and then replaces
// the persisted snapshot in full. Storage failures are logged and never
// returned: memory stays the source of truth for the running process.
package custom

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/kv"
	"github.com/blackwell-systems/dexctl/internal/logging"
	"github.com/blackwell-systems/dexctl/internal/notify"
)

// Store is the custom entry collection.
type Store struct {
	kv  kv.Store
	log *slog.Logger
	now func() time.Time

	mu      sync.Mutex
	entries []catalog.Entry
	unsaved []int64
	changes notify.Broadcaster[[]catalog.Entry]
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for storage warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock replaces time.Now for id assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty Store over store. Call Load to read the
// persisted collection.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:      store,
		log:     logging.Discard(),
		now:     time.Now,
		entries: []catalog.Entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the persisted one. An absent,
// unreadable or undecodable record leaves the collection empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.entries = s.read(ctx)
	s.unsaved = nil
	s.mu.Unlock()
	s.publish()
}

func (s *Store) read(ctx context.Context) []catalog.Entry {
	raw, ok, err := s.kv.Get(ctx, kv.KeyCustom)
	if err != nil {
		s.log.Warn("loading custom entries", "key", kv.KeyCustom, "err", err)
		return []catalog.Entry{}
	}
	if !ok {
		return []catalog.Entry{}
	}
	entries, err := catalog.DecodeEntries([]byte(raw), catalog.OriginCustom)
	if err != nil {
		s.log.Warn("discarding unreadable custom entries", "key", kv.KeyCustom, "err", err)
		return []catalog.Entry{}
	}
	return entries
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []catalog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Get returns the entry with the given id.
func (s *Store) Get(id int64) (catalog.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := catalog.ByID(s.entries, id); e != nil {
		return *e, true
	}
	return catalog.Entry{}, false
}

// Add appends a new entry built from f and returns it. The id is the
// clock in Unix milliseconds, bumped past the largest existing id so two
// adds within one millisecond stay distinct.
func (s *Store) Add(ctx context.Context, f catalog.Fields) catalog.Entry {
	s.mu.Lock()
	e := cloneFields(f).Entry(s.nextID(), catalog.OriginCustom)
	s.entries = append(s.entries, e)
	s.persist(ctx)
	s.mu.Unlock()

	s.log.Info("custom entry added", "id", e.ID, "name", e.Name)
	s.publish()
	return e
}

// Edit replaces the fields of every entry with id and reports whether one
// existed. The snapshot is persisted either way.
func (s *Store) Edit(ctx context.Context, id int64, f catalog.Fields) bool {
	s.mu.Lock()
	var found bool
	s.entries, found = catalog.Replace(s.entries, cloneFields(f).Entry(id, catalog.OriginCustom))
	s.persist(ctx)
	s.mu.Unlock()

	if found {
		s.log.Info("custom entry edited", "id", id)
	}
	s.publish()
	return found
}

// Delete removes every entry with id and reports whether one existed. The
// snapshot is persisted either way.
func (s *Store) Delete(ctx context.Context, id int64) bool {
	s.mu.Lock()
	var found bool
	s.entries, found = catalog.Remove(s.entries, id)
	s.persist(ctx)
	s.mu.Unlock()

	if found {
		s.log.Info("custom entry deleted", "id", id)
	}
	s.publish()
	return found
}

// Clear empties the collection and deletes the persisted record.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.entries = []catalog.Entry{}
	s.unsaved = nil
	if err := s.kv.Remove(ctx, kv.KeyCustom); err != nil {
		s.log.Warn("removing custom entries", "key", kv.KeyCustom, "err", err)
	}
	s.mu.Unlock()

	s.log.Info("custom entries cleared")
	s.publish()
}

// Unsaved returns the ids of entries kept in memory but left out of the
// last write because they were incomplete. They will be gone on reload.
func (s *Store) Unsaved() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.unsaved)
}

// Subscribe registers fn to receive the collection after every change.
func (s *Store) Subscribe(fn func([]catalog.Entry)) (cancel func()) {
	return s.changes.Subscribe(fn)
}

// Export writes the collection as YAML.
func (s *Store) Export(w io.Writer) error {
	data, err := catalog.Marshal(s.List())
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Import reads YAML entries from r and adds them with fresh ids. Every
// entry is validated first; one invalid entry aborts the whole import
// without changing the collection.
func (s *Store) Import(ctx context.Context, r io.Reader) ([]catalog.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}
	parsed, err := catalog.Parse(data)
	if err != nil {
		return nil, err
	}
	for i, e := range parsed {
		if err := catalog.ValidateFields(e.Fields()); err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i+1, e.Name, err)
		}
	}

	s.mu.Lock()
	added := make([]catalog.Entry, 0, len(parsed))
	for _, e := range parsed {
		n := cloneFields(e.Fields()).Entry(s.nextID(), catalog.OriginCustom)
		s.entries = append(s.entries, n)
		added = append(added, n)
	}
	s.persist(ctx)
	s.mu.Unlock()

	s.log.Info("custom entries imported", "count", len(added))
	s.publish()
	return added, nil
}

// nextID requires s.mu.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	for _, e := range s.entries {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	return id
}

// persist writes the persist-eligible part of the collection; s.mu must
// be held.
func (s *Store) persist(ctx context.Context) {
	keep, dropped := catalog.PartitionEligible(s.entries)
	for _, id := range dropped {
		s.log.Warn("incomplete custom entry not saved", "id", id)
	}
	s.unsaved = dropped

	data, err := catalog.EncodeEntries(keep)
	if err != nil {
		s.log.Error("encoding custom entries", "err", err)
		return
	}
	if err := s.kv.Set(ctx, kv.KeyCustom, string(data)); err != nil {
		s.log.Warn("persisting custom entries", "key", kv.KeyCustom, "err", err)
	}
}

func (s *Store) publish() {
	s.changes.Publish(s.List())
}

// cloneFields copies the slices of f. Empty slices become nil, which is
// how they decode after a reload.
func cloneFields(f catalog.Fields) catalog.Fields {
	f.Types = cloneOrNil(f.Types)
	f.Abilities = cloneOrNil(f.Abilities)
	f.Stats = cloneOrNil(f.Stats)
	return f
}

func cloneOrNil[S ~[]E, E any](s S) S {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}
