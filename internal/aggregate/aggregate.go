// Package aggregate merges the remote catalogue with the custom entries.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/logging"
	"github.com/blackwell-systems/dexctl/internal/pokeapi"
)

// Source is the remote catalogue.
type Source interface {
	ListPage(ctx context.Context, limit int) ([]pokeapi.Summary, error)
	Detail(ctx context.Context, url string) (catalog.Entry, error)
}

// CustomSource supplies the current custom entries.
type CustomSource interface {
	List() []catalog.Entry
}

// FetchError reports the request that made a refresh fail.
type FetchError struct {
	Op  string // "list" or "detail"
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("catalogue %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("catalogue %s %s failed: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ProgressFunc is called after each detail request completes. Calls are
// serialized.
type ProgressFunc func(done, total int)

// Aggregator builds the displayed list.
type Aggregator struct {
	src         Source
	custom      CustomSource
	concurrency int
	log         *slog.Logger
	progress    ProgressFunc
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithConcurrency bounds in-flight detail requests; n <= 0 is unbounded.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) { a.concurrency = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) { a.log = l }
}

func WithProgress(fn ProgressFunc) Option {
	return func(a *Aggregator) { a.progress = fn }
}

func New(src Source, custom CustomSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		src:    src,
		custom: custom,
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Refresh lists up to pageSize remote summaries, fetches every detail
// concurrently and appends the custom entries. The first failed request
// cancels the others and fails the whole refresh; no partial list is
// returned.
func (a *Aggregator) Refresh(ctx context.Context, pageSize int) ([]catalog.Entry, error) {
	start := time.Now()
	summaries, err := a.src.ListPage(ctx, pageSize)
	if err != nil {
		a.log.Warn("catalogue list failed", "err", err)
		return nil, &FetchError{Op: "list", Err: err}
	}

	remote := make([]catalog.Entry, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}

	var (
		mu   sync.Mutex
		done int
	)
	for i, s := range summaries {
		g.Go(func() error {
			e, err := a.src.Detail(gctx, s.URL)
			if err != nil {
				return &FetchError{Op: "detail", URL: s.URL, Err: err}
			}
			remote[i] = e

			if a.progress != nil {
				mu.Lock()
				done++
				a.progress(done, len(summaries))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.log.Warn("catalogue refresh failed", "err", err)
		return nil, err
	}

	custom := a.custom.List()
	a.log.Debug("catalogue refreshed",
		"remote", len(remote), "custom", len(custom), "took", time.Since(start))
	return append(remote, custom...), nil
}

// ApplyFilter keeps entries of the given type; "All" keeps everything.
func (a *Aggregator) ApplyFilter(list []catalog.Entry, typeName string) []catalog.Entry {
	return catalog.ApplyFilter(list, typeName)
}

// Types lists the distinct types present in list, for the type picker.
func (a *Aggregator) Types(list []catalog.Entry) []string {
	return catalog.Types(list)
}
