// Package tags fills in missing genre tags for dataset rows from Last.fm.
package tags

import (
	"context"
	"strings"
	"sync"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// Default concurrency for batch processing.
const DefaultConcurrency = 5

// TagFetcher abstracts the Last.fm client for testing.
type TagFetcher interface {
	TopTag(ctx context.Context, artist, track string) (string, bool, error)
}

// Result summarises an enrichment pass.
type Result struct {
	Filled  int // rows that received a genre
	Missing int // rows Last.fm had no tags for
	Failed  int // rows whose lookup errored
}

// Enricher looks up genres for rows that lack one.
type Enricher struct {
	fetcher     TagFetcher
	concurrency int
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithConcurrency sets the number of concurrent lookups.
func WithConcurrency(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEnricher creates an Enricher.
func NewEnricher(fetcher TagFetcher, opts ...Option) *Enricher {
	e := &Enricher{
		fetcher:     fetcher,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FillGenres sets the "top genre" column of every row that has a title and
// artist but no genre to the track's top Last.fm tag. Lookups run on a
// bounded worker pool; a failed lookup leaves its row untouched and is
// counted rather than failing the batch. Rows are updated in place.
func (e *Enricher) FillGenres(ctx context.Context, rows []song.Row) (Result, error) {
	type workItem struct {
		index  int
		artist string
		title  string
	}
	type outcome struct {
		tag string
		ok  bool
		err error
	}

	var work []workItem
	for i, row := range rows {
		artist := strings.TrimSpace(row[song.ColArtist])
		title := strings.TrimSpace(row[song.ColTitle])
		if strings.TrimSpace(row[song.ColGenre]) != "" || artist == "" || title == "" {
			continue
		}
		work = append(work, workItem{index: i, artist: artist, title: title})
	}
	if len(work) == 0 {
		return Result{}, nil
	}

	outcomes := make([]outcome, len(work))
	workCh := make(chan int, len(work))
	for i := range work {
		workCh <- i
	}
	close(workCh)

	var wg sync.WaitGroup
	for range min(e.concurrency, len(work)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				if err := ctx.Err(); err != nil {
					outcomes[i] = outcome{err: err}
					continue
				}
				tag, ok, err := e.fetcher.TopTag(ctx, work[i].artist, work[i].title)
				outcomes[i] = outcome{tag: tag, ok: ok, err: err}
			}
		}()
	}
	wg.Wait()

	var res Result
	for i, o := range outcomes {
		switch {
		case o.err != nil:
			res.Failed++
		case !o.ok:
			res.Missing++
		default:
			rows[work[i].index][song.ColGenre] = o.tag
			res.Filled++
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}
