package dataset

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/justestif/go-workout-music-explorer/internal/config"
	"github.com/justestif/go-workout-music-explorer/internal/song"
	"github.com/justestif/go-workout-music-explorer/internal/tags"
)

var (
	ErrUnknownDataset = errors.New("unknown dataset")
	ErrUnknownSource  = errors.New("dataset source not available")
)

// Dataset is one selectable entry of the catalog.
type Dataset struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Source   string `json:"source"`
	Location string `json:"location"`
}

// GenreFiller fills in missing genre columns in place.
type GenreFiller interface {
	FillGenres(ctx context.Context, rows []song.Row) (tags.Result, error)
}

// Catalog resolves dataset IDs to rows through the registered sources.
type Catalog struct {
	datasets []Dataset
	byID     map[string]Dataset
	sources  map[string]Source
	genres   GenreFiller
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithSource registers the source used for datasets of the given kind.
func WithSource(kind string, src Source) CatalogOption {
	return func(c *Catalog) {
		c.sources[kind] = src
	}
}

// WithGenreFiller enables genre enrichment of every loaded dataset.
func WithGenreFiller(g GenreFiller) CatalogOption {
	return func(c *Catalog) {
		c.genres = g
	}
}

// NewCatalog creates a catalog over the configured datasets, keeping their
// configured order.
func NewCatalog(cfgs []config.DatasetConfig, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		datasets: make([]Dataset, 0, len(cfgs)),
		byID:     make(map[string]Dataset, len(cfgs)),
		sources:  make(map[string]Source),
	}
	for _, d := range cfgs {
		ds := Dataset{ID: d.ID, Label: d.Label, Source: d.Source, Location: d.Location}
		c.datasets = append(c.datasets, ds)
		c.byID[ds.ID] = ds
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns every dataset in configured order.
func (c *Catalog) List() []Dataset {
	out := make([]Dataset, len(c.datasets))
	copy(out, c.datasets)
	return out
}

// Get looks up a dataset by ID.
func (c *Catalog) Get(id string) (Dataset, error) {
	ds, ok := c.byID[id]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %q", ErrUnknownDataset, id)
	}
	return ds, nil
}

// Rows fetches a dataset's rows. When a genre filler is configured, rows
// with an empty genre are enriched first; enrichment failures other than
// cancellation are logged and the rows are returned as fetched.
func (c *Catalog) Rows(ctx context.Context, id string) ([]song.Row, error) {
	ds, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	src, ok := c.sources[ds.Source]
	if !ok {
		return nil, fmt.Errorf("%w: %s (dataset %q)", ErrUnknownSource, ds.Source, id)
	}

	rows, err := src.Rows(ctx, ds.Location)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %q: %w", id, err)
	}

	if c.genres != nil {
		res, err := c.genres.FillGenres(ctx, rows)
		if err != nil && ctx.Err() != nil {
			return nil, err
		}
		if err != nil {
			log.Printf("Genre enrichment for %q failed: %v", id, err)
		} else if res.Filled+res.Missing+res.Failed > 0 {
			log.Printf("Genre enrichment for %q: %d filled, %d without tags, %d failed",
				id, res.Filled, res.Missing, res.Failed)
		}
	}
	return rows, nil
}
