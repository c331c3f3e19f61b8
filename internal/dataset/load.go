package dataset

import (
	"context"
	"time"

	"github.com/jengzang/solarmap-backend-go/internal/logging"
)

// Options locates both sources and tunes the merge
type Options struct {
	TabularPath  string
	GeoPath      string
	Sheet        string
	Table        string
	IDColumn     string
	DefaultZoom  float64
	SelectedZoom float64
	MapStyle     string
}

// Load reads both sources and merges them. Any error is fatal for the caller:
// the process must not serve a partial table.
func Load(ctx context.Context, opts Options) (*Base, error) {
	start := time.Now()

	rows, err := LoadTabular(ctx, TabularOptions{
		Path:     opts.TabularPath,
		Sheet:    opts.Sheet,
		Table:    opts.Table,
		IDColumn: opts.IDColumn,
	})
	if err != nil {
		return nil, err
	}

	boundaries, err := LoadBoundaries(opts.GeoPath, opts.IDColumn)
	if err != nil {
		return nil, err
	}
	if boundaries.CRS != "" {
		logging.Debug().Str("crs", boundaries.CRS).Msg("Boundary CRS declared")
	}

	base, err := Merge(rows, boundaries, MergeOptions{
		DefaultZoom:  opts.DefaultZoom,
		SelectedZoom: opts.SelectedZoom,
		MapStyle:     opts.MapStyle,
	})
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("rows", len(rows)).
		Int("boundaries", len(boundaries.Features)).
		Int("parcels", base.Len()).
		Int("neighborhoods", len(base.Neighborhoods)).
		Dur("elapsed", time.Since(start)).
		Msg("Dataset loaded")
	return base, nil
}
