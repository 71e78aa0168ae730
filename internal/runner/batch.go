package runner

import (
	"context"
	"sync"

	"github.com/signalsfoundry/footprint-geometry/internal/logging"
	"github.com/signalsfoundry/footprint-geometry/kb"
	"github.com/signalsfoundry/footprint-geometry/model"
	"github.com/signalsfoundry/footprint-geometry/visibility"
)

// StationResult is the outcome for one station of a batch: either every
// point or the error.
type StationResult struct {
	Station *model.Station
	Points  []visibility.Point
	Err     error
}

type stationJob struct {
	index   int
	station *model.Station
}

// Batch projects every station's mask on the worker pool. Results come back
// in input order. Stations not reached before ctx is cancelled carry
// ctx.Err().
func (r *Runner) Batch(ctx context.Context, orbit model.OrbitConfig, stations []*model.Station) []StationResult {
	results := make([]StationResult, len(stations))
	if len(stations) == 0 {
		return results
	}
	for i, st := range stations {
		results[i] = StationResult{Station: st}
	}

	workers := r.workers
	if workers > len(stations) {
		workers = len(stations)
	}

	jobs := make(chan stationJob, workers*2)
	done := make([]bool, len(stations))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				points, err := r.Visibility(ctx, orbit, job.station)
				// Each index is written by exactly one worker.
				results[job.index].Points = points
				results[job.index].Err = err
				done[job.index] = true
			}
		}()
	}

	// Feed jobs until exhausted or cancelled.
feed:
	for i, st := range stations {
		select {
		case jobs <- stationJob{index: i, station: st}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for i := range results {
		if !done[i] {
			results[i].Err = ctx.Err()
		}
		if results[i].Err != nil {
			failed++
		}
	}
	r.logger(ctx).Info(ctx, "visibility batch finished",
		logging.Int("stations", len(stations)),
		logging.Int("failed", failed),
		logging.Int("workers", workers),
	)
	return results
}

// BatchCatalog runs Batch over every station in the catalog, ordered by ID.
func (r *Runner) BatchCatalog(ctx context.Context, orbit model.OrbitConfig, catalog *kb.Catalog) []StationResult {
	r.metrics.SetStations(catalog.Len())
	return r.Batch(ctx, orbit, catalog.ListStations())
}

// WatchCatalog keeps the catalog size gauge current as stations are added.
// The returned function stops watching.
func (r *Runner) WatchCatalog(catalog *kb.Catalog) (stop func()) {
	r.metrics.SetStations(catalog.Len())
	return catalog.Subscribe(func(e kb.Event) {
		r.metrics.SetStations(e.Total)
	})
}
