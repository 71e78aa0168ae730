// Package ephemeris supplies time-tagged Earth-fixed satellite positions for
// footprint ground tracks.
package ephemeris

import (
	"fmt"
	"time"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

// Provider returns the Earth-fixed satellite position (km) at a given time.
type Provider interface {
	PositionAt(t time.Time) (geometry.Vec3, error)
}

// Track samples p at each of times and returns the positions as a ground
// track in the same order.
func Track(p Provider, times []time.Time) ([]model.TrackPoint, error) {
	out := make([]model.TrackPoint, 0, len(times))
	for i, t := range times {
		pos, err := p.PositionAt(t)
		if err != nil {
			return nil, fmt.Errorf("sample %d at %s: %w", i, t.Format(time.RFC3339), err)
		}
		out = append(out, model.TrackPoint{Position: pos, Time: t})
	}
	return out, nil
}
