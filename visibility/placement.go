package visibility

import (
	"fmt"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

// Placement carries vectors from a station's topocentric frame (x north,
// y west, z up) into the Earth-fixed frame:
//
//  1. rotate 180° about Z,
//  2. rotate 90° about Y, which leaves the local vertical on +X and north on +Z,
//  3. rotate by the station longitude about the polar axis,
//  4. rotate by -latitude about the eastward axis R_z(90°)·R_z(lon)·x̂,
//  5. translate by the station position.
//
// Stages 3 and 4 depend only on the station, so a Placement is built once per
// station and reused for every mask point of one computation.
type Placement struct {
	origin geometry.Vec3
	stages geometry.Sequence
}

// NewPlacement builds the placement pipeline for station.
func NewPlacement(station *model.Station) (*Placement, error) {
	if station == nil {
		return nil, geometry.InvalidInput("station", "is nil")
	}

	flip := geometry.MustRotation(geometry.AxisZ, 180)
	tilt := geometry.MustRotation(geometry.AxisY, 90)

	lon, err := geometry.NewRotation(geometry.AxisZ, station.LonDeg)
	if err != nil {
		return nil, fmt.Errorf("longitude stage: %w", err)
	}
	east := geometry.MustRotation(geometry.AxisZ, 90).Apply(lon.Apply(geometry.AxisX))
	// A positive right-hand turn about east tilts the vertical toward the
	// south, so northern latitudes need a negative angle.
	lat, err := geometry.NewRotation(east, -station.LatDeg)
	if err != nil {
		return nil, fmt.Errorf("latitude stage: %w", err)
	}

	return &Placement{
		origin: station.Position,
		stages: geometry.Sequence{flip, tilt, lon, lat},
	}, nil
}

// Stages returns a copy of the four rotation stages in application order.
func (p *Placement) Stages() geometry.Sequence {
	return append(geometry.Sequence(nil), p.stages...)
}

// Origin is the translation applied after the rotations.
func (p *Placement) Origin() geometry.Vec3 { return p.origin }

// Orient rotates a topocentric direction into the Earth-fixed frame without
// translating it.
func (p *Placement) Orient(v geometry.Vec3) geometry.Vec3 {
	return p.stages.Apply(v)
}

// Place maps a topocentric point to an absolute Earth-fixed position.
func (p *Placement) Place(v geometry.Vec3) geometry.Vec3 {
	return p.Orient(v).Add(p.origin)
}
