// Package footprint computes the ground swath of a nadir-referenced
// instrument along a satellite track.
//
// For every track point the nadir subpoint is shifted along track by the pitch
// correction, then rotated across track by the roll corrections of the two
// swath edges. All shifts are Earth-centre angles obtained from the law of
// sines, so the edges stay on the reference sphere.
package footprint

import (
	"fmt"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

// MinTrackPoints is the shortest track that defines an along-track direction.
const MinTrackPoints = 2

// corrections holds the Earth-centre angles for one attitude. They depend only
// on the attitude and the orbit, so they are computed once per footprint.
type corrections struct {
	pitch  float64
	center float64
	right  float64
	left   float64
}

func newCorrections(orbit model.OrbitConfig, att model.Attitude) (corrections, error) {
	var c corrections
	var err error
	a := orbit.SemimajorKm
	if att.PitchDeg != 0 {
		if c.pitch, err = geometry.CentralAngle("pitch correction", att.PitchDeg, a); err != nil {
			return c, err
		}
	}
	if c.center, err = geometry.CentralAngle("roll correction", att.RollDeg, a); err != nil {
		return c, err
	}
	if c.right, err = geometry.CentralAngle("right edge correction", att.RollDeg-att.ApertureDeg, a); err != nil {
		return c, err
	}
	if c.left, err = geometry.CentralAngle("left edge correction", att.RollDeg+att.ApertureDeg, a); err != nil {
		return c, err
	}
	return c, nil
}

// Project computes the footprint of an instrument with attitude att along
// track. The track needs at least MinTrackPoints samples; the orbit's
// semimajor axis must exceed geometry.EarthRadiusKm.
func Project(orbit model.OrbitConfig, track []model.TrackPoint, att model.Attitude) (*model.Footprint, error) {
	if err := orbit.Validate(); err != nil {
		return nil, err
	}
	if orbit.SemimajorKm <= geometry.EarthRadiusKm {
		return nil, geometry.InvalidInput("orbit.semimajor_km", "must exceed the Earth radius %v, got %v", geometry.EarthRadiusKm, orbit.SemimajorKm)
	}
	if err := att.Validate(); err != nil {
		return nil, err
	}
	if len(track) < MinTrackPoints {
		return nil, geometry.InvalidInput("track", "needs at least %d points, got %d", MinTrackPoints, len(track))
	}
	for i, tp := range track {
		if !tp.Position.IsFinite() || tp.Position.Norm() == 0 {
			return nil, geometry.InvalidInput("track", "point %d has an unusable position %+v", i, tp.Position)
		}
	}

	corr, err := newCorrections(orbit, att)
	if err != nil {
		return nil, err
	}

	samples := make([]model.FootprintSample, len(track))
	for i := range track {
		s, err := sampleAt(track, i, att, corr)
		if err != nil {
			return nil, fmt.Errorf("track point %d: %w", i, err)
		}
		samples[i] = s
	}

	return &model.Footprint{
		Attitude:    att,
		Orbit:       orbit,
		Polygon:     Polygon(samples),
		GroundTrack: GroundTrack(samples),
		Samples:     samples,
	}, nil
}

// PitchAxis returns the along-track rotation axis at track index i: the
// normal of the plane through the Earth's centre and the neighbouring
// samples. The last point reuses its predecessor with the sign flipped so
// the normal keeps the same orientation along the whole track.
func PitchAxis(track []model.TrackPoint, i int) (geometry.Vec3, error) {
	if i < 0 || i >= len(track) || len(track) < MinTrackPoints {
		return geometry.Vec3{}, geometry.InvalidInput("track", "index %d out of range for %d points", i, len(track))
	}
	p := track[i].Position
	var n geometry.Vec3
	var q geometry.Vec3
	if i < len(track)-1 {
		q = track[i+1].Position
		n = p.Cross(q)
	} else {
		q = track[i-1].Position
		n = p.Cross(q).Scale(-1)
	}
	// Scale-free test: |p×q| = |p||q|sin(angle).
	if !n.IsFinite() || n.Norm() < geometry.AxisTolerance*p.Norm()*q.Norm() {
		return geometry.Vec3{}, &geometry.DegenerateAxisError{
			Context: fmt.Sprintf("pitch axis at track point %d (consecutive positions are collinear)", i),
			Axis:    n,
		}
	}
	return n, nil
}

func sampleAt(track []model.TrackPoint, i int, att model.Attitude, corr corrections) (model.FootprintSample, error) {
	sat := track[i].Position
	nadir := geometry.SurfacePoint(sat)

	n, err := PitchAxis(track, i)
	if err != nil {
		return model.FootprintSample{}, err
	}

	shifted := nadir
	rollAxis := sat.Cross(n)
	if att.PitchDeg != 0 {
		pitch, err := geometry.NewRotation(n, corr.pitch)
		if err != nil {
			return model.FootprintSample{}, fmt.Errorf("pitch rotation: %w", err)
		}
		shifted = pitch.Apply(nadir)
		rollAxis = shifted.Cross(n)
	}

	var out [3]geometry.Vec3
	for k, angle := range [3]float64{corr.center, corr.right, corr.left} {
		r, err := geometry.NewRotation(rollAxis, angle)
		if err != nil {
			return model.FootprintSample{}, fmt.Errorf("roll rotation: %w", err)
		}
		out[k] = r.Apply(shifted)
	}

	if att.YawDeg != 0 {
		yaw, err := geometry.NewRotation(sat, att.YawDeg)
		if err != nil {
			return model.FootprintSample{}, fmt.Errorf("yaw rotation: %w", err)
		}
		for k := range out {
			out[k] = yaw.Apply(out[k])
		}
	}
	center, right, left := out[0], out[1], out[2]

	return model.FootprintSample{
		Time:         track[i].Time,
		Nadir:        nadir,
		PitchShifted: shifted,
		Center:       center,
		Right:        right,
		Left:         left,
		NadirLonLat:  model.ToLonLat(nadir),
		CenterLonLat: model.ToLonLat(center),
		RightLonLat:  model.ToLonLat(right),
		LeftLonLat:   model.ToLonLat(left),
	}, nil
}
