package export

import (
	"encoding/json"
	"io"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry holds either a Polygon ([][][2]float64) or a LineString
// ([][2]float64) in lon/lat order.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

func lonLatPairs(points []model.LonLat) [][2]float64 {
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = [2]float64{p.Lon, p.Lat}
	}
	return out
}

// NewFootprintFeatures returns the footprint polygon and the ground track as
// GeoJSON features.
func NewFootprintFeatures(name string, fp *model.Footprint) FeatureCollection {
	a := fp.Attitude
	return FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{
			{
				Type: "Feature",
				Properties: map[string]any{
					"name":         name,
					"kind":         "footprint",
					"aperture_deg": a.ApertureDeg,
					"roll_deg":     a.RollDeg,
					"pitch_deg":    a.PitchDeg,
					"yaw_deg":      a.YawDeg,
				},
				Geometry: Geometry{Type: "Polygon", Coordinates: [][][2]float64{lonLatPairs(fp.Polygon)}},
			},
			{
				Type:       "Feature",
				Properties: map[string]any{"name": name, "kind": "ground_track"},
				Geometry:   Geometry{Type: "LineString", Coordinates: lonLatPairs(fp.GroundTrack[:len(fp.GroundTrack)/2])},
			},
		},
	}
}

// NewVisibilityFeatures returns the sub-satellite ring of a station's
// visibility boundary as a closed GeoJSON polygon.
func NewVisibilityFeatures(station *model.Station, points []geometry.Vec3) FeatureCollection {
	ring := make([]model.LonLat, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, model.ToLonLat(p))
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{{
			Type: "Feature",
			Properties: map[string]any{
				"station_id": station.ID,
				"name":       station.Name,
				"kind":       "visibility_mask",
				"lat_deg":    station.LatDeg,
				"lon_deg":    station.LonDeg,
			},
			Geometry: Geometry{Type: "Polygon", Coordinates: [][][2]float64{lonLatPairs(ring)}},
		}},
	}
}

// WriteFeatures encodes fc as indented JSON.
func WriteFeatures(w io.Writer, fc FeatureCollection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
