package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

// Packet is one CZML packet. Only the properties this package emits are
// modelled.
type Packet struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Version      string    `json:"version,omitempty"`
	Availability string    `json:"availability,omitempty"`
	Position     *Position `json:"position,omitempty"`
	Polygon      *Polygon  `json:"polygon,omitempty"`
	Polyline     *Polyline `json:"polyline,omitempty"`
}

// Position is a sampled Earth-fixed position: cartesian holds
// [seconds since epoch, x, y, z, ...] in metres.
type Position struct {
	Epoch               string    `json:"epoch,omitempty"`
	ReferenceFrame      string    `json:"referenceFrame,omitempty"`
	Cartesian           []float64 `json:"cartesian,omitempty"`
	CartographicDegrees []float64 `json:"cartographicDegrees,omitempty"`
}

type Polygon struct {
	Positions Position  `json:"positions"`
	Material  *Material `json:"material,omitempty"`
	Outline   bool      `json:"outline,omitempty"`
}

type Polyline struct {
	Positions Position  `json:"positions"`
	Width     float64   `json:"width,omitempty"`
	Material  *Material `json:"material,omitempty"`
}

type Material struct {
	SolidColor struct {
		Color struct {
			RGBA [4]int `json:"rgba"`
		} `json:"color"`
	} `json:"solidColor"`
}

func solid(r, g, b, a int) *Material {
	m := &Material{}
	m.SolidColor.Color.RGBA = [4]int{r, g, b, a}
	return m
}

func documentPacket(name string) Packet {
	return Packet{ID: "document", Name: name, Version: "1.0"}
}

func cartographic(points []model.LonLat) []float64 {
	out := make([]float64, 0, 3*len(points))
	for _, p := range points {
		out = append(out, p.Lon, p.Lat, 0)
	}
	return out
}

// NewFootprintDocument builds a CZML document with the footprint polygon and
// the ground track. Time-tagged samples add a sampled satellite position
// over the footprint's time span.
func NewFootprintDocument(name string, fp *model.Footprint) []Packet {
	doc := []Packet{
		documentPacket(name),
		{
			ID:   name + "/footprint",
			Name: "footprint",
			Polygon: &Polygon{
				Positions: Position{CartographicDegrees: cartographic(fp.Polygon)},
				Material:  solid(255, 165, 0, 96),
				Outline:   true,
			},
		},
		{
			ID:   name + "/ground-track",
			Name: "ground track",
			Polyline: &Polyline{
				Positions: Position{CartographicDegrees: cartographic(fp.GroundTrack[:len(fp.GroundTrack)/2])},
				Width:     2,
				Material:  solid(255, 255, 255, 255),
			},
		},
	}

	if pkt, ok := sampledNadir(name, fp.Samples); ok {
		doc = append(doc, pkt)
	}
	return doc
}

func sampledNadir(name string, samples []model.FootprintSample) (Packet, bool) {
	if len(samples) == 0 {
		return Packet{}, false
	}
	epoch := samples[0].Time.UTC()
	end := samples[len(samples)-1].Time.UTC()
	cart := make([]float64, 0, 4*len(samples))
	for _, s := range samples {
		if s.Time.IsZero() {
			return Packet{}, false
		}
		cart = append(cart, s.Time.Sub(epoch).Seconds(),
			s.Nadir.X*KmToM, s.Nadir.Y*KmToM, s.Nadir.Z*KmToM)
	}
	return Packet{
		ID:           name + "/nadir",
		Name:         "nadir",
		Availability: fmt.Sprintf("%s/%s", epoch.Format(time.RFC3339), end.Format(time.RFC3339)),
		Position: &Position{
			Epoch:          epoch.Format(time.RFC3339),
			ReferenceFrame: "FIXED",
			Cartesian:      cart,
		},
	}, true
}

// NewVisibilityDocument builds a CZML document with the closed ring of
// satellite positions at the limit of a station's visibility mask, in
// Earth-fixed metres.
func NewVisibilityDocument(stationID string, points []geometry.Vec3) []Packet {
	cart := make([]float64, 0, 3*(len(points)+1))
	for _, p := range points {
		cart = append(cart, p.X*KmToM, p.Y*KmToM, p.Z*KmToM)
	}
	if len(points) > 0 {
		cart = append(cart, points[0].X*KmToM, points[0].Y*KmToM, points[0].Z*KmToM)
	}
	return []Packet{
		documentPacket(stationID),
		{
			ID:   stationID + "/visibility-mask",
			Name: "visibility mask",
			Polyline: &Polyline{
				Positions: Position{ReferenceFrame: "FIXED", Cartesian: cart},
				Width:     2,
				Material:  solid(0, 255, 0, 255),
			},
		},
	}
}

// WriteDocument encodes packets as an indented JSON array.
func WriteDocument(w io.Writer, doc []Packet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
