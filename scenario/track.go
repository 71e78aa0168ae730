package scenario

import (
	"encoding/json"
	"encoding/xml"
	stderrors "errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

// A track file carries either explicit samples or a flat x,y,z,x,y,z... list
// of Earth-fixed km.
type trackJSON struct {
	Points    []trackPointJSON `json:"points"`
	Positions []float64        `json:"positions"`
}

type trackPointJSON struct {
	X    *float64 `json:"x"`
	Y    *float64 `json:"y"`
	Z    *float64 `json:"z"`
	Time string   `json:"time,omitempty"` // RFC 3339; all samples or none
}

// LoadTrackJSON decodes a ground track. Exactly one of "points" and
// "positions" must be present. Malformed documents, non-numeric or missing
// coordinates and partially timed tracks are *geometry.InvalidInputError.
func LoadTrackJSON(r io.Reader) ([]model.TrackPoint, error) {
	var payload trackJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, errors.Wrap(decodeError("track", err), "decode track")
	}

	switch {
	case len(payload.Points) > 0 && len(payload.Positions) > 0:
		return nil, geometry.InvalidInput("track", "use either points or positions, not both")
	case len(payload.Positions) > 0:
		return flatTrack(payload.Positions)
	case len(payload.Points) > 0:
		return pointTrack(payload.Points)
	default:
		return nil, geometry.InvalidInput("track", "no samples")
	}
}

// LoadTrackFile opens path and decodes it with LoadTrackJSON.
func LoadTrackFile(path string) ([]model.TrackPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open track file")
	}
	defer f.Close()
	return LoadTrackJSON(f)
}

func flatTrack(flat []float64) ([]model.TrackPoint, error) {
	if len(flat)%3 != 0 {
		return nil, geometry.InvalidInput("track", "positions length %d is not a multiple of 3", len(flat))
	}
	out := make([]model.TrackPoint, 0, len(flat)/3)
	for i := 0; i < len(flat); i += 3 {
		out = append(out, model.TrackPoint{
			Position: geometry.Vec3{X: flat[i], Y: flat[i+1], Z: flat[i+2]},
		})
	}
	return out, nil
}

func pointTrack(points []trackPointJSON) ([]model.TrackPoint, error) {
	out := make([]model.TrackPoint, 0, len(points))
	var prev time.Time
	for i, p := range points {
		for _, c := range []struct {
			axis string
			v    *float64
		}{{"x", p.X}, {"y", p.Y}, {"z", p.Z}} {
			if c.v == nil {
				return nil, geometry.InvalidInput("track", "point %d is missing %s", i, c.axis)
			}
		}
		tp := model.TrackPoint{Position: geometry.Vec3{X: *p.X, Y: *p.Y, Z: *p.Z}}
		if p.Time != "" {
			ts, err := time.Parse(time.RFC3339Nano, p.Time)
			if err != nil {
				return nil, geometry.InvalidInput("track", "point %d time %q: %v", i, p.Time, err)
			}
			if !prev.IsZero() && !ts.After(prev) {
				return nil, geometry.InvalidInput("track", "point %d time %s is not after the previous sample", i, p.Time)
			}
			tp.Time, prev = ts, ts
		}
		if i > 0 && tp.HasTime() != out[0].HasTime() {
			return nil, geometry.InvalidInput("track", "point %d: either every sample has a time or none does", i)
		}
		out = append(out, tp)
	}
	return out, nil
}

// decodeError reports a document that could not be decoded as invalid input,
// keeping the decoder's message. I/O failures of the reader are left as is.
func decodeError(field string, err error) error {
	var (
		jsonSyntax *json.SyntaxError
		jsonType   *json.UnmarshalTypeError
		xmlSyntax  *xml.SyntaxError
		xmlShape   xml.UnmarshalError
		numErr     *strconv.NumError
	)
	switch {
	case stderrors.As(err, &jsonSyntax), stderrors.As(err, &jsonType),
		stderrors.As(err, &xmlSyntax), stderrors.As(err, &xmlShape), stderrors.As(err, &numErr),
		stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF),
		strings.HasPrefix(err.Error(), "json: unknown field"):
		return &geometry.InvalidInputError{Field: field, Reason: err.Error()}
	default:
		return err
	}
}
