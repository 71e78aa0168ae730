// Package export renders computed positions and footprints for downstream
// consumers: plain text lists, CZML documents and GeoJSON.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

// KmToM converts the core's kilometres to the metres CZML viewers expect.
const KmToM = 1000.0

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WritePositions writes points as a single "[(x, y, z), ...]" line with every
// coordinate multiplied by scale.
func WritePositions(w io.Writer, points []geometry.Vec3, scale float64) error {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("(%s, %s, %s)",
			formatFloat(p.X*scale), formatFloat(p.Y*scale), formatFloat(p.Z*scale))
	}
	_, err := fmt.Fprintf(w, "[%s]\n", strings.Join(parts, ", "))
	return err
}

// WriteLonLat writes a "LABEL: lon lat, lon lat, ..." line.
func WriteLonLat(w io.Writer, label string, points []model.LonLat) error {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = formatFloat(p.Lon) + " " + formatFloat(p.Lat)
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", label, strings.Join(parts, ", "))
	return err
}

// WriteFootprintReport writes the attitude used, the ground-track ring and the
// footprint polygon.
func WriteFootprintReport(w io.Writer, fp *model.Footprint) error {
	bw := bufio.NewWriter(w)
	a := fp.Attitude
	fmt.Fprintf(bw, "Generating footprint with the following configuration:\n\t- aperture: %s\n\t- roll: %s\n\t- pitch: %s\n\t- yaw: %s\n\n",
		formatFloat(a.ApertureDeg), formatFloat(a.RollDeg), formatFloat(a.PitchDeg), formatFloat(a.YawDeg))
	if err := WriteLonLat(bw, "SATELLITE COORDINATES", fp.GroundTrack); err != nil {
		return err
	}
	fmt.Fprintln(bw)
	if err := WriteLonLat(bw, "FOOTPRINT COORDINATES", fp.Polygon); err != nil {
		return err
	}
	return bw.Flush()
}
