// Package scenario reads station masks and ground tracks from the file
// formats used by the mission tooling.
package scenario

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

// Ground configuration file shape. Positions are Earth-fixed km, mask angles
// are degrees.
type groundConfigurationXML struct {
	XMLName  xml.Name           `xml:"GroundConfigurationFile"`
	Stations []groundStationXML `xml:"GroundStation"`
}

type groundStationXML struct {
	ID        string         `xml:"Id,attr"`
	Name      string         `xml:"Name,attr"`
	PositionX *float64       `xml:"PositionX,attr"`
	PositionY *float64       `xml:"PositionY,attr"`
	PositionZ *float64       `xml:"PositionZ,attr"`
	Points    []maskPointXML `xml:"Antenna>VisibilityPattern>Point"`
}

type maskPointXML struct {
	Azimuth   *float64 `xml:"Azimuth,attr"`
	Elevation *float64 `xml:"Elevation,attr"`
}

// LoadStationXML decodes every GroundStation of a ground configuration
// document. Stations without an Id attribute are named "<source>-<index>".
func LoadStationXML(r io.Reader, source string) ([]*model.Station, error) {
	var doc groundConfigurationXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrapf(decodeError("ground configuration", err), "decode %s", source)
	}
	if len(doc.Stations) == 0 {
		return nil, geometry.InvalidInput("ground configuration", "%s has no GroundStation elements", source)
	}

	out := make([]*model.Station, 0, len(doc.Stations))
	for i, gs := range doc.Stations {
		st, err := gs.toStation(source, i)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// LoadStationFile opens path and decodes it with LoadStationXML. The file's
// base name (without extension) is used as the source label.
func LoadStationFile(path string) ([]*model.Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open station file")
	}
	defer f.Close()

	source := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return LoadStationXML(f, source)
}

func (gs groundStationXML) toStation(source string, index int) (*model.Station, error) {
	id := strings.TrimSpace(gs.ID)
	if id == "" {
		id = fmt.Sprintf("%s-%d", source, index)
	}
	if gs.PositionX == nil || gs.PositionY == nil || gs.PositionZ == nil {
		return nil, geometry.InvalidInput("station position", "station %q is missing PositionX/Y/Z", id)
	}

	mask := make([]model.MaskPoint, 0, len(gs.Points))
	for j, p := range gs.Points {
		if p.Azimuth == nil || p.Elevation == nil {
			return nil, geometry.InvalidInput("mask", "station %q point %d is missing Azimuth or Elevation", id, j)
		}
		mask = append(mask, model.MaskPoint{AzimuthDeg: *p.Azimuth, ElevationDeg: *p.Elevation})
	}

	pos := geometry.Vec3{X: *gs.PositionX, Y: *gs.PositionY, Z: *gs.PositionZ}
	st, err := model.NewStation(id, strings.TrimSpace(gs.Name), pos, mask)
	if err != nil {
		return nil, fmt.Errorf("station %q: %w", id, err)
	}
	return st, nil
}
