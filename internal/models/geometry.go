package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// GPSCoordinates is an optional capture point for an inspection or
// observation. A nil value means the geolocation provider failed; that is
// never fatal to a submission (the record carries a warning flag instead).
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Value converts the coordinates to WKT for a PostGIS GEOGRAPHY(Point, 4326)
// column. Example output: "SRID=4326;POINT(-77.3963 25.0343)".
func (g *GPSCoordinates) Value() (driver.Value, error) {
	if g == nil {
		return nil, nil
	}

	point := geom.NewPointFlat(geom.XY, []float64{g.Longitude, g.Latitude})
	point.SetSRID(4326)

	wktString, err := wkt.Marshal(point)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal point to WKT: %w", err)
	}

	return fmt.Sprintf("SRID=%d;%s", point.SRID(), wktString), nil
}

// Scan converts a PostGIS EWKB point back into coordinates.
func (g *GPSCoordinates) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan GPSCoordinates: expected []byte, got %T", value)
	}

	geometry, err := ewkb.Unmarshal(bytes)
	if err != nil {
		return fmt.Errorf("failed to unmarshal EWKB: %w", err)
	}

	point, ok := geometry.(*geom.Point)
	if !ok {
		return fmt.Errorf("scanned geometry is not a Point")
	}

	coords := point.Coords()
	if len(coords) < 2 {
		return fmt.Errorf("scanned point has no coordinates")
	}

	g.Longitude = coords[0]
	g.Latitude = coords[1]
	return nil
}
