package roadgeom

import (
	"github.com/paulmach/orb"
	polyline "github.com/twpayne/go-polyline"
)

// PrepareEncodedPolyline returns Google encoded polyline representation of
// LineString. Coordinates are interpreted as X = longitude, Y = latitude
func PrepareEncodedPolyline(line orb.LineString) string {
	coords := make([][]float64, len(line))
	for i := range line {
		coords[i] = []float64{line[i].Y(), line[i].X()}
	}
	return string(polyline.EncodeCoords(coords))
}
