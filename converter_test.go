package roadgeom

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func TestPrepareWKTLinestring(t *testing.T) {
	road := RoadFromControlPoints("", []orb.Point{{0, 0}, {5, 0}})
	line, err := road.ControlPointsLineString()
	if err != nil {
		t.Fatalf("Line string must be exportable: %v", err)
	}
	res := "LINESTRING(0 0,5 0)"
	wktStr := PrepareWKTLinestring(line)
	if wktStr != res {
		t.Errorf("WKT must be %s, but got %s", res, wktStr)
	}
}

func TestPrepareWKTPoint(t *testing.T) {
	res := "POINT(37.641735 55.751849)"
	wktStr := PrepareWKTPoint(orb.Point{37.641735, 55.751849})
	if wktStr != res {
		t.Errorf("WKT must be %s, but got %s", res, wktStr)
	}
}

func TestPrepareGeoJSONLinestring(t *testing.T) {
	road := RoadFromControlPoints("", []orb.Point{{0, 0}, {5, 0}})
	line, err := road.ControlPointsLineString()
	if err != nil {
		t.Fatalf("Line string must be exportable: %v", err)
	}
	geoJSONStr := PrepareGeoJSONLinestring(line)
	if !strings.Contains(geoJSONStr, "\"type\":\"LineString\"") {
		t.Errorf("GeoJSON must carry LineString type, but got %s", geoJSONStr)
	}
	if !strings.Contains(geoJSONStr, "[[0,0],[5,0]]") {
		t.Errorf("GeoJSON must carry coordinates, but got %s", geoJSONStr)
	}
}

func TestPrepareGeoJSONPoint(t *testing.T) {
	geoJSONStr := PrepareGeoJSONPoint(orb.Point{5, 0})
	if !strings.Contains(geoJSONStr, "\"type\":\"Point\"") {
		t.Errorf("GeoJSON must carry Point type, but got %s", geoJSONStr)
	}
	if !strings.Contains(geoJSONStr, "[5,0]") {
		t.Errorf("GeoJSON must carry coordinates, but got %s", geoJSONStr)
	}
}

func TestPrepareEncodedPolyline(t *testing.T) {
	// X is longitude, Y is latitude
	line := orb.LineString{
		orb.Point{-120.2, 38.5},
		orb.Point{-120.95, 40.7},
		orb.Point{-126.453, 43.252},
	}
	res := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	encoded := PrepareEncodedPolyline(line)
	if encoded != res {
		t.Errorf("Encoded polyline must be %s, but got %s", res, encoded)
	}
}
