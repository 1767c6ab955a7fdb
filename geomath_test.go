package roadgeom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func Round(x, unit float64) float64 {
	if x > 0 {
		return float64(int64(x/unit+0.5)) * unit
	}
	return float64(int64(x/unit-0.5)) * unit
}

func TestAngleBetweenVectors(t *testing.T) {
	cases := []struct {
		v1, v2 orb.Point
		res    float64
	}{
		{orb.Point{1, 0}, orb.Point{1, 0}, 0.0},
		{orb.Point{1, 0}, orb.Point{0, 1}, 90.0},
		{orb.Point{1, 0}, orb.Point{0, -1}, -90.0},
		{orb.Point{1, 0}, orb.Point{-1, 0}, 180.0},
		{orb.Point{1, 0}, orb.Point{1, 1}, 45.0},
		{orb.Point{0, 1}, orb.Point{1, 0}, -90.0},
	}
	for _, c := range cases {
		angle := angleBetweenVectors(c.v1, c.v2)
		if Round(angle, 0.000001) != Round(c.res, 0.000001) {
			t.Errorf("Angle between %v and %v must be %f, but got %f", c.v1, c.v2, c.res, angle)
		}
	}
}

func TestCompensatedSum(t *testing.T) {
	// Naive running addition loses the small terms entirely here
	values := []float64{1.0, 1e100, 1.0, -1e100}
	res := 2.0
	sum := compensatedSum(values)
	if sum != res {
		t.Errorf("Compensated sum must be %f, but got %f", res, sum)
	}
}

func TestCompensatedSumAgreesWithNaive(t *testing.T) {
	values := []float64{3.05, 12.9, 0.004, 7.25, 100.5, 0.333}
	naive := 0.0
	for _, v := range values {
		naive += v
	}
	sum := compensatedSum(values)
	if math.Abs(sum-naive) > 0.0001 {
		t.Errorf("Compensated sum %f must agree with naive sum %f on well-conditioned input", sum, naive)
	}
}

func TestPointsAlmostEqual(t *testing.T) {
	p := orb.Point{37.6417350769043, 55.751849391735284}
	q := orb.Point{37.641735, 55.751849}
	if !pointsAlmostEqual(p, q, CoordPrecision) {
		t.Errorf("Points %v and %v must be almost equal with precision %d", p, q, CoordPrecision)
	}
	far := orb.Point{37.6418, 55.751849}
	if pointsAlmostEqual(p, far, CoordPrecision) {
		t.Errorf("Points %v and %v must not be almost equal with precision %d", p, far, CoordPrecision)
	}
}

func TestGreatCircleLength(t *testing.T) {
	line := orb.LineString{
		orb.Point{37.6417350769043, 55.751849391735284},
		orb.Point{37.668514251708984, 55.73261980350401},
	}
	res := 2.71693096539 // kilometers
	gcd := GreatCircleLength(line)
	if Round(gcd, 0.0005) != Round(res, 0.0005) {
		t.Errorf("Great circle length must be %f, but got %f", res, gcd)
	}
}

func TestOffsetCurveStraightLine(t *testing.T) {
	line := orb.LineString{orb.Point{0, 0}, orb.Point{10, 0}}
	offset := offsetCurve(line, 3.0)
	if len(offset) != 2 {
		t.Errorf("Offset curve of a segment must keep 2 points, but got %d", len(offset))
	}
	if offset[0] != (orb.Point{0, 3}) || offset[1] != (orb.Point{10, 3}) {
		t.Errorf("Offset curve must be [(0 3) (10 3)], but got %v", offset)
	}
}

func TestIntersectParallel(t *testing.T) {
	_, err := intersect(
		orb.Point{0, 0}, orb.Point{10, 0},
		orb.Point{0, 1}, orb.Point{10, 1},
	)
	if err == nil {
		t.Errorf("Intersection of parallel lines must fail")
	}
}
