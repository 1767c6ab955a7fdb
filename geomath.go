package roadgeom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	earthRadius = 6370.986884258304
	pi180       = math.Pi / 180.0
	pi180Rev    = 180.0 / math.Pi
)

// CoordPrecision is the number of decimal digits two coordinates may share
// while still being considered the same physical point. Points recovered
// from intersection computations drift in the last digits, so tolerant
// comparisons are done at this precision instead of exact equality.
const CoordPrecision = 5

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansToDegrees r = deg * 180 / pi
func radiansToDegrees(d float64) float64 {
	return d * pi180Rev
}

// findDistance returns Euclidean distance between two points
func findDistance(p, q orb.Point) float64 {
	return planar.Distance(p, q)
}

// greatCircleDistance returns distance between two geo-points (kilometers),
// treating X as longitude and Y as latitude
func greatCircleDistance(p, q orb.Point) float64 {
	lat1 := degreesToRadians(p.Y())
	lon1 := degreesToRadians(p.X())
	lat2 := degreesToRadians(q.Y())
	lon2 := degreesToRadians(q.X())
	diffLat := lat2 - lat1
	diffLon := lon2 - lon1
	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(diffLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return c * earthRadius
}

// GreatCircleLength returns length of given line (kilometers), treating X
// as longitude and Y as latitude
func GreatCircleLength(line orb.LineString) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += greatCircleDistance(line[i-1], line[i])
	}
	return totalLength
}

// pointsAlmostEqual compares two points with tolerance of 'precision' decimal digits
func pointsAlmostEqual(p, q orb.Point, precision int) bool {
	eps := 0.5 * math.Pow(10, -float64(precision))
	return math.Abs(p.X()-q.X()) < eps && math.Abs(p.Y()-q.Y()) < eps
}

// angleBetweenVectors returns angle (degrees) needed to rotate v1 onto v2.
// Result is normalized to (-180; 180]
func angleBetweenVectors(v1, v2 orb.Point) float64 {
	angle := math.Atan2(v2.Y(), v2.X()) - math.Atan2(v1.Y(), v1.X())
	if angle <= -1*math.Pi {
		angle += 2 * math.Pi
	}
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return radiansToDegrees(angle)
}

// compensatedSum sums values with Neumaier compensation to avoid
// floating-point drift over long chains
func compensatedSum(values []float64) float64 {
	sum := 0.0
	compensation := 0.0
	for _, v := range values {
		t := sum + v
		if math.Abs(sum) >= math.Abs(v) {
			compensation += (sum - t) + v
		} else {
			compensation += (v - t) + sum
		}
		sum = t
	}
	return sum + compensation
}

// Check if two segments intersects and returns intersections Point
// p1, p2 - first segment
// p3, p4 - second segment
// Note: Euclidean space
func intersect(p1, p2, p3, p4 orb.Point) (orb.Point, error) {
	// Calculate the coefficients of the linear equations
	a1 := p2[1] - p1[1]
	b1 := p1[0] - p2[0]
	c1 := a1*p1[0] + b1*p1[1]
	a2 := p4[1] - p3[1]
	b2 := p3[0] - p4[0]
	c2 := a2*p3[0] + b2*p3[1]

	det := a1*b2 - a2*b1
	if det == 0 {
		return orb.Point{}, fmt.Errorf("The lines are parallel")
	}

	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	return orb.Point{x, y}, nil
}

// offsetCurve builds a parallel curve at given signed distance from the line
//
// Note: panics if number of points in line is less than 2
func offsetCurve(line orb.LineString, distance float64) orb.LineString {
	var result orb.LineString
	var segments [][2]orb.Point

	// Iterate over line segments and calculate offset segments
	for i := 1; i < len(line); i++ {
		p1 := line[i-1]
		p2 := line[i]

		vec := [2]float64{p2[0] - p1[0], p2[1] - p1[1]}
		vecLen := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1])
		vec = [2]float64{vec[0] / vecLen, vec[1] / vecLen}

		// Rotate the vector by 90 degrees and scale by the distance
		offset := [2]float64{-vec[1] * distance, vec[0] * distance}

		op1 := orb.Point{p1[0] + offset[0], p1[1] + offset[1]}
		op2 := orb.Point{p2[0] + offset[0], p2[1] + offset[1]}
		segments = append(segments, [2]orb.Point{op1, op2})
	}

	result = append(result, segments[0][0])
	// Offset segments of a polyline drift apart on turns; join them at their
	// mutual intersection point
	for i := 1; i < len(segments); i++ {
		seg1 := segments[i-1]
		seg2 := segments[i]
		intersection, err := intersect(seg1[0], seg1[1], seg2[0], seg2[1])
		if err != nil {
			continue
		}
		result = append(result, intersection)
	}
	result = append(result, segments[len(segments)-1][1])
	return result
}
