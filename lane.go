package roadgeom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// DefaultLaneWidth is assumed for lanes added without an explicit width
const DefaultLaneWidth = 4.0

// Lane is a parallel traffic strip of a road: a signed offset from the
// centerline, a width and a direction flag. Lanes never overlap-check each
// other; the road just aggregates their extreme external offsets
type Lane struct {
	road     *Road
	width    float64
	offset   float64
	reversed bool
}

func newLane(road *Road, width, offset float64, reversed bool) (*Lane, error) {
	if width <= 0 {
		return nil, errors.Wrapf(ErrInvalidLaneWidth, "got %f", width)
	}
	return &Lane{
		road:     road,
		width:    width,
		offset:   offset,
		reversed: reversed,
	}, nil
}

// Road returns the owning road
func (l *Lane) Road() *Road {
	return l.road
}

// Width returns lane width
func (l *Lane) Width() float64 {
	return l.width
}

// Offset returns signed distance of the lane center from the road centerline
func (l *Lane) Offset() float64 {
	return l.offset
}

// IsReversed reports whether the lane runs against the road direction
func (l *Lane) IsReversed() bool {
	return l.reversed
}

// ExternalOffset returns distance of the lane outer edge from the road
// centerline: the offset pushed outward by half the lane width. A zero
// offset pushes to the positive side
func (l *Lane) ExternalOffset() float64 {
	return l.offset + math.Copysign(l.width/2.0, l.offset)
}

// Geometry returns the lane center curve: the road centerline shifted by
// the lane offset. Requires at least two control points on the road
func (l *Lane) Geometry() (orb.LineString, error) {
	centerline, err := l.road.ControlPointsLineString()
	if err != nil {
		return nil, errors.Wrap(err, "lane geometry")
	}
	if len(centerline) < 2 {
		return nil, errors.Wrap(ErrIndexOutOfRange, "lane geometry needs at least 2 control points")
	}
	if l.offset == 0 {
		return centerline, nil
	}
	return offsetCurve(centerline, l.offset), nil
}
