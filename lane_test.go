package roadgeom

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

func TestLaneExternalOffset(t *testing.T) {
	road := RoadFromControlPoints("", []orb.Point{{0, 0}, {10, 0}})
	if err := road.AddLaneDetailed(3, 4, false); err != nil {
		t.Errorf("Lane must be accepted: %v", err)
	}
	if err := road.AddLaneDetailed(-2, 4, true); err != nil {
		t.Errorf("Lane must be accepted: %v", err)
	}
	if err := road.AddLane(0); err != nil {
		t.Errorf("Lane must be accepted: %v", err)
	}
	cases := []struct {
		index int
		res   float64
	}{
		{0, 5.0},  // 3 + 4/2
		{1, -4.0}, // -2 - 4/2
		{2, 2.0},  // zero offset pushes to the positive side
	}
	for _, c := range cases {
		lane, err := road.LaneAt(c.index)
		if err != nil {
			t.Errorf("Lane %d must exist: %v", c.index, err)
			continue
		}
		if lane.ExternalOffset() != c.res {
			t.Errorf("External offset of lane %d must be %f, but got %f", c.index, c.res, lane.ExternalOffset())
		}
	}
}

func TestLaneInvalidWidth(t *testing.T) {
	road := RoadFromControlPoints("", []orb.Point{{0, 0}, {10, 0}})
	err := road.AddLaneDetailed(0, 0, false)
	if errors.Cause(err) != ErrInvalidLaneWidth {
		t.Errorf("Zero lane width must be rejected with ErrInvalidLaneWidth, but got %v", err)
	}
	err = road.AddLaneDetailed(0, -4, false)
	if errors.Cause(err) != ErrInvalidLaneWidth {
		t.Errorf("Negative lane width must be rejected with ErrInvalidLaneWidth, but got %v", err)
	}
	if road.LaneCount() != 0 {
		t.Errorf("Rejected lanes must not be added, but got %d lanes", road.LaneCount())
	}
}

func TestLaneAccessors(t *testing.T) {
	road := RoadFromControlPoints("", []orb.Point{{0, 0}, {10, 0}})
	if err := road.AddLaneDetailed(-2.5, 3.5, true); err != nil {
		t.Errorf("Lane must be accepted: %v", err)
	}
	lane, err := road.LaneAt(0)
	if err != nil {
		t.Fatalf("Lane must exist: %v", err)
	}
	if lane.Offset() != -2.5 || lane.Width() != 3.5 || !lane.IsReversed() {
		t.Errorf("Lane accessors must return construction values, but got offset=%f width=%f reversed=%t",
			lane.Offset(), lane.Width(), lane.IsReversed())
	}
	if lane.Road() != road {
		t.Errorf("Lane must report its owning road")
	}
}

func TestLaneGeometry(t *testing.T) {
	road := RoadFromControlPoints("", []orb.Point{{0, 0}, {10, 0}})
	if err := road.AddLaneDetailed(-2, 4, true); err != nil {
		t.Errorf("Lane must be accepted: %v", err)
	}
	lane, _ := road.LaneAt(0)
	geom, err := lane.Geometry()
	if err != nil {
		t.Fatalf("Lane geometry must be computable: %v", err)
	}
	if geom[0] != (orb.Point{0, -2}) || geom[1] != (orb.Point{10, -2}) {
		t.Errorf("Lane geometry must be [(0 -2) (10 -2)], but got %v", geom)
	}
}
