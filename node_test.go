package roadgeom

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestNodeKinds(t *testing.T) {
	simple := NewSimpleNode(orb.Point{1, 2})
	if simple.IsIntersection() {
		t.Errorf("Simple node must not report itself as intersection")
	}
	junction := NewIntersectionNode(orb.Point{1, 2})
	if !junction.IsIntersection() {
		t.Errorf("Intersection node must report itself as intersection")
	}
}

func TestNodeRegistration(t *testing.T) {
	junction := NewIntersectionNode(orb.Point{5, 0})
	roadA := NewRoad("a")
	roadB := NewRoad("b")
	junction.AddedTo(roadA)
	junction.AddedTo(roadB)
	if len(junction.Roads()) != 2 {
		t.Errorf("Shared node must be registered to 2 roads, but got %d", len(junction.Roads()))
	}
	junction.RemovedFrom(roadA)
	if len(junction.Roads()) != 1 {
		t.Errorf("Node must be registered to 1 road after removal, but got %d", len(junction.Roads()))
	}
	if junction.Roads()[0] != roadB {
		t.Errorf("Node must stay registered to the road it was not removed from")
	}
	// Removing an unregistered road is a no-op
	junction.RemovedFrom(roadA)
	if len(junction.Roads()) != 1 {
		t.Errorf("Removing an unregistered road must not change the registry")
	}
}

func TestNodesEqual(t *testing.T) {
	a := NewSimpleNode(orb.Point{1.000001, 2})
	b := NewSimpleNode(orb.Point{1.0000011, 2})
	if !NodesEqual(a, b) {
		t.Errorf("Nodes of same kind with almost equal centers must be equal")
	}
	c := NewIntersectionNode(orb.Point{1.000001, 2})
	if NodesEqual(a, c) {
		t.Errorf("Nodes of different kinds must not be equal")
	}
	d := NewSimpleNode(orb.Point{1.1, 2})
	if NodesEqual(a, d) {
		t.Errorf("Nodes with clearly different centers must not be equal")
	}
}

func TestNodeBoundingBox(t *testing.T) {
	node := NewSimpleNode(orb.Point{10, 20})
	box := node.BoundingBox(6.0)
	if box.Min != (orb.Point{7, 17}) || box.Max != (orb.Point{13, 23}) {
		t.Errorf("Bounding box must be [(7 17) (13 23)], but got %v", box)
	}
}
