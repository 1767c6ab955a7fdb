package roadgeom

import (
	"fmt"

	"github.com/paulmach/orb"
)

// RoadNode is a unit of a road centerline chain. The variant set is closed:
// SimpleNode for pass-through waypoints and IntersectionNode for junctions
// with another road.
type RoadNode interface {
	// Center returns position of the node. Position is immutable: moving a
	// node means replacing the node object in the chain
	Center() orb.Point
	// IsIntersection reports whether the node is a junction with another road
	IsIntersection() bool
	// BoundingBox returns a box of size roadWidth centered on the node
	BoundingBox(roadWidth float64) orb.Bound
	// AddedTo registers a back-reference to an owning road
	AddedTo(road *Road)
	// RemovedFrom drops the back-reference to given road
	RemovedFrom(road *Road)
	// Roads returns roads currently owning the node. Intersection nodes are
	// expected to be owned by two or more roads, simple nodes by one
	Roads() []*Road
}

// baseNode carries position and the owning-roads registry shared by both
// node kinds
type baseNode struct {
	center orb.Point
	roads  []*Road
}

func (n *baseNode) Center() orb.Point {
	return n.center
}

func (n *baseNode) BoundingBox(roadWidth float64) orb.Bound {
	half := roadWidth / 2.0
	return orb.Bound{
		Min: orb.Point{n.center.X() - half, n.center.Y() - half},
		Max: orb.Point{n.center.X() + half, n.center.Y() + half},
	}
}

func (n *baseNode) AddedTo(road *Road) {
	n.roads = append(n.roads, road)
}

func (n *baseNode) RemovedFrom(road *Road) {
	for i := range n.roads {
		if n.roads[i] == road {
			n.roads = append(n.roads[:i], n.roads[i+1:]...)
			return
		}
	}
}

func (n *baseNode) Roads() []*Road {
	return n.roads
}

// SimpleNode is a plain waypoint on a road centerline
type SimpleNode struct {
	baseNode
}

// NewSimpleNode creates a waypoint node at given point
func NewSimpleNode(center orb.Point) *SimpleNode {
	return &SimpleNode{baseNode{center: center}}
}

// IsIntersection always returns false for simple nodes
func (n *SimpleNode) IsIntersection() bool {
	return false
}

func (n *SimpleNode) String() string {
	return fmt.Sprintf("SimpleNode(%f %f)", n.center.X(), n.center.Y())
}

// IntersectionNode marks a junction of the owning road with another road.
// A single intersection node instance is shared by every road meeting there
type IntersectionNode struct {
	baseNode
}

// NewIntersectionNode creates a junction node at given point
func NewIntersectionNode(center orb.Point) *IntersectionNode {
	return &IntersectionNode{baseNode{center: center}}
}

// IsIntersection always returns true for intersection nodes
func (n *IntersectionNode) IsIntersection() bool {
	return true
}

func (n *IntersectionNode) String() string {
	return fmt.Sprintf("IntersectionNode(%f %f)", n.center.X(), n.center.Y())
}

// NodesEqual reports value equality of two nodes: same kind and centers
// matching to CoordPrecision decimal digits. Used for chain comparison,
// never for the point index
func NodesEqual(a, b RoadNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsIntersection() != b.IsIntersection() {
		return false
	}
	return pointsAlmostEqual(a.Center(), b.Center(), CoordPrecision)
}
