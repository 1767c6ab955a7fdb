package roadgeom

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Road models a single road of a city: an ordered chain of nodes tracing
// the centerline plus a set of parallel lanes offset from it. The chain
// order is the direction of travel.
//
// A road is built once from points or nodes, possibly extended with
// AddControlPoint/AddLane, then queried. Construction and queries are
// single-threaded by contract.
type Road struct {
	CityElement
	nodes []RoadNode
	// pointToNode is the fast path for membership queries. It is populated
	// eagerly by AddControlPoint only; roads adopted via RoadFromNodes rely
	// on the tolerant linear fallback. The index is deliberately not rebuilt
	// after TrimRedundantNodes or ReplaceNodeAt, so it may keep entries for
	// nodes no longer in the chain
	pointToNode map[orb.Point]RoadNode
	lanes       []*Lane
}

// NewRoad creates an empty road. An empty road is legal only transiently,
// until control points are added
func NewRoad(name string) *Road {
	road := &Road{
		nodes:       []RoadNode{},
		pointToNode: make(map[orb.Point]RoadNode),
		lanes:       []*Lane{},
	}
	road.SetName(name)
	return road
}

// RoadFromNodes adopts a pre-built ordered node chain as-is. The point
// index is not populated, so membership queries on such road always take
// the linear fallback.
//
// Please use RoadFromControlPoints if possible. This constructor is kept
// for callers assembling chains of shared intersection nodes by hand.
func RoadFromNodes(name string, nodes []RoadNode) *Road {
	road := NewRoad(name)
	for _, node := range nodes {
		road.addNode(node)
	}
	return road
}

// RoadFromControlPoints is the primary constructor: every point becomes a
// fresh SimpleNode, appended in input order and indexed by its coordinate
func RoadFromControlPoints(name string, points []orb.Point) *Road {
	road := NewRoad(name)
	road.AddControlPoints(points)
	return road
}

/* Geometry */

// Width returns total paved width of the road: abs(min) + abs(max) over
// external offsets of all lanes. Returns ErrNoLanes for a road without lanes
func (r *Road) Width() (float64, error) {
	if len(r.lanes) == 0 {
		return 0, errors.Wrapf(ErrNoLanes, "width of road '%s'", r.Name())
	}
	minOffset := math.Inf(1)
	maxOffset := math.Inf(-1)
	for _, lane := range r.lanes {
		external := lane.ExternalOffset()
		if external < minOffset {
			minOffset = external
		}
		if external > maxOffset {
			maxOffset = external
		}
	}
	return math.Abs(minOffset) + math.Abs(maxOffset), nil
}

// BoundingBox returns the union of every node's footprint inflated by the
// road width, i.e. a box around the paved surface rather than the bare
// centerline. Returns ErrNoLanes for a road without lanes and ErrEmptyRoad
// for a road without nodes
func (r *Road) BoundingBox() (orb.Bound, error) {
	width, err := r.Width()
	if err != nil {
		return orb.Bound{}, errors.Wrap(err, "bounding box")
	}
	if len(r.nodes) == 0 {
		return orb.Bound{}, errors.Wrapf(ErrEmptyRoad, "bounding box of road '%s'", r.Name())
	}
	box := r.nodes[0].BoundingBox(width)
	for _, node := range r.nodes[1:] {
		box = box.Union(node.BoundingBox(width))
	}
	return box, nil
}

/* Control points management */

// ControlPoints returns centers of the chain nodes in order
func (r *Road) ControlPoints() []orb.Point {
	points := make([]orb.Point, len(r.nodes))
	for i, node := range r.nodes {
		points[i] = node.Center()
	}
	return points
}

// ControlPointsLineString exports the centerline as a polyline. A single
// point is a degenerate but legal polyline; an empty road is an error
func (r *Road) ControlPointsLineString() (orb.LineString, error) {
	if len(r.nodes) == 0 {
		return nil, errors.Wrapf(ErrEmptyRoad, "line string of road '%s'", r.Name())
	}
	return orb.LineString(r.ControlPoints()), nil
}

// AddControlPoint appends a fresh simple node for given point and indexes
// it for fast membership lookups
func (r *Road) AddControlPoint(point orb.Point) {
	node := NewSimpleNode(point)
	r.addNode(node)
	r.pointToNode[point] = node
}

// AddControlPoints appends a node per point, preserving input order
func (r *Road) AddControlPoints(points []orb.Point) {
	for _, point := range points {
		r.AddControlPoint(point)
	}
}

// ControlPointsCount returns number of control points in the chain
func (r *Road) ControlPointsCount() int {
	return len(r.nodes)
}

// IncludesControlPoint reports whether the road passes through given point.
// Attempts a constant lookup in the point index first; on a miss falls back
// to a linear scan with tolerance of CoordPrecision decimal digits, which
// catches points recovered from floating-point geometry operations
func (r *Road) IncludesControlPoint(point orb.Point) bool {
	if _, ok := r.pointToNode[point]; ok {
		return true
	}
	for _, node := range r.nodes {
		if pointsAlmostEqual(node.Center(), point, CoordPrecision) {
			return true
		}
	}
	return false
}

// ControlPointsDistances returns Euclidean distances between consecutive
// control points. A single-point road yields the one-element sequence {0}
func (r *Road) ControlPointsDistances() []float64 {
	if len(r.nodes) == 1 {
		return []float64{0.0}
	}
	if len(r.nodes) == 0 {
		return []float64{}
	}
	distances := make([]float64, 0, len(r.nodes)-1)
	for i := 1; i < len(r.nodes); i++ {
		distances = append(distances, findDistance(r.nodes[i-1].Center(), r.nodes[i].Center()))
	}
	return distances
}

// SumControlPointsDistances sums the [initial:final) sub-range of the
// consecutive distances sequence with compensated summation. A negative
// final means "to the end". Out-of-range bounds are clamped
func (r *Road) SumControlPointsDistances(initial, final int) float64 {
	distances := r.ControlPointsDistances()
	if final < 0 || final > len(distances) {
		final = len(distances)
	}
	if initial < 0 {
		initial = 0
	}
	if initial >= final {
		return 0.0
	}
	return compensatedSum(distances[initial:final])
}

/* Lanes management */

// AddLane appends a forward lane of DefaultLaneWidth at given offset
func (r *Road) AddLane(offset float64) error {
	return r.AddLaneDetailed(offset, DefaultLaneWidth, false)
}

// AddLaneDetailed appends a lane with explicit width and direction. Lane
// order is insertion order and carries no other meaning
func (r *Road) AddLaneDetailed(offset, width float64, reversed bool) error {
	lane, err := newLane(r, width, offset, reversed)
	if err != nil {
		return errors.Wrapf(err, "add lane to road '%s'", r.Name())
	}
	r.lanes = append(r.lanes, lane)
	return nil
}

// LaneCount returns number of lanes
func (r *Road) LaneCount() int {
	return len(r.lanes)
}

// Lanes returns lanes in insertion order
func (r *Road) Lanes() []*Lane {
	return r.lanes
}

// LaneAt returns lane at given index
func (r *Road) LaneAt(index int) (*Lane, error) {
	if index < 0 || index >= len(r.lanes) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "lane %d of %d", index, len(r.lanes))
	}
	return r.lanes[index], nil
}

/* Nodes management */

// Reverse flips the chain direction in place. The point index stays valid
// since it is keyed by coordinate. Lane offsets are defined relative to the
// direction of travel and are NOT adjusted here; callers reversing a road
// own that caveat
func (r *Road) Reverse() {
	inputLen := len(r.nodes)
	inputMid := inputLen / 2
	for i := 0; i < inputMid; i++ {
		j := inputLen - i - 1
		r.nodes[i], r.nodes[j] = r.nodes[j], r.nodes[i]
	}
}

// Nodes returns the node chain in order
func (r *Road) Nodes() []RoadNode {
	return r.nodes
}

// NodeCount returns number of nodes in the chain
func (r *Road) NodeCount() int {
	return len(r.nodes)
}

// NodeAt returns node at given index
func (r *Road) NodeAt(index int) (RoadNode, error) {
	if index < 0 || index >= len(r.nodes) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "node %d of %d", index, len(r.nodes))
	}
	return r.nodes[index], nil
}

// FirstNode returns the first node of the chain
func (r *Road) FirstNode() (RoadNode, error) {
	if len(r.nodes) == 0 {
		return nil, errors.Wrapf(ErrEmptyRoad, "first node of road '%s'", r.Name())
	}
	return r.nodes[0], nil
}

// LastNode returns the last node of the chain
func (r *Road) LastNode() (RoadNode, error) {
	if len(r.nodes) == 0 {
		return nil, errors.Wrapf(ErrEmptyRoad, "last node of road '%s'", r.Name())
	}
	return r.nodes[len(r.nodes)-1], nil
}

// IsFirstNode reports whether given node instance heads the chain.
// Identity comparison, not value equality
func (r *Road) IsFirstNode(node RoadNode) bool {
	return len(r.nodes) > 0 && r.nodes[0] == node
}

// IsLastNode reports whether given node instance ends the chain.
// Identity comparison, not value equality
func (r *Road) IsLastNode(node RoadNode) bool {
	return len(r.nodes) > 0 && r.nodes[len(r.nodes)-1] == node
}

// ReplaceNodeAt swaps the node whose center exactly equals given point for
// newNode. The new node is registered before the old one is unregistered,
// so a transient double registration is possible mid-swap. Returns
// ErrNodeNotFound when no center matches exactly
func (r *Road) ReplaceNodeAt(point orb.Point, newNode RoadNode) error {
	index := r.indexOfNodeAt(point)
	if index < 0 {
		return errors.Wrapf(ErrNodeNotFound, "replace at %v in road '%s'", point, r.Name())
	}
	oldNode := r.nodes[index]
	r.nodes[index] = newNode
	newNode.AddedTo(r)
	oldNode.RemovedFrom(r)
	return nil
}

// TrimRedundantNodes drops interior nodes whose turn angle does not exceed
// the threshold (degrees), collapsing near-collinear runs. The incoming
// vector of each candidate is measured from the last RETAINED node, so many
// small same-direction turns accumulate instead of silently erasing a
// curve. First node, last node and every intersection node always survive.
// A chain of fewer than 3 nodes is left untouched.
//
// The point index is not rebuilt and may keep entries for dropped nodes
func (r *Road) TrimRedundantNodes(angle float64) {
	if len(r.nodes) < 3 {
		return
	}
	previousNode := r.nodes[0]
	trimmedNodes := []RoadNode{previousNode}
	for index := 1; index < len(r.nodes)-1; index++ {
		currentNode := r.nodes[index]
		followingNode := r.nodes[index+1]
		previousVector := subPoints(currentNode.Center(), previousNode.Center())
		followingVector := subPoints(followingNode.Center(), currentNode.Center())
		if currentNode.IsIntersection() ||
			math.Abs(angleBetweenVectors(previousVector, followingVector)) > angle {
			trimmedNodes = append(trimmedNodes, currentNode)
			previousNode = currentNode
		}
	}
	trimmedNodes = append(trimmedNodes, r.nodes[len(r.nodes)-1])
	r.nodes = trimmedNodes
}

/* Comparison */

// Equal reports value equality: same width and element-wise equal node
// chains. Two roads without any lanes compare on nodes alone, a lane-less
// road never equals a laned one. Equality is weak with respect to lanes:
// two different lane sets yielding the same width compare equal
func (r *Road) Equal(other *Road) bool {
	if other == nil {
		return false
	}
	if (len(r.lanes) == 0) != (len(other.lanes) == 0) {
		return false
	}
	if len(r.lanes) > 0 {
		widthA, _ := r.Width()
		widthB, _ := other.Width()
		if widthA != widthB {
			return false
		}
	}
	if len(r.nodes) != len(other.nodes) {
		return false
	}
	for i := range r.nodes {
		if !NodesEqual(r.nodes[i], other.nodes[i]) {
			return false
		}
	}
	return true
}

// Hash returns a digest of (width, node chain) for use as a key in
// hash-based containers. Mutating nodes or lanes of a road while it is used
// as a key invalidates the key
func (r *Road) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)
	if len(r.lanes) > 0 {
		width, _ := r.Width()
		binary.BigEndian.PutUint64(buf, math.Float64bits(width))
		h.Write(buf)
	}
	for _, node := range r.nodes {
		if node.IsIntersection() {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
		binary.BigEndian.PutUint64(buf, math.Float64bits(node.Center().X()))
		h.Write(buf)
		binary.BigEndian.PutUint64(buf, math.Float64bits(node.Center().Y()))
		h.Write(buf)
	}
	return h.Sum64()
}

func (r *Road) String() string {
	parts := make([]string, len(r.nodes))
	for i, node := range r.nodes {
		parts[i] = fmt.Sprintf("%v", node)
	}
	return fmt.Sprintf("Road: %s", strings.Join(parts, ","))
}

/* Internals */

func (r *Road) addNode(node RoadNode) {
	r.nodes = append(r.nodes, node)
	node.AddedTo(r)
}

// nodeAtExact returns the node whose center equals point exactly, or nil
func (r *Road) nodeAtExact(point orb.Point) RoadNode {
	index := r.indexOfNodeAt(point)
	if index < 0 {
		return nil
	}
	return r.nodes[index]
}

// indexOfNodeAt returns index of the node whose center equals point
// exactly, or -1
func (r *Road) indexOfNodeAt(point orb.Point) int {
	for index, node := range r.nodes {
		if node.Center() == point {
			return index
		}
	}
	return -1
}

func subPoints(p, q orb.Point) orb.Point {
	return orb.Point{p.X() - q.X(), p.Y() - q.Y()}
}
