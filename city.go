package roadgeom

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// City is a named collection of roads with spatial queries over their
// centerline bounds. Queries go through an R-tree index built lazily on
// first use and invalidated by AddRoad.
type City struct {
	CityElement
	roads []*Road
	rtree *rtreego.Rtree
}

// indexedRoad wraps a road for R-tree storage with its bound frozen at
// index build time
type indexedRoad struct {
	road  *Road
	bound orb.Bound
}

// Bounds implements rtreego.Spatial interface
func (ir *indexedRoad) Bounds() rtreego.Rect {
	point := rtreego.Point{ir.bound.Min.X(), ir.bound.Min.Y()}

	lonLength := ir.bound.Max.X() - ir.bound.Min.X()
	latLength := ir.bound.Max.Y() - ir.bound.Min.Y()

	// R-tree requires non-zero dimensions, single-point roads get a small
	// epsilon extent
	const epsilon = 0.0001
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{lonLength, latLength})
	return rect
}

// NewCity creates an empty city
func NewCity(name string) *City {
	city := &City{roads: []*Road{}}
	city.SetName(name)
	return city
}

// AddRoad adds a road to the city and invalidates the spatial index
func (c *City) AddRoad(road *Road) {
	c.roads = append(c.roads, road)
	c.rtree = nil
}

// Roads returns roads in insertion order
func (c *City) Roads() []*Road {
	return c.roads
}

// RoadCount returns number of roads in the city
func (c *City) RoadCount() int {
	return len(c.roads)
}

// RoadsInBounds returns roads whose centerline bound intersects the given
// box
func (c *City) RoadsInBounds(bound orb.Bound) []*Road {
	c.ensureIndex()
	if c.rtree == nil {
		// Nothing indexed
		return nil
	}
	point := rtreego.Point{bound.Min.X(), bound.Min.Y()}
	lengths := []float64{
		bound.Max.X() - bound.Min.X(),
		bound.Max.Y() - bound.Min.Y(),
	}
	queryRect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}
	spatials := c.rtree.SearchIntersect(queryRect)
	result := make([]*Road, 0, len(spatials))
	for _, spatial := range spatials {
		result = append(result, spatial.(*indexedRoad).road)
	}
	return result
}

// RoadsThroughPoint returns roads passing through the given point, within
// the tolerance of IncludesControlPoint
func (c *City) RoadsThroughPoint(point orb.Point) []*Road {
	const pad = 0.0001
	candidates := c.RoadsInBounds(orb.Bound{
		Min: orb.Point{point.X() - pad, point.Y() - pad},
		Max: orb.Point{point.X() + pad, point.Y() + pad},
	})
	result := make([]*Road, 0, len(candidates))
	for _, road := range candidates {
		if road.IncludesControlPoint(point) {
			result = append(result, road)
		}
	}
	return result
}

// PromoteIntersections replaces coincident control points of different
// roads with a single shared IntersectionNode per location. Candidate road
// pairs are narrowed with the spatial index, coincidence means exact
// coordinate equality. Returns number of junctions created or extended
func (c *City) PromoteIntersections() int {
	promoted := 0
	for i, road := range c.roads {
		for _, point := range road.ControlPoints() {
			for j := i + 1; j < len(c.roads); j++ {
				other := c.roads[j]
				otherNode := other.nodeAtExact(point)
				if otherNode == nil {
					continue
				}
				node := road.nodeAtExact(point)
				if node == nil {
					// Already swapped out by an earlier pair on this walk
					continue
				}
				if node.IsIntersection() && node == otherNode {
					continue
				}
				junction := c.junctionFor(node, otherNode, point)
				if node != junction {
					if err := road.ReplaceNodeAt(point, junction); err == nil {
						promoted++
					}
				}
				if otherNode != junction {
					if err := other.ReplaceNodeAt(point, junction); err == nil {
						promoted++
					}
				}
			}
		}
	}
	if promoted > 0 {
		c.rtree = nil
	}
	return promoted
}

// junctionFor reuses an existing intersection node at the location when one
// of the two coincident nodes already is one
func (c *City) junctionFor(a, b RoadNode, point orb.Point) RoadNode {
	if a.IsIntersection() {
		return a
	}
	if b.IsIntersection() {
		return b
	}
	return NewIntersectionNode(point)
}

func (c *City) ensureIndex() {
	if c.rtree != nil || len(c.roads) == 0 {
		return
	}
	c.rtree = rtreego.NewTree(2, 25, 50)
	for _, road := range c.roads {
		if road.NodeCount() == 0 {
			continue
		}
		bound := centerlineBound(road)
		c.rtree.Insert(&indexedRoad{road: road, bound: bound})
	}
}

// centerlineBound returns the bound of the raw node chain, without lane
// width inflation (roads in a city may not have lanes yet)
func centerlineBound(road *Road) orb.Bound {
	points := road.ControlPoints()
	bound := orb.Bound{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		bound = bound.Extend(point)
	}
	return bound
}
