package roadgeom

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

// wayData is an OSM way surviving the tag filter, before it becomes a road
type wayData struct {
	ID     osm.WayID
	name   string
	lanes  int
	oneway bool
	nodes  []osm.NodeID
}

// ImportRoadsFromOSMFile builds a Road per matching OSM way from a file of
// PBF-format (in OSM terms).
//
// Ways are filtered by given configuration. An OSM node shared by two or
// more ways becomes a single IntersectionNode instance registered to every
// road passing through it. The 'lanes' tag, when present, populates the
// lane set with DefaultLaneWidth lanes at symmetric offsets
func ImportRoadsFromOSMFile(fileName string, cfg *OsmConfiguration) ([]*Road, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer f.Close()

	scannerWays := osmpbf.New(context.Background(), f, 4)
	defer scannerWays.Close()

	ways := []wayData{}
	nodesSeen := make(map[osm.NodeID]struct{})

	fmt.Printf("Scanning ways...")
	st := time.Now()
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tagMap := way.TagMap()
		tag, ok := tagMap[cfg.EntityName]
		if !ok {
			continue
		}
		if !cfg.CheckTag(tag) {
			continue
		}
		oneway := false
		if v, ok := tagMap["oneway"]; ok {
			if v == "yes" || v == "1" {
				oneway = true
			}
		}
		lanes := 0
		if v, ok := tagMap["lanes"]; ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				lanes = parsed
			}
		}
		preparedWay := wayData{
			ID:     way.ID,
			name:   tagMap["name"],
			lanes:  lanes,
			oneway: oneway,
			nodes:  make([]osm.NodeID, 0, len(way.Nodes)),
		}
		for _, wayNode := range way.Nodes {
			preparedWay.nodes = append(preparedWay.nodes, wayNode.ID)
			nodesSeen[wayNode.ID] = struct{}{}
		}
		ways = append(ways, preparedWay)
	}
	if scannerWays.Err() != nil {
		return nil, errors.Wrap(scannerWays.Err(), "Scanner error on Ways")
	}
	fmt.Printf("Done in %v\n\tWays: %d\n", time.Since(st), len(ways))

	// Seek file to start
	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking")
	}
	scannerNodes := osmpbf.New(context.Background(), f, 4)
	defer scannerNodes.Close()

	fmt.Printf("Scanning nodes...")
	st = time.Now()
	nodeCoords := make(map[osm.NodeID]orb.Point)
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; ok {
			delete(nodesSeen, node.ID)
			nodeCoords[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}
	if scannerNodes.Err() != nil {
		return nil, errors.Wrap(scannerNodes.Err(), "Scanner error on Nodes")
	}
	fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(nodeCoords))

	fmt.Printf("Counting node use cases...")
	st = time.Now()
	useCount := make(map[osm.NodeID]int)
	for _, way := range ways {
		for _, nodeID := range way.nodes {
			if _, ok := nodeCoords[nodeID]; !ok {
				return nil, fmt.Errorf("Missing node with id: %d", nodeID)
			}
			useCount[nodeID]++
		}
	}
	fmt.Printf("Done in %v\n", time.Since(st))

	fmt.Printf("Preparing roads...")
	st = time.Now()
	roads := make([]*Road, 0, len(ways))
	intersections := make(map[osm.NodeID]*IntersectionNode)
	totalIntersections := 0
	for _, way := range ways {
		if len(way.nodes) < 2 {
			// Skip degenerate ways
			continue
		}
		points := make([]orb.Point, len(way.nodes))
		for i, nodeID := range way.nodes {
			points[i] = nodeCoords[nodeID]
		}
		road := RoadFromControlPoints(way.name, points)
		// Promote nodes shared between ways to intersection nodes. A single
		// instance per OSM node is shared by every road through it
		for _, nodeID := range way.nodes {
			if useCount[nodeID] < 2 {
				continue
			}
			junction, ok := intersections[nodeID]
			if !ok {
				junction = NewIntersectionNode(nodeCoords[nodeID])
				intersections[nodeID] = junction
				totalIntersections++
			}
			if err := road.ReplaceNodeAt(nodeCoords[nodeID], junction); err != nil {
				return nil, errors.Wrapf(err, "Can't promote node %d", nodeID)
			}
		}
		if err := addLanesFromTag(road, way.lanes, way.oneway); err != nil {
			return nil, errors.Wrapf(err, "Can't add lanes for way %d", way.ID)
		}
		roads = append(roads, road)
	}
	fmt.Printf("Done in %v\n\tRoads: %d, intersections: %d\n", time.Since(st), len(roads), totalIntersections)
	return roads, nil
}

// addLanesFromTag lays out lane offsets symmetrically around the
// centerline. Without a usable 'lanes' tag a single forward lane is assumed
func addLanesFromTag(road *Road, lanes int, oneway bool) error {
	if lanes < 1 {
		lanes = 1
	}
	for i := 0; i < lanes; i++ {
		offset := (float64(i) - float64(lanes-1)/2.0) * DefaultLaneWidth
		reversed := !oneway && offset < 0
		if err := road.AddLaneDetailed(offset, DefaultLaneWidth, reversed); err != nil {
			return err
		}
	}
	return nil
}
