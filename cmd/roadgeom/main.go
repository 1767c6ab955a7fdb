package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/LdDl/ch"
	"github.com/citygen/roadgeom"
	"github.com/paulmach/orb"
)

var (
	tagStr        = flag.String("tags", "motorway,primary,primary_link,road,secondary,secondary_link,residential,tertiary,tertiary_link,unclassified,trunk,trunk_link,motorway_link", "Set of needed tags (separated by commas)")
	osmFileName   = flag.String("file", "my_graph.osm.pbf", "Filename of *.osm.pbf file (it has to be compressed)")
	out           = flag.String("out", "my_graph.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file. E.g.: if file name is 'map.csv' then 3 files will be produced: 'map.csv' (edges), 'map_vertices.csv', 'map_shortcuts.csv'")
	geomFormat    = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson / polyline")
	units         = flag.String("units", "km", "Units of output weights. Expected values: km for kilometers / m for meters")
	trimAngle     = flag.Float64("trim", -1.0, "Angle threshold (degrees) for dropping near-collinear road nodes. Negative value disables trimming")
	doContraction = flag.Bool("contract", true, "Prepare contraction hierarchies?")
)

func main() {

	flag.Parse()

	tags := strings.Split(*tagStr, ",")
	cfg := roadgeom.OsmConfiguration{
		EntityName: "highway", // Currently we do not support others
		Tags:       tags,
	}

	roads, err := roadgeom.ImportRoadsFromOSMFile(*osmFileName, &cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	if *trimAngle >= 0 {
		fmt.Printf("Trimming redundant nodes...")
		st := time.Now()
		before, after := 0, 0
		for _, road := range roads {
			before += road.NodeCount()
			road.TrimRedundantNodes(*trimAngle)
			after += road.NodeCount()
		}
		fmt.Printf("Done in %v\n\tNodes: %d -> %d\n", time.Since(st), before, after)
	}

	fnamePart := strings.Split(*out, ".csv") // to guarantee proper filename and its extension
	fnameEdges := fmt.Sprintf(fnamePart[0] + ".csv")
	fnameVertices := fmt.Sprintf(fnamePart[0] + "_vertices.csv")
	fnameShortcuts := fmt.Sprintf(fnamePart[0] + "_shortcuts.csv")

	/* Edges file */
	fileEdges, err := os.Create(fnameEdges)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer fileEdges.Close()
	writerEdges := csv.NewWriter(fileEdges)
	defer writerEdges.Flush()
	writerEdges.Comma = ';'
	// 		from_vertex_id - int64, ID of source vertex
	// 		to_vertex_id - int64, ID of target vertex
	// 		weight - float64, Weight of an edge (meters/kilometers)
	// 		geom - geometry of the segment (WKT, GeoJSON or encoded polyline)
	// 		road_name - name of the parent road (may be empty)
	// 		edge_id - int64, ID of generated edge
	err = writerEdges.Write([]string{"from_vertex_id", "to_vertex_id", "weight", "geom", "road_name", "edge_id"})
	if err != nil {
		fmt.Println(err)
		return
	}

	/* Vertices file */
	fileVertices, err := os.Create(fnameVertices)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer fileVertices.Close()
	writerVertices := csv.NewWriter(fileVertices)
	defer writerVertices.Flush()
	writerVertices.Comma = ';'
	// 		vertex_id - int64, ID of vertex
	// 		order_pos - int, Position of vertex in hierarchies (evaluated by library)
	// 		importance - int, Importance of vertex in graph (evaluated by library)
	// 		geom - geometry (WKT, GeoJSON or encoded polyline representation)
	err = writerVertices.Write([]string{"vertex_id", "order_pos", "importance", "geom"})
	if err != nil {
		fmt.Println(err)
		return
	}

	// Shared intersection nodes keep a single vertex ID across roads
	vertexIDs := make(map[roadgeom.RoadNode]int64)
	verticesGeoms := make(map[int64]orb.Point)
	nextVertexID := int64(0)
	vertexID := func(node roadgeom.RoadNode) int64 {
		if id, ok := vertexIDs[node]; ok {
			return id
		}
		id := nextVertexID
		nextVertexID++
		vertexIDs[node] = id
		verticesGeoms[id] = node.Center()
		return id
	}

	graph := ch.Graph{}
	edgeID := int64(0)

	// Prepare graph and write edges
	for _, road := range roads {
		nodes := road.Nodes()
		for i := 1; i < len(nodes); i++ {
			source := vertexID(nodes[i-1])
			target := vertexID(nodes[i])
			err := graph.CreateVertex(source)
			if err != nil {
				fmt.Println(err)
				return
			}
			err = graph.CreateVertex(target)
			if err != nil {
				fmt.Println(err)
				return
			}
			segment := orb.LineString{nodes[i-1].Center(), nodes[i].Center()}
			cost := roadgeom.GreatCircleLength(segment)
			if strings.ToLower(*units) == "m" {
				cost *= 1000.0
			}
			err = graph.AddEdge(source, target, cost)
			if err != nil {
				fmt.Println(err)
				return
			}

			geomStr := ""
			switch strings.ToLower(*geomFormat) {
			case "geojson":
				geomStr = roadgeom.PrepareGeoJSONLinestring(segment)
			case "polyline":
				geomStr = roadgeom.PrepareEncodedPolyline(segment)
			default:
				geomStr = roadgeom.PrepareWKTLinestring(segment)
			}

			err = writerEdges.Write([]string{
				fmt.Sprintf("%d", source),
				fmt.Sprintf("%d", target),
				fmt.Sprintf("%f", cost),
				geomStr,
				road.Name(),
				fmt.Sprintf("%d", edgeID),
			})
			if err != nil {
				fmt.Println(err)
				return
			}
			edgeID++
		}
	}

	if *doContraction {
		fmt.Println("Starting contraction process....")
		st := time.Now()
		graph.PrepareContractionHierarchies()
		fmt.Printf("Done contraction process in %v\n", time.Since(st))
	}

	/* Write vertices */
	vertices := graph.Vertices
	for i := 0; i < len(vertices); i++ {
		currentVertexExternal := vertices[i].Label
		vertexGeom := verticesGeoms[currentVertexExternal]
		geomStr := ""
		switch strings.ToLower(*geomFormat) {
		case "geojson":
			geomStr = roadgeom.PrepareGeoJSONPoint(vertexGeom)
		case "polyline":
			geomStr = roadgeom.PrepareEncodedPolyline(orb.LineString{vertexGeom})
		default:
			geomStr = roadgeom.PrepareWKTPoint(vertexGeom)
		}
		err = writerVertices.Write([]string{
			fmt.Sprintf("%d", currentVertexExternal),
			fmt.Sprintf("%d", graph.Vertices[i].OrderPos()),
			fmt.Sprintf("%d", graph.Vertices[i].Importance()),
			geomStr,
		})
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	if *doContraction {
		/* Write shortcuts */
		// 	from_vertex_id - int64, ID of source vertex
		// 	to_vertex_id - int64, ID of target vertex
		// 	weight - float64, Weight of an edge
		// 	via_vertex_id - int64, ID of vertex through which the shortcut exists
		err = graph.ExportShortcutsToFile(fnameShortcuts)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}
