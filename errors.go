package roadgeom

import (
	"github.com/pkg/errors"
)

// Precondition violations surfaced by Road and Lane accessors. All of them
// are terminal for the failed call; nothing is retried internally.
var (
	// ErrEmptyRoad is returned by accessors which require at least one node
	ErrEmptyRoad = errors.New("road has no nodes")
	// ErrNoLanes is returned by width-dependent queries on a road without lanes
	ErrNoLanes = errors.New("road has no lanes")
	// ErrNodeNotFound is returned when no node center matches a given point exactly
	ErrNodeNotFound = errors.New("no node at given point")
	// ErrIndexOutOfRange is returned by positional accessors for bad indices
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidLaneWidth is returned when constructing a lane with width <= 0
	ErrInvalidLaneWidth = errors.New("lane width must be positive")
)
