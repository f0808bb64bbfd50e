package datastructure

import (
	"strconv"
	"strings"

	"github.com/lintang-b-s/metronav/pkg"
	"github.com/lintang-b-s/metronav/pkg/geo"
)

type Index uint32

const INVALID_INDEX Index = ^Index(0)

// NodeID. namespaced node identity. street ids and transit codes live in different namespaces
// so an osm node id can never collide with a station or access code.
type NodeID string

const (
	streetPrefix   = "street/"
	stationPrefix  = "station/"
	accessPrefix   = "access/"
	endpointPrefix = "endpoint/"
)

func StreetNodeID(osmID int64) NodeID {
	return NodeID(streetPrefix + strconv.FormatInt(osmID, 10))
}

func StationNodeID(code string) NodeID {
	return NodeID(stationPrefix + code)
}

func AccessNodeID(code string) NodeID {
	return NodeID(accessPrefix + code)
}

// EndpointNodeID. role is "source" or "destination", seq is unique per process.
func EndpointNodeID(role string, seq uint64) NodeID {
	return NodeID(endpointPrefix + role + "/" + strconv.FormatUint(seq, 10))
}

func (id NodeID) IsEndpoint() bool {
	return strings.HasPrefix(string(id), endpointPrefix)
}

func (id NodeID) String() string {
	return string(id)
}

type Node struct {
	id       NodeID
	kind     pkg.NodeKind
	location geo.Coordinate

	// station
	name       string
	line       string
	lineOrder  int
	lineColour string

	// access
	stationCode   string
	accessibility string
}

func NewStreetNode(id NodeID, location geo.Coordinate) *Node {
	return &Node{
		id:       id,
		kind:     pkg.STREET_NODE,
		location: location,
	}
}

func NewStationNode(id NodeID, location geo.Coordinate, name, line string, lineOrder int, lineColour string) *Node {
	return &Node{
		id:         id,
		kind:       pkg.STATION_NODE,
		location:   location,
		name:       name,
		line:       line,
		lineOrder:  lineOrder,
		lineColour: lineColour,
	}
}

func NewAccessNode(id NodeID, location geo.Coordinate, name, stationCode, accessibility string) *Node {
	return &Node{
		id:            id,
		kind:          pkg.ACCESS_NODE,
		location:      location,
		name:          name,
		stationCode:   stationCode,
		accessibility: accessibility,
	}
}

func NewEndpointNode(id NodeID, location geo.Coordinate) *Node {
	return &Node{
		id:       id,
		kind:     pkg.ENDPOINT_NODE,
		location: location,
	}
}

func (n *Node) GetID() NodeID {
	return n.id
}

func (n *Node) GetKind() pkg.NodeKind {
	return n.kind
}

func (n *Node) GetLocation() geo.Coordinate {
	return n.location
}

func (n *Node) GetName() string {
	return n.name
}

func (n *Node) GetLine() string {
	return n.line
}

func (n *Node) GetLineOrder() int {
	return n.lineOrder
}

func (n *Node) GetLineColour() string {
	return n.lineColour
}

func (n *Node) GetStationCode() string {
	return n.stationCode
}

func (n *Node) GetAccessibility() string {
	return n.accessibility
}
