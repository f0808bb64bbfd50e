package pkg

// enum of node kind
type NodeKind uint8

const (
	STREET_NODE NodeKind = iota
	STATION_NODE
	ACCESS_NODE
	ENDPOINT_NODE
)

func (k NodeKind) String() string {
	switch k {
	case STREET_NODE:
		return "Street"
	case STATION_NODE:
		return "Station"
	case ACCESS_NODE:
		return "Access"
	case ENDPOINT_NODE:
		return "Endpoint"
	default:
		return "Unknown"
	}
}

// enum of edge kind
type EdgeKind uint8

const (
	STREET_EDGE EdgeKind = iota
	RAILWAY_EDGE
	LINK_EDGE
	ACCESS_EDGE
)

func (k EdgeKind) String() string {
	switch k {
	case STREET_EDGE:
		return "Street"
	case RAILWAY_EDGE:
		return "Railway"
	case LINK_EDGE:
		return "Link"
	case ACCESS_EDGE:
		return "Access"
	default:
		return "Unknown"
	}
}

func GetEdgeKind(kind string) (EdgeKind, bool) {
	switch kind {
	case "Street", "street":
		return STREET_EDGE, true
	case "Railway", "railway":
		return RAILWAY_EDGE, true
	case "Link", "link":
		return LINK_EDGE, true
	case "Access", "access":
		return ACCESS_EDGE, true
	default:
		return STREET_EDGE, false
	}
}

// speed table in meter/second
const (
	RAILWAY_SPEED = 7.2
	LINK_SPEED    = 0.8
	WALK_SPEED    = 1.4
)

const (
	INF_WEIGHT float64 = 1e15

	// floating point tolerance used for nearest-node tie-breaking, in meter
	NEAREST_TIE_EPSILON = 1e-6

	// distance assigned to an access->street link when the access sits exactly on a street node
	MIN_LINK_DISTANCE = 0.1

	STREET_EDGE_COLOUR   = "#FAF660"
	LINK_STREET_COLOUR   = "#F3A83B"
	ENDPOINT_EDGE_COLOUR = "#000000"
	TRANSIT_BLACK_COLOUR = "#000000"
)

const (
	DEBUG = false
)
