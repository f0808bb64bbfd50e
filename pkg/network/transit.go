package network

import (
	"sort"

	"github.com/lintang-b-s/metronav/pkg"
	da "github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/geo"
)

// Station. one station of one line. a physical station served by n lines appears n times with
// the same Name and Code.
type Station struct {
	ID       string
	Name     string
	Line     string
	Location geo.Coordinate
	Code     string
	Order    int
	Colour   string
}

func (s Station) NodeID() da.NodeID {
	return da.StationNodeID(s.ID)
}

// Access. street entrance of the station with code StationCode.
type Access struct {
	ID            string
	Name          string
	Location      geo.Coordinate
	StationCode   string
	Accessibility string
}

func (a Access) NodeID() da.NodeID {
	return da.AccessNodeID(a.ID)
}

// TransitEdge. Distance 0 means not supplied, the fuser derives it from the endpoint coordinates.
type TransitEdge struct {
	From     da.NodeID
	To       da.NodeID
	Kind     pkg.EdgeKind
	Colour   string
	Distance float64
}

type TransitNetwork struct {
	Stations []Station
	Accesses []Access
	Edges    []TransitEdge
}

func NewTransitNetwork(stations []Station, accesses []Access, edges []TransitEdge) *TransitNetwork {
	return &TransitNetwork{
		Stations: stations,
		Accesses: accesses,
		Edges:    edges,
	}
}

func (tn *TransitNetwork) IsEmpty() bool {
	return tn == nil || len(tn.Stations) == 0
}

type lineOrder struct {
	line  string
	order int
}

// BuildTransitNetwork. derives the transit topology from plain station and access lists:
//   - Access: access -> first station (input order) whose Code equals the access StationCode.
//   - Link: stations with the same name on different lines (transfer).
//   - Railway: stations k and k+1 of the same line, coloured with the line colour.
//
// an access without a matching station gets no edge.
func BuildTransitNetwork(stations []Station, accesses []Access) *TransitNetwork {
	edges := make([]TransitEdge, 0, len(stations)*2+len(accesses))

	firstByCode := make(map[string]Station, len(stations))
	for _, s := range stations {
		if _, ok := firstByCode[s.Code]; !ok {
			firstByCode[s.Code] = s
		}
	}
	for _, a := range accesses {
		s, ok := firstByCode[a.StationCode]
		if !ok {
			continue
		}
		edges = append(edges, TransitEdge{
			From:   s.NodeID(),
			To:     a.NodeID(),
			Kind:   pkg.ACCESS_EDGE,
			Colour: pkg.TRANSIT_BLACK_COLOUR,
		})
	}

	byName := make(map[string][]Station)
	names := make([]string, 0)
	for _, s := range stations {
		if _, ok := byName[s.Name]; !ok {
			names = append(names, s.Name)
		}
		byName[s.Name] = append(byName[s.Name], s)
	}
	for _, name := range names {
		group := byName[name]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if group[i].Line == group[j].Line {
					continue
				}
				edges = append(edges, TransitEdge{
					From:   group[i].NodeID(),
					To:     group[j].NodeID(),
					Kind:   pkg.LINK_EDGE,
					Colour: pkg.TRANSIT_BLACK_COLOUR,
				})
			}
		}
	}

	byLineOrder := make(map[lineOrder]Station, len(stations))
	for _, s := range stations {
		byLineOrder[lineOrder{line: s.Line, order: s.Order}] = s
	}
	for _, s := range stations {
		next, ok := byLineOrder[lineOrder{line: s.Line, order: s.Order + 1}]
		if !ok {
			continue
		}
		edges = append(edges, TransitEdge{
			From:   s.NodeID(),
			To:     next.NodeID(),
			Kind:   pkg.RAILWAY_EDGE,
			Colour: s.Colour,
		})
	}

	return NewTransitNetwork(stations, accesses, edges)
}

// Lines. distinct line names, sorted.
func (tn *TransitNetwork) Lines() []string {
	seen := make(map[string]struct{})
	lines := make([]string, 0)
	for _, s := range tn.Stations {
		if _, ok := seen[s.Line]; ok {
			continue
		}
		seen[s.Line] = struct{}{}
		lines = append(lines, s.Line)
	}
	sort.Strings(lines)
	return lines
}
