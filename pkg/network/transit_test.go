package network

import (
	"testing"

	"github.com/lintang-b-s/metronav/pkg"
	da "github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/stretchr/testify/assert"
)

func testStations() []Station {
	return []Station{
		{ID: "1", Name: "Catalunya", Line: "L1", Code: "C1", Order: 1, Colour: "#DC241F", Location: geo.NewCoordinate(2.170, 41.386)},
		{ID: "2", Name: "Universitat", Line: "L1", Code: "C2", Order: 2, Colour: "#DC241F", Location: geo.NewCoordinate(2.164, 41.385)},
		{ID: "3", Name: "Catalunya", Line: "L3", Code: "C1", Order: 5, Colour: "#47B53F", Location: geo.NewCoordinate(2.171, 41.387)},
		{ID: "4", Name: "Liceu", Line: "L3", Code: "C4", Order: 6, Colour: "#47B53F", Location: geo.NewCoordinate(2.173, 41.381)},
		{ID: "5", Name: "Urquinaona", Line: "L1", Code: "C5", Order: 4, Colour: "#DC241F", Location: geo.NewCoordinate(2.173, 41.389)},
	}
}

func TestBuildTransitNetwork(t *testing.T) {
	accesses := []Access{
		{ID: "a1", Name: "Rambla", StationCode: "C1", Location: geo.NewCoordinate(2.1702, 41.3862)},
		{ID: "a2", Name: "Pelai", StationCode: "C2", Location: geo.NewCoordinate(2.1642, 41.3852)},
		{ID: "a3", Name: "orphan", StationCode: "X", Location: geo.NewCoordinate(2.1, 41.3)},
	}
	tn := BuildTransitNetwork(testStations(), accesses)

	byKind := make(map[pkg.EdgeKind][]TransitEdge)
	for _, e := range tn.Edges {
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}

	// the first station with code C1 in input order is station 1
	assert.ElementsMatch(t, []TransitEdge{
		{From: da.StationNodeID("1"), To: da.AccessNodeID("a1"), Kind: pkg.ACCESS_EDGE, Colour: pkg.TRANSIT_BLACK_COLOUR},
		{From: da.StationNodeID("2"), To: da.AccessNodeID("a2"), Kind: pkg.ACCESS_EDGE, Colour: pkg.TRANSIT_BLACK_COLOUR},
	}, byKind[pkg.ACCESS_EDGE])

	assert.Equal(t, []TransitEdge{
		{From: da.StationNodeID("1"), To: da.StationNodeID("3"), Kind: pkg.LINK_EDGE, Colour: pkg.TRANSIT_BLACK_COLOUR},
	}, byKind[pkg.LINK_EDGE])

	// Universitat (2) and Urquinaona (4) are not consecutive on L1
	assert.ElementsMatch(t, []TransitEdge{
		{From: da.StationNodeID("1"), To: da.StationNodeID("2"), Kind: pkg.RAILWAY_EDGE, Colour: "#DC241F"},
		{From: da.StationNodeID("3"), To: da.StationNodeID("4"), Kind: pkg.RAILWAY_EDGE, Colour: "#47B53F"},
	}, byKind[pkg.RAILWAY_EDGE])

	assert.Equal(t, []string{"L1", "L3"}, tn.Lines())
	assert.False(t, tn.IsEmpty())
}

func TestEmptyNetworks(t *testing.T) {
	var tn *TransitNetwork
	assert.True(t, tn.IsEmpty())
	assert.True(t, BuildTransitNetwork(nil, nil).IsEmpty())

	var sn *StreetNetwork
	assert.True(t, sn.IsEmpty())
	assert.True(t, NewStreetNetwork(nil, nil).IsEmpty())
}
