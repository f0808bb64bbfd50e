package fusion

import (
	"context"
	"math"
	"testing"

	"github.com/lintang-b-s/metronav/pkg"
	"github.com/lintang-b-s/metronav/pkg/costfunction"
	da "github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/network"
	"github.com/lintang-b-s/metronav/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testStreet() *network.StreetNetwork {
	return network.NewStreetNetwork(
		[]network.StreetNode{
			{ID: 1, Location: geo.NewCoordinate(0, 0)},
			{ID: 2, Location: geo.NewCoordinate(0.001, 0)},
			{ID: 3, Location: geo.NewCoordinate(0.002, 0)},
		},
		[]network.StreetEdge{
			{From: 1, To: 2, Length: 111},
			{From: 2, To: 3, Length: 111},
		},
	)
}

func testStations() []network.Station {
	return []network.Station{
		{ID: "s1", Name: "North", Line: "L1", Code: "C1", Order: 1, Colour: "#DC241F", Location: geo.NewCoordinate(0.0005, 0.0005)},
		{ID: "s2", Name: "South", Line: "L1", Code: "C2", Order: 2, Colour: "#DC241F", Location: geo.NewCoordinate(0.0015, 0.0005)},
	}
}

func testAccesses() []network.Access {
	return []network.Access{
		{ID: "a1", StationCode: "C1", Location: geo.NewCoordinate(0.0001, 0.0001)},
		// exactly on street node 3
		{ID: "a2", StationCode: "C2", Location: geo.NewCoordinate(0.002, 0)},
	}
}

func newTestFuser() *Fuser {
	return NewFuser(costfunction.NewTimeCostFunction(), 2, zap.NewNop())
}

func TestFuse(t *testing.T) {
	transit := network.BuildTransitNetwork(testStations(), testAccesses())
	g, streetIndex, err := newTestFuser().Fuse(context.Background(), testStreet(), transit)
	require.NoError(t, err)

	assert.Equal(t, 7, g.NumberOfNodes())
	// 2 street + 2 access + 1 railway + 2 access links
	assert.Equal(t, 7, g.NumberOfEdges())
	assert.Equal(t, 3, streetIndex.Len())
	assert.Equal(t, 1, g.NumberOfComponents())
	require.NoError(t, ValidateCityGraph(g))

	index := func(id da.NodeID) da.Index {
		u, ok := g.GetNodeIndex(id)
		require.True(t, ok, id)
		return u
	}

	link, ok := g.FindEdge(index(da.AccessNodeID("a1")), index(da.StreetNodeID(1)))
	require.True(t, ok)
	assert.Equal(t, pkg.STREET_EDGE, link.GetKind())
	assert.Equal(t, pkg.LINK_STREET_COLOUR, link.GetColour())
	assert.InDelta(t, geo.HaversineMeters(geo.NewCoordinate(0.0001, 0.0001), geo.NewCoordinate(0, 0)), link.GetLength(), 1e-9)

	clamped, ok := g.FindEdge(index(da.AccessNodeID("a2")), index(da.StreetNodeID(3)))
	require.True(t, ok)
	assert.Equal(t, pkg.MIN_LINK_DISTANCE, clamped.GetLength())

	rail, ok := g.FindEdge(index(da.StationNodeID("s1")), index(da.StationNodeID("s2")))
	require.True(t, ok)
	assert.Equal(t, pkg.RAILWAY_EDGE, rail.GetKind())
	assert.Equal(t, "#DC241F", rail.GetColour())
	assert.InDelta(t, rail.GetLength()/pkg.RAILWAY_SPEED, rail.GetWeight(), 1e-9)

	g.ForEdges(func(e *da.Edge) {
		assert.InDelta(t, costfunction.TravelTime(e.GetKind(), e.GetLength()), e.GetWeight(), 1e-9)
	})
}

func TestFuseDropsDegenerateEdges(t *testing.T) {
	street := testStreet()
	street.Edges = append(street.Edges,
		network.StreetEdge{From: 1, To: 1, Length: 10},
		network.StreetEdge{From: 1, To: 3, Length: 0},
	)
	transit := network.BuildTransitNetwork(testStations(), testAccesses())

	g, _, err := newTestFuser().Fuse(context.Background(), street, transit)
	require.NoError(t, err)
	assert.Equal(t, 7, g.NumberOfEdges())
	_, ok := g.FindEdge(0, 2)
	assert.False(t, ok)
}

func TestFuseKeepsColocatedTransitEdges(t *testing.T) {
	hub := geo.NewCoordinate(0.0005, 0.0005)
	stations := append(testStations(),
		network.Station{ID: "s3", Name: "North", Line: "L2", Code: "C3", Order: 1, Colour: "#FFD700", Location: hub})
	stations[0].Location = hub
	accesses := testAccesses()
	// on top of its station
	accesses[0].Location = hub

	transit := network.BuildTransitNetwork(stations, accesses)
	g, _, err := newTestFuser().Fuse(context.Background(), testStreet(), transit)
	require.NoError(t, err)
	require.NoError(t, ValidateCityGraph(g))

	index := func(id da.NodeID) da.Index {
		u, ok := g.GetNodeIndex(id)
		require.True(t, ok, id)
		return u
	}

	transfer, ok := g.FindEdge(index(da.StationNodeID("s1")), index(da.StationNodeID("s3")))
	require.True(t, ok)
	assert.Equal(t, pkg.LINK_EDGE, transfer.GetKind())
	assert.Equal(t, pkg.MIN_LINK_DISTANCE, transfer.GetLength())
	assert.InDelta(t, pkg.MIN_LINK_DISTANCE/pkg.LINK_SPEED, transfer.GetWeight(), 1e-9)

	access, ok := g.FindEdge(index(da.AccessNodeID("a1")), index(da.StationNodeID("s1")))
	require.True(t, ok)
	assert.Equal(t, pkg.ACCESS_EDGE, access.GetKind())
	assert.Equal(t, pkg.MIN_LINK_DISTANCE, access.GetLength())
}

func TestFuseAccessWithoutStationMessage(t *testing.T) {
	accesses := append(testAccesses(),
		network.Access{ID: "a3", StationCode: "missing", Location: geo.NewCoordinate(0.001, 0)})
	transit := network.BuildTransitNetwork(testStations(), accesses)

	_, _, err := newTestFuser().Fuse(context.Background(), testStreet(), transit)
	require.ErrorIs(t, err, util.ErrBuild)
	assert.Contains(t, err.Error(), "access a3 has no matching station missing")
}

func TestValidateReportsMissingAccessEdge(t *testing.T) {
	b := da.NewGraphBuilder(costfunction.NewTimeCostFunction())
	st := b.AddNode(da.NewStreetNode(da.StreetNodeID(1), geo.NewCoordinate(0, 0)))
	s1 := b.AddNode(da.NewStationNode(da.StationNodeID("s1"), geo.NewCoordinate(0, 0.001), "North", "L1", 1, "#DC241F"))
	s2 := b.AddNode(da.NewStationNode(da.StationNodeID("s2"), geo.NewCoordinate(0, 0.002), "South", "L1", 2, "#DC241F"))
	a1 := b.AddNode(da.NewAccessNode(da.AccessNodeID("a1"), geo.NewCoordinate(0, 0.0005), "", "C1", ""))
	_, err := b.AddEdge(s1, s2, pkg.RAILWAY_EDGE, 111, "#DC241F")
	require.NoError(t, err)
	_, err = b.AddEdge(a1, st, pkg.STREET_EDGE, 55, pkg.LINK_STREET_COLOUR)
	require.NoError(t, err)

	err = ValidateCityGraph(b.Build())
	require.ErrorIs(t, err, util.ErrBuild)
	assert.Contains(t, err.Error(), "has no access edge to its station")
}

func TestFuseBuildErrors(t *testing.T) {
	transit := func() *network.TransitNetwork {
		return network.BuildTransitNetwork(testStations(), testAccesses())
	}

	testCases := []struct {
		name    string
		street  *network.StreetNetwork
		transit *network.TransitNetwork
	}{
		{name: "nil street network", street: nil, transit: transit()},
		{name: "empty street network", street: network.NewStreetNetwork(nil, nil), transit: transit()},
		{name: "empty transit network", street: testStreet(), transit: network.NewTransitNetwork(nil, nil, nil)},
		{
			name: "street edge to unknown node",
			street: network.NewStreetNetwork(testStreet().Nodes,
				[]network.StreetEdge{{From: 1, To: 99, Length: 10}}),
			transit: transit(),
		},
		{
			name: "invalid street location",
			street: network.NewStreetNetwork([]network.StreetNode{{ID: 1, Location: geo.NewCoordinate(math.NaN(), 0)}},
				nil),
			transit: transit(),
		},
		{
			name:   "access without station",
			street: testStreet(),
			transit: network.BuildTransitNetwork(testStations(), append(testAccesses(),
				network.Access{ID: "a3", StationCode: "missing", Location: geo.NewCoordinate(0.001, 0)})),
		},
		{
			name:   "station outside the transit topology",
			street: testStreet(),
			transit: network.BuildTransitNetwork(append(testStations(),
				network.Station{ID: "s3", Name: "Lonely", Line: "L9", Code: "C9", Order: 1, Location: geo.NewCoordinate(0.001, 0.001)}),
				testAccesses()),
		},
		{
			name:   "transit edge to unknown node",
			street: testStreet(),
			transit: network.NewTransitNetwork(testStations(), testAccesses(), []network.TransitEdge{
				{From: da.StationNodeID("s1"), To: da.StationNodeID("nope"), Kind: pkg.RAILWAY_EDGE},
			}),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newTestFuser().Fuse(context.Background(), tt.street, tt.transit)
			assert.ErrorIs(t, err, util.ErrBuild)
		})
	}
}
