package osmparser

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func wayWithTags(kv ...string) *osm.Way {
	tags := make(osm.Tags, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		tags = append(tags, osm.Tag{Key: kv[i], Value: kv[i+1]})
	}
	return &osm.Way{Tags: tags}
}

func TestAcceptOsmWay(t *testing.T) {
	testCases := []struct {
		name string
		way  *osm.Way
		want bool
	}{
		{name: "footway", way: wayWithTags("highway", "footway"), want: true},
		{name: "residential", way: wayWithTags("highway", "residential"), want: true},
		{name: "steps", way: wayWithTags("highway", "steps"), want: true},
		{name: "motorway", way: wayWithTags("highway", "motorway"), want: false},
		{name: "no highway", way: wayWithTags("railway", "subway"), want: false},
		{name: "pedestrian area", way: wayWithTags("highway", "pedestrian", "area", "yes"), want: false},
		{name: "foot no", way: wayWithTags("highway", "primary", "foot", "no"), want: false},
		{name: "private access", way: wayWithTags("highway", "service", "access", "private"), want: false},
		{name: "private access with foot yes", way: wayWithTags("highway", "service", "access", "private", "foot", "yes"), want: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptOsmWay(tt.way))
		})
	}
}

func TestBuildStreetNetwork(t *testing.T) {
	p := NewOsmParser()
	p.acceptedNode = map[int64]geo.Coordinate{
		1: geo.NewCoordinate(0, 0),
		2: geo.NewCoordinate(0.001, 0),
		3: geo.NewCoordinate(0.001, 0.001),
	}
	p.wayNodes = [][]int64{
		{1, 2, 3},
		{3, 2},    // repeats 2-3 in the other direction
		{3, 3},    // degenerate
		{3, 4, 1}, // 4 is outside the extract
	}

	sn := p.buildStreetNetwork()
	require.Equal(t, 3, sn.NumberOfNodes())
	require.Equal(t, 2, sn.NumberOfEdges())
	assert.Equal(t, int64(1), sn.Edges[0].From)
	assert.Equal(t, int64(2), sn.Edges[0].To)
	assert.InDelta(t, 111.19, sn.Edges[0].Length, 0.01)
	assert.InDelta(t, 111.19, sn.Edges[1].Length, 0.01)
}

func TestParseMissingFile(t *testing.T) {
	_, err := NewOsmParser().Parse(context.Background(), filepath.Join(t.TempDir(), "missing.osm.pbf"), zap.NewNop())
	assert.Error(t, err)
}
