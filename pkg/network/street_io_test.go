package network

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreetNetworkRoundTrip(t *testing.T) {
	sn := NewStreetNetwork(
		[]StreetNode{
			{ID: 101, Location: geo.NewCoordinate(2.1734035, 41.3850639)},
			{ID: 102, Location: geo.NewCoordinate(2.1741, 41.3855)},
			{ID: 4294967396, Location: geo.NewCoordinate(-0.000001, -0.5)},
		},
		[]StreetEdge{
			{From: 101, To: 102, Length: 78.25},
			{From: 102, To: 4294967396, Length: 0.1},
		},
	)

	filename := filepath.Join(t.TempDir(), "street.graph")
	require.NoError(t, WriteStreetNetwork(filename, sn))

	got, err := ReadStreetNetwork(filename)
	require.NoError(t, err)
	assert.Equal(t, sn, got)
	assert.Equal(t, 3, got.NumberOfNodes())
	assert.Equal(t, 2, got.NumberOfEdges())
}

func TestReadStreetNetworkErrors(t *testing.T) {
	_, err := ReadStreetNetwork(filepath.Join(t.TempDir(), "missing.graph"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	// not bzip2
	filename := filepath.Join(t.TempDir(), "plain.graph")
	require.NoError(t, os.WriteFile(filename, []byte("1 0\n1 2.17 41.38\n"), 0644))
	_, err = ReadStreetNetwork(filename)
	assert.Error(t, err)
}
