package network

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/util"
)

// WriteStreetNetwork. bzip2 compressed text:
//
//	numNodes numEdges
//	osmId lon lat        (numNodes lines)
//	fromOsmId toOsmId length (numEdges lines)
func WriteStreetNetwork(filename string, sn *StreetNetwork) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)
	fmt.Fprintf(w, "%d %d\n", len(sn.Nodes), len(sn.Edges))
	for _, n := range sn.Nodes {
		fmt.Fprintf(w, "%d %s %s\n", n.ID, util.FormatFloat(n.Location.Lon), util.FormatFloat(n.Location.Lat))
	}
	for _, e := range sn.Edges {
		fmt.Fprintf(w, "%d %d %s\n", e.From, e.To, util.FormatFloat(e.Length))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return bz.Close()
}

func ReadStreetNetwork(filename string) (*StreetNetwork, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("invalid street network header %q", line)
	}
	numNodes, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, err
	}

	nodes := make([]StreetNode, numNodes)
	for i := 0; i < numNodes; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		nodes[i], err = parseStreetNode(line)
		if err != nil {
			return nil, err
		}
	}

	edges := make([]StreetEdge, numEdges)
	for i := 0; i < numEdges; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		edges[i], err = parseStreetEdge(line)
		if err != nil {
			return nil, err
		}
	}

	return NewStreetNetwork(nodes, edges), nil
}

func parseStreetNode(line string) (StreetNode, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return StreetNode{}, fmt.Errorf("invalid street node line %q", line)
	}
	id, err := strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return StreetNode{}, err
	}
	lon, err := util.StringToFloat64(tokens[1])
	if err != nil {
		return StreetNode{}, err
	}
	lat, err := util.StringToFloat64(tokens[2])
	if err != nil {
		return StreetNode{}, err
	}
	return StreetNode{ID: id, Location: geo.NewCoordinate(lon, lat)}, nil
}

func parseStreetEdge(line string) (StreetEdge, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 3 {
		return StreetEdge{}, fmt.Errorf("invalid street edge line %q", line)
	}
	from, err := strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return StreetEdge{}, err
	}
	to, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return StreetEdge{}, err
	}
	length, err := util.StringToFloat64(tokens[2])
	if err != nil {
		return StreetEdge{}, err
	}
	return StreetEdge{From: from, To: to, Length: length}, nil
}
