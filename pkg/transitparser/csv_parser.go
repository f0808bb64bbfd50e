package transitparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/network"
	"github.com/lintang-b-s/metronav/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// stations export columns
const (
	colStationLineCode = "CODI_ESTACIO_LINIA"
	colStationName     = "NOM_ESTACIO"
	colLineName        = "NOM_LINIA"
	colGeometry        = "GEOMETRY"
	colStationCode     = "CODI_ESTACIO"
	colStationOrder    = "ORDRE_ESTACIO"
	colLineColour      = "COLOR_LINIA"
)

// accesses export columns
const (
	colAccessCode          = "CODI_ACCES"
	colAccessName          = "NOM_ACCES"
	colAccessStation       = "ID_ESTACIO"
	colAccessAccessibility = "NOM_TIPUS_ACCESSIBILITAT"
)

var (
	stationColumns = []string{colStationLineCode, colStationName, colLineName, colGeometry,
		colStationCode, colStationOrder, colLineColour}
	accessColumns = []string{colAccessCode, colAccessName, colGeometry, colAccessStation,
		colAccessAccessibility}
)

type rowReader struct {
	r      *csv.Reader
	header map[string]int
	line   int
}

func newRowReader(r io.Reader, required []string) (*rowReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := headerIndex(header)
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "missing column %s", col)
		}
	}
	return &rowReader{r: cr, header: h, line: 1}, nil
}

func headerIndex(header []string) map[string]int {
	h := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimPrefix(col, "\ufeff")
		h[strings.TrimSpace(col)] = i
	}
	return h
}

// next. returns io.EOF after the last row.
func (rr *rowReader) next() (func(string) string, error) {
	row, err := rr.r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("read row %d: %w", rr.line+1, err)
	}
	rr.line++
	return func(k string) string {
		i, ok := rr.header[k]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}, nil
}

// ParseStations. one Station per (station, line) row of the stations export.
func ParseStations(r io.Reader) ([]network.Station, error) {
	rr, err := newRowReader(r, stationColumns)
	if err != nil {
		return nil, err
	}
	stations := make([]network.Station, 0)
	for {
		get, err := rr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		point, err := ParsePoint(get(colGeometry))
		if err != nil {
			return nil, fmt.Errorf("stations row %d: %w", rr.line, err)
		}
		order, err := parseOrder(get(colStationOrder))
		if err != nil {
			return nil, fmt.Errorf("stations row %d: %w", rr.line, err)
		}
		stations = append(stations, network.Station{
			ID:       get(colStationLineCode),
			Name:     get(colStationName),
			Line:     get(colLineName),
			Location: geo.NewCoordinate(point[0], point[1]),
			Code:     get(colStationCode),
			Order:    order,
			Colour:   hexColour(get(colLineColour)),
		})
	}
	return stations, nil
}

func ParseAccesses(r io.Reader) ([]network.Access, error) {
	rr, err := newRowReader(r, accessColumns)
	if err != nil {
		return nil, err
	}
	accesses := make([]network.Access, 0)
	for {
		get, err := rr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		point, err := ParsePoint(get(colGeometry))
		if err != nil {
			return nil, fmt.Errorf("accesses row %d: %w", rr.line, err)
		}
		accesses = append(accesses, network.Access{
			ID:            get(colAccessCode),
			Name:          get(colAccessName),
			Location:      geo.NewCoordinate(point[0], point[1]),
			StationCode:   get(colAccessStation),
			Accessibility: get(colAccessAccessibility),
		})
	}
	return accesses, nil
}

func ParseStationsFile(filename string) ([]network.Station, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseStations(f)
}

func ParseAccessesFile(filename string) ([]network.Access, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseAccesses(f)
}

// ParsePoint. WKT "POINT (x y)" with x the longitude and y the latitude.
func ParsePoint(geometry string) (orb.Point, error) {
	p, err := wkt.UnmarshalPoint(geometry)
	if err != nil {
		return orb.Point{}, fmt.Errorf("geometry %q: %w", geometry, err)
	}
	return p, nil
}

func parseOrder(s string) (int, error) {
	if order, err := strconv.Atoi(s); err == nil {
		return order, nil
	}
	f, err := util.StringToFloat64(s)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid station order %q", s)
	}
	return int(f), nil
}

func hexColour(c string) string {
	if c == "" || strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}
