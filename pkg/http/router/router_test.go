package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/lintang-b-s/metronav/pkg"
	"github.com/lintang-b-s/metronav/pkg/costfunction"
	"github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoutingService struct {
	path  *datastructure.Path
	err   error
	calls atomic.Int64
}

func (f *fakeRoutingService) ShortestPath(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (*datastructure.Path, string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, "", f.err
	}
	return f.path, geo.PolylineFromCoords(f.path.GetCoordinates()), nil
}

// street 1 -> street 2 by foot (140 m), 2 -> 3 by railway (720 m).
func testPath(t *testing.T) *datastructure.Path {
	b := datastructure.NewGraphBuilder(costfunction.NewTimeCostFunction())
	n1 := b.AddNode(datastructure.NewStreetNode(datastructure.StreetNodeID(1), geo.NewCoordinate(2.17, 41.38)))
	n2 := b.AddNode(datastructure.NewStreetNode(datastructure.StreetNodeID(2), geo.NewCoordinate(2.171, 41.38)))
	n3 := b.AddNode(datastructure.NewStationNode(datastructure.StationNodeID("3"), geo.NewCoordinate(2.18, 41.38),
		"Catalunya", "L1", 1, "#DC241F"))
	_, err := b.AddEdge(n1, n2, pkg.STREET_EDGE, 140, pkg.STREET_EDGE_COLOUR)
	require.NoError(t, err)
	_, err = b.AddEdge(n2, n3, pkg.RAILWAY_EDGE, 720, "#DC241F")
	require.NoError(t, err)
	g := b.Build()

	e12, _ := g.FindEdge(n1, n2)
	e23, _ := g.FindEdge(n2, n3)
	return datastructure.NewPath([]*datastructure.Node{g.GetNode(n1), g.GetNode(n2), g.GetNode(n3)},
		[]*datastructure.Edge{e12, e23})
}

const validQuery = "/api/computeRoutes?origin_lat=41.38&origin_lon=2.17&destination_lat=41.38&destination_lon=2.18"

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestComputeRoutes(t *testing.T) {
	svc := &fakeRoutingService{path: testPath(t)}
	h := NewAPI(zap.NewNop()).Handler(RateLimit{}, svc)

	rec := serve(h, http.MethodGet, validQuery)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "metronav", rec.Header().Get("X-Service"))

	var body struct {
		Data struct {
			Eta        float64  `json:"eta"`
			EtaMinutes float64  `json:"eta_minutes"`
			Distance   float64  `json:"distance"`
			Path       []string `json:"path"`
			Polyline   string   `json:"polyline"`
			Legs       []struct {
				Kind    string  `json:"kind"`
				From    string  `json:"from"`
				To      string  `json:"to"`
				Seconds float64 `json:"seconds"`
				Colour  string  `json:"colour"`
			} `json:"legs"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 200.0, body.Data.Eta)
	assert.Equal(t, 3.33, body.Data.EtaMinutes)
	assert.Equal(t, 860.0, body.Data.Distance)
	assert.Equal(t, []string{"street/1", "street/2", "station/3"}, body.Data.Path)
	assert.NotEmpty(t, body.Data.Polyline)
	require.Len(t, body.Data.Legs, 2)
	assert.Equal(t, "Street", body.Data.Legs[0].Kind)
	assert.Equal(t, "Railway", body.Data.Legs[1].Kind)
	assert.Equal(t, "street/2", body.Data.Legs[1].From)
	assert.Equal(t, "station/3", body.Data.Legs[1].To)
	assert.Equal(t, 100.0, body.Data.Legs[1].Seconds)
	assert.Equal(t, "#DC241F", body.Data.Legs[1].Colour)
}

func TestComputeRoutesErrors(t *testing.T) {
	testCases := []struct {
		name       string
		target     string
		err        error
		wantStatus int
		wantCalls  int64
	}{
		{name: "missing parameter", target: "/api/computeRoutes?origin_lat=41.38&origin_lon=2.17&destination_lat=41.38",
			wantStatus: http.StatusBadRequest},
		{name: "not a number", target: "/api/computeRoutes?origin_lat=abc&origin_lon=2.17&destination_lat=41.38&destination_lon=2.18",
			wantStatus: http.StatusBadRequest},
		{name: "latitude out of range", target: "/api/computeRoutes?origin_lat=91&origin_lon=2.17&destination_lat=41.38&destination_lon=2.18",
			wantStatus: http.StatusBadRequest},
		{name: "invalid coordinate", target: validQuery, err: util.WrapErrorf(nil, util.ErrInvalidCoordinate, "outside"),
			wantStatus: http.StatusBadRequest, wantCalls: 1},
		{name: "no route", target: validQuery, err: util.WrapErrorf(nil, util.ErrNoRouteFound, "no route"),
			wantStatus: http.StatusNotFound, wantCalls: 1},
		{name: "internal search error", target: validQuery, err: util.WrapErrorf(nil, util.ErrInternalSearch, "boom"),
			wantStatus: http.StatusInternalServerError, wantCalls: 1},
		{name: "unknown route", target: "/api/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRoutingService{path: testPath(t), err: tt.err}
			h := NewAPI(zap.NewNop()).Handler(RateLimit{}, svc)

			rec := serve(h, http.MethodGet, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCalls, svc.calls.Load())
		})
	}
}

func TestInternalErrorMessageHidden(t *testing.T) {
	svc := &fakeRoutingService{err: util.WrapErrorf(nil, util.ErrInternalSearch, "heap corrupted at node 42")}
	h := NewAPI(zap.NewNop()).Handler(RateLimit{}, svc)

	rec := serve(h, http.MethodGet, validQuery)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "heap corrupted")
	assert.Contains(t, rec.Body.String(), util.MessageInternalServerError)
}

func TestMiddlewares(t *testing.T) {
	svc := &fakeRoutingService{path: testPath(t)}
	h := NewAPI(zap.NewNop()).Handler(RateLimit{Enabled: true, RPS: 0.001, Burst: 1}, svc)

	rec := serve(h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())

	// heartbeat sits before the limiter, the first routed request spends the only token
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, validQuery).Code)
	rec = serve(h, http.MethodGet, validQuery)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	req := httptest.NewRequest(http.MethodPost, "/api/computeRoutes", strings.NewReader("origin_lat=1"))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "203.0.113.7", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.2")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.2", got)
}

func TestRecoverPanic(t *testing.T) {
	api := NewAPI(zap.NewNop())
	h := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler bug")
	}))
	rec := serve(h, http.MethodGet, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}
