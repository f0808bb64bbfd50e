package controllers

import (
	"github.com/lintang-b-s/metronav/pkg/datastructure"
	"github.com/lintang-b-s/metronav/pkg/util"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

type legResponse struct {
	Kind     string  `json:"kind"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Seconds  float64 `json:"seconds"`
	Distance float64 `json:"distance"`
	Colour   string  `json:"colour"`
}

type shortestPathResponse struct {
	Eta        float64       `json:"eta"`
	EtaMinutes float64       `json:"eta_minutes"`
	Dist       float64       `json:"distance"`
	Path       []string      `json:"path"`
	Polyline   string        `json:"polyline"`
	Legs       []legResponse `json:"legs"`
}

func NewShortestPathResponse(path *datastructure.Path, polyline string) shortestPathResponse {
	nodes := path.GetNodes()
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.GetID().String()
	}

	legs := make([]legResponse, len(path.GetEdges()))
	for i, e := range path.GetEdges() {
		legs[i] = legResponse{
			Kind:     e.GetKind().String(),
			From:     ids[i],
			To:       ids[i+1],
			Seconds:  util.RoundFloat(e.GetWeight(), 2),
			Distance: util.RoundFloat(e.GetLength(), 2),
			Colour:   e.GetColour(),
		}
	}

	return shortestPathResponse{
		Eta:        util.RoundFloat(path.GetTravelTime(), 2),
		EtaMinutes: util.RoundFloat(util.SecondsToMinutes(path.GetTravelTime()), 2),
		Dist:       util.RoundFloat(path.GetDistance(), 2),
		Path:       ids,
		Polyline:   polyline,
		Legs:       legs,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
