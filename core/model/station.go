package model

import (
	"fmt"

	"github.com/kilianp07/evdash/core/geo"
)

// Regions lists the closed set of region labels assigned to stations.
var Regions = []string{"North", "South", "East", "West", "Central"}

// ChargerTypes lists the closed set of charger generations.
var ChargerTypes = []string{"V2", "V3"}

const (
	// MinPorts is the smallest port count a station can have.
	MinPorts = 4
	// MaxPorts is the largest port count a station can have.
	MaxPorts = 20
)

// Station is one charging location. NearestDistKm and ExpansionBenefit are
// derived once the full station set exists.
type Station struct {
	StationID        int64   `json:"station_id"`
	StationName      string  `json:"station_name"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	Region           string  `json:"region"`
	ChargerType      string  `json:"charger_type"`
	NumPorts         int     `json:"num_ports"`
	NearestDistKm    float64 `json:"nearest_dist_km"`
	ExpansionBenefit float64 `json:"expansion_benefit"`
}

// StationName formats the display name for a station id, e.g. SC_07.
func StationName(id int64) string {
	return fmt.Sprintf("SC_%02d", id)
}

// Location returns the station coordinates.
func (s Station) Location() geo.Point {
	return geo.Point{Lat: s.Lat, Lon: s.Lon}
}

// Locations returns the coordinates of stations in order.
func Locations(stations []Station) []geo.Point {
	pts := make([]geo.Point, len(stations))
	for i, s := range stations {
		pts[i] = s.Location()
	}
	return pts
}
