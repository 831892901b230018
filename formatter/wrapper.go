package formatter

import (
	"sort"
	"time"

	"github.com/theoremus-urban-solutions/odp-amsterdam/models"
	"github.com/theoremus-urban-solutions/odp-amsterdam/utils"
)

// GarageDistance is a garage annotated with its distance to a reference point.
type GarageDistance struct {
	models.Garage
	DistanceKM float64 `json:"distance_km"`
	Distance   string  `json:"distance"`
}

// Response is the envelope written by the CLI and the HTTP API.
type Response struct {
	ResponseTimestamp string               `json:"response_timestamp"`
	Count             int                  `json:"count"`
	Garages           []models.Garage      `json:"garages,omitempty"`
	NearbyGarages     []GarageDistance     `json:"nearby_garages,omitempty"`
	ParkingSpots      []models.ParkingSpot `json:"parking_spots,omitempty"`
}

// Overview combines garages and parking spots fetched together.
type Overview struct {
	ResponseTimestamp string               `json:"response_timestamp"`
	Garages           []models.Garage      `json:"garages"`
	ParkingSpots      []models.ParkingSpot `json:"parking_spots"`
}

// WrapGarages wraps a garage listing.
func WrapGarages(garages []models.Garage, now time.Time) *Response {
	if garages == nil {
		garages = []models.Garage{}
	}
	return &Response{
		ResponseTimestamp: utils.Iso8601(now),
		Count:             len(garages),
		Garages:           garages,
	}
}

// WrapNearbyGarages wraps a distance ordered garage listing.
func WrapNearbyGarages(garages []GarageDistance, now time.Time) *Response {
	return &Response{
		ResponseTimestamp: utils.Iso8601(now),
		Count:             len(garages),
		NearbyGarages:     garages,
	}
}

// WrapParkingSpots wraps a parking spot listing.
func WrapParkingSpots(spots []models.ParkingSpot, now time.Time) *Response {
	if spots == nil {
		spots = []models.ParkingSpot{}
	}
	return &Response{
		ResponseTimestamp: utils.Iso8601(now),
		Count:             len(spots),
		ParkingSpots:      spots,
	}
}

// WrapOverview wraps a combined listing.
func WrapOverview(garages []models.Garage, spots []models.ParkingSpot, now time.Time) *Overview {
	return &Overview{
		ResponseTimestamp: utils.Iso8601(now),
		Garages:           garages,
		ParkingSpots:      spots,
	}
}

// SortByDistance returns the garages ordered by distance to (lat, lon), nearest first.
// Ties keep feed order.
func SortByDistance(garages []models.Garage, lat, lon float64) []GarageDistance {
	out := make([]GarageDistance, 0, len(garages))
	for _, g := range garages {
		km := g.DistanceKM(lat, lon)
		out = append(out, GarageDistance{
			Garage:     g,
			DistanceKM: km,
			Distance:   utils.PresentableDistance(km),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKM < out[j].DistanceKM
	})
	return out
}
