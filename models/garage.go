package models

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/odp-amsterdam/normalize"
	"github.com/theoremus-urban-solutions/odp-amsterdam/utils"
	"gopkg.in/guregu/null.v4"
)

// Garage is a parking garage with short and long stay occupancy.
type Garage struct {
	GarageID   string         `json:"garage_id"`
	GarageName string         `json:"garage_name"`
	Vehicle    VehicleType    `json:"vehicle"`
	Category   GarageCategory `json:"category"`
	State      string         `json:"state"`

	FreeSpaceShort  null.Int   `json:"free_space_short"`
	FreeSpaceLong   null.Int   `json:"free_space_long"`
	ShortCapacity   null.Int   `json:"short_capacity"`
	LongCapacity    null.Int   `json:"long_capacity"`
	AvailabilityPct null.Float `json:"availability_pct"`

	Longitude float64   `json:"longitude"`
	Latitude  float64   `json:"latitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GarageFromFeature builds a Garage from a garage feed feature.
//
// Id, properties, Name, PubDate and the geometry coordinates are required.
// Occupancy and capacity fields may be absent or malformed; they become null.
func GarageFromFeature(f Feature, rules normalize.Rules) (Garage, error) {
	id, err := f.ID()
	if err != nil {
		return Garage{}, err
	}
	attr, err := f.Properties()
	if err != nil {
		return Garage{}, err
	}
	coords, err := f.lookup("geometry.coordinates")
	if err != nil {
		return Garage{}, err
	}
	latitude, longitude, err := pointFromCoordinates(coords)
	if err != nil {
		return Garage{}, err
	}

	rawName, err := required(attr, "properties", "Name")
	if err != nil {
		return Garage{}, err
	}
	name := normalize.StringField(rawName)

	rawPubDate, err := required(attr, "properties", "PubDate")
	if err != nil {
		return Garage{}, err
	}
	updatedAt, err := utils.ParsePubDate(normalize.StringField(rawPubDate))
	if err != nil {
		return Garage{}, err
	}

	freeShort := normalize.IntField(attr["FreeSpaceShort"])
	shortCapacity := normalize.IntField(attr["ShortCapacity"])

	return Garage{
		GarageID:        id,
		GarageName:      normalize.CorrectName(name, rules),
		Vehicle:         VehicleTypeFromName(name),
		Category:        CategoryFromName(name),
		State:           normalize.StringField(attr["State"]),
		FreeSpaceShort:  freeShort,
		FreeSpaceLong:   normalize.IntField(attr["FreeSpaceLong"]),
		ShortCapacity:   shortCapacity,
		LongCapacity:    normalize.IntField(attr["LongCapacity"]),
		AvailabilityPct: normalize.CalculatePct(freeShort, shortCapacity),
		Longitude:       longitude,
		Latitude:        latitude,
		UpdatedAt:       updatedAt,
	}, nil
}

// DistanceKM returns the distance from the garage to the given point.
func (g Garage) DistanceKM(lat, lon float64) float64 {
	return utils.HaversineKM(g.Latitude, g.Longitude, lat, lon)
}

// pointFromCoordinates decodes a [lon, lat] pair, published either as a JSON
// array or as bracketed text, and returns it as (lat, lon).
func pointFromCoordinates(v any) (float64, float64, error) {
	switch t := v.(type) {
	case string:
		return normalize.SplitCoordinates(t)
	case []any:
		if len(t) != 2 {
			return 0, 0, fmt.Errorf("expected a coordinate pair, got %d values", len(t))
		}
		lon, err := normalize.FloatField(t[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid longitude: %w", err)
		}
		lat, err := normalize.FloatField(t[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid latitude: %w", err)
		}
		return lat, lon, nil
	default:
		return 0, 0, fmt.Errorf("unsupported coordinates %v", v)
	}
}
