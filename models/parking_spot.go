package models

import (
	"fmt"

	"github.com/theoremus-urban-solutions/odp-amsterdam/normalize"
	"gopkg.in/guregu/null.v4"
)

// ParkingSpot is a single curbside parking location.
type ParkingSpot struct {
	SpotID          string      `json:"spot_id"`
	SpotType        null.String `json:"spot_type"`
	SpotDescription null.String `json:"spot_description"`

	Street      null.String `json:"street"`
	Number      int         `json:"number"`
	Orientation null.String `json:"orientation"`

	Coordinates [][]float64 `json:"coordinates"`
}

// ParkingSpotFromFeature builds a ParkingSpot from a parking spot feed feature.
// The first regime describes the spot; a feature without regimes is rejected.
func ParkingSpotFromFeature(f Feature, rules normalize.Rules) (ParkingSpot, error) {
	attr, err := f.Properties()
	if err != nil {
		return ParkingSpot{}, err
	}

	rawRegimes, err := required(attr, "properties", "regimes")
	if err != nil {
		return ParkingSpot{}, err
	}
	regimes, ok := rawRegimes.([]any)
	if !ok || len(regimes) == 0 {
		return ParkingSpot{}, &MissingKeyError{Key: "properties.regimes[0]"}
	}
	regime, ok := regimes[0].(map[string]any)
	if !ok {
		return ParkingSpot{}, fmt.Errorf("regime is not an object")
	}

	values := map[string]any{}
	for _, key := range []string{"id", "eType", "straatnaam", "aantal", "type"} {
		v, err := required(attr, "properties", key)
		if err != nil {
			return ParkingSpot{}, err
		}
		values[key] = v
	}
	description, err := required(regime, "properties.regimes[0]", "eTypeDescription")
	if err != nil {
		return ParkingSpot{}, err
	}

	number := normalize.IntField(values["aantal"])
	if !number.Valid {
		return ParkingSpot{}, fmt.Errorf("invalid aantal %v", values["aantal"])
	}

	coords, err := f.lookup("geometry.coordinates")
	if err != nil {
		return ParkingSpot{}, err
	}
	positions, err := firstPositions(coords)
	if err != nil {
		return ParkingSpot{}, err
	}

	return ParkingSpot{
		SpotID:          normalize.StringField(values["id"]),
		SpotType:        emptyToNull(normalize.StringField(values["eType"])),
		SpotDescription: emptyToNull(normalize.StringField(description)),
		Street:          normalize.FilterUnknown(normalize.StringField(values["straatnaam"]), rules),
		Number:          int(number.Int64),
		Orientation:     normalize.FilterUnknown(normalize.StringField(values["type"]), rules),
		Coordinates:     positions,
	}, nil
}

func emptyToNull(s string) null.String {
	return null.NewString(s, s != "")
}

// firstPositions returns the first element of a geometry's coordinates as a
// list of positions: the outer ring of a polygon or of the first polygon of a
// multipolygon, or the single position of a point or line.
func firstPositions(v any) ([][]float64, error) {
	coords, ok := v.([]any)
	if !ok || len(coords) == 0 {
		return nil, fmt.Errorf("empty coordinates")
	}

	first, ok := coords[0].([]any)
	if !ok {
		// Point geometry: coordinates is the position itself.
		pos, err := position(coords)
		if err != nil {
			return nil, err
		}
		return [][]float64{pos}, nil
	}
	if len(first) > 0 {
		if _, nested := first[0].([]any); nested {
			ring, err := outerRing(first)
			if err != nil {
				return nil, err
			}
			out := make([][]float64, 0, len(ring))
			for _, p := range ring {
				pos, err := position(p)
				if err != nil {
					return nil, err
				}
				out = append(out, pos)
			}
			return out, nil
		}
	}
	pos, err := position(first)
	if err != nil {
		return nil, err
	}
	return [][]float64{pos}, nil
}

// outerRing descends through nested rings until it reaches a list of positions.
func outerRing(rings []any) ([]any, error) {
	for {
		inner, ok := rings[0].([]any)
		if !ok || len(inner) == 0 {
			return nil, fmt.Errorf("invalid ring %v", rings[0])
		}
		if _, nested := inner[0].([]any); !nested {
			return rings, nil
		}
		rings = inner
	}
}

func position(v any) ([]float64, error) {
	values, ok := v.([]any)
	if !ok || len(values) < 2 {
		return nil, fmt.Errorf("invalid position %v", v)
	}
	pos := make([]float64, 0, len(values))
	for _, c := range values {
		f, err := normalize.FloatField(c)
		if err != nil {
			return nil, err
		}
		pos = append(pos, f)
	}
	return pos, nil
}
