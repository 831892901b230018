package models

import (
	"fmt"
	"strings"
)

// VehicleType is the kind of vehicle a garage is meant for.
type VehicleType string

const (
	VehicleBicycle    VehicleType = "bicycle"
	VehicleCar        VehicleType = "car"
	VehicleTouringcar VehicleType = "touringcar"
)

// GarageCategory distinguishes regular garages from park and ride locations.
type GarageCategory string

const (
	CategoryGarage      GarageCategory = "garage"
	CategoryParkAndRide GarageCategory = "park_and_ride"
)

// VehicleTypeFromName derives the vehicle type from a raw garage name.
// The bicycle marker wins over the touring car marker.
func VehicleTypeFromName(name string) VehicleType {
	if strings.Contains(name, "-FP") {
		return VehicleBicycle
	}
	if strings.Contains(name, "PT") {
		return VehicleTouringcar
	}
	return VehicleCar
}

// CategoryFromName derives the garage category from a raw garage name.
func CategoryFromName(name string) GarageCategory {
	if strings.Contains(name, "P+R") {
		return CategoryParkAndRide
	}
	return CategoryGarage
}

// ParseVehicleType validates a vehicle filter value. Empty input means no filter.
func ParseVehicleType(s string) (VehicleType, error) {
	switch v := VehicleType(strings.ToLower(strings.TrimSpace(s))); v {
	case "", VehicleBicycle, VehicleCar, VehicleTouringcar:
		return v, nil
	default:
		return "", fmt.Errorf("unknown vehicle type %q", s)
	}
}

// ParseGarageCategory validates a category filter value. Empty input means no filter.
func ParseGarageCategory(s string) (GarageCategory, error) {
	switch c := GarageCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case "", CategoryGarage, CategoryParkAndRide:
		return c, nil
	default:
		return "", fmt.Errorf("unknown garage category %q", s)
	}
}
