/*
Package models defines the typed records built from the Amsterdam open-data feeds.

A Feature is one decoded GeoJSON feature. The builders turn a Feature into an
immutable value:

	garage, err := models.GarageFromFeature(feature, normalize.DefaultRules())
	spot, err := models.ParkingSpotFromFeature(feature, normalize.DefaultRules())

Numeric fields that the upstream publishes inconsistently (numbers as strings,
empty strings for "no data") become null values instead of errors. A feature
missing a structural key fails with a *MissingKeyError.

# Derived fields

Vehicle type and category are derived from the raw garage name:

  - "-FP" marks a bicycle garage, "PT" a touring car garage, anything else is for cars
  - "P+R" marks a park and ride location
*/
package models
