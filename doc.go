// Package odpamsterdam is a client for the Amsterdam open-data platform.
//
// It reads two feeds:
//   - the parking garage feed, with short and long stay occupancy per garage
//   - the parkeervakken feed, with individual curbside parking spots
//
// Raw features are normalized into models.Garage and models.ParkingSpot values.
// Numeric fields the feed publishes irregularly become null instead of failing,
// while a feature missing a structural key aborts the listing with a data error.
//
// Basic usage:
//
//	client := odpamsterdam.New()
//	defer client.Close()
//
//	garages, err := client.AllGarages(ctx, odpamsterdam.GarageFilter{Category: models.CategoryParkAndRide})
//
// Errors are *apperr.Error values; use apperr.Is to tell connection, data and
// not found failures apart.
package odpamsterdam
