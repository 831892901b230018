// Package server exposes garages and parking spots over a small JSON HTTP API.
//
// Routes:
//   - GET /api/health
//   - GET /api/garages?vehicle=&category=&near=lat,lon
//   - GET /api/garages/:id
//   - GET /api/locations?limit=&type=
//
// Errors from the client are mapped to status codes by kind: not found is 404,
// invalid query parameters 400, and upstream connection or data failures 502.
package server
