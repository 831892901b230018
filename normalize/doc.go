// Package normalize cleans up the loosely typed fields published by the
// Amsterdam open-data feeds.
//
// It contains:
//   - Name correction for parking garages (noise token removal, lot number padding)
//   - Sentinel filtering for "unknown" street and orientation values
//   - Null-on-malformed numeric coercion and percentage calculation
//   - Coordinate text splitting
//
// All functions are pure. The token lists they work from are carried in a Rules
// value; DefaultRules returns the lists matching the live feed.
package normalize
