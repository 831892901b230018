// Package utils provides shared helper functions for the odp-amsterdam client.
//
// It contains:
//   - Publication date parsing and ISO8601 formatting
//   - Great-circle distance calculation and formatting
//   - Shared constants
package utils
