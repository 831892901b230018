// Package formatter provides response wrapping and serialization for garage
// and parking spot listings.
//
// This package is organized into:
// - wrapper.go: Response envelopes and distance ordering
// - json.go: JSON serialization
// - text.go: Aligned text tables for terminal output
package formatter
