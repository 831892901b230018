package normalize

import (
	"strings"

	"gopkg.in/guregu/null.v4"
)

// Rules holds the ordered token lists used to clean feed values.
type Rules struct {
	// Exclude drops garages whose name contains any of these tokens (placeholder rows).
	Exclude []string
	// NameNoise tokens are deleted from garage names, in order.
	NameNoise []string
	// Unknown values are sentinels meaning "not available".
	Unknown []string
	// Corrections are lot markers that get a zero inserted ("P1 " -> "P01 ").
	Corrections []string
}

// DefaultRules returns the token lists matching the live garage and parking spot feeds.
func DefaultRules() Rules {
	return Rules{
		Exclude: []string{"Dummy"},
		NameNoise: []string{
			"CE-",
			"ZD-",
			"ZO-",
			"ZU-",
			"FJ212P34 ",
			"VRN-FJ212",
			"GRV020HNK ",
			" P ",
			" P4",
			" P5",
			" P21",
			" P22",
			" P23",
			" P24",
			"PR-",
			"DP-",
			"AM-",
		},
		Unknown:     []string{"ONBEKEND", "Onbekend"},
		Corrections: []string{"P1 ", "P3 "},
	}
}

// Excluded reports whether a garage name contains one of the exclusion tokens.
func (r Rules) Excluded(name string) bool {
	for _, token := range r.Exclude {
		if token != "" && strings.Contains(name, token) {
			return true
		}
	}
	return false
}

// CorrectName changes a garage name for consistency.
//
// Noise tokens are removed first, then "PR" becomes "P" and "FP-" becomes "FP".
// Every lot marker such as "P3 " is padded to "P03 " so names sort naturally.
func CorrectName(name string, rules Rules) string {
	for _, token := range rules.NameNoise {
		if token == "" {
			continue
		}
		name = strings.ReplaceAll(name, token, "")
	}

	name = strings.ReplaceAll(name, "PR", "P")
	name = strings.ReplaceAll(name, "FP-", "FP")

	for _, marker := range rules.Corrections {
		if marker == "" {
			continue
		}
		name = strings.ReplaceAll(name, marker, marker[:1]+"0"+marker[1:])
	}
	return name
}

// FilterUnknown returns null when value is one of the unknown sentinels.
func FilterUnknown(value string, rules Rules) null.String {
	for _, sentinel := range rules.Unknown {
		if value == sentinel {
			return null.String{}
		}
	}
	return null.StringFrom(value)
}
