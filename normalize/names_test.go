package normalize

import "testing"

func TestCorrectName(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lot marker padded", input: "P3 Centrum", expected: "P03 Centrum"},
		{name: "agency prefix removed", input: "CE-P1 Amstel", expected: "P01 Amstel"},
		{name: "numbered lot tag removed", input: "ZD-Arena P21", expected: "Arena"},
		{name: "park and ride prefix removed", input: "PR-P+R Zeeburg", expected: "P+R Zeeburg"},
		{name: "PR rewritten", input: "PRArena", expected: "PArena"},
		{name: "FP dash collapsed", input: "Stationsplein FP-2", expected: "Stationsplein FP2"},
		{name: "bicycle suffix kept", input: "ZO-Museumplein-FP", expected: "Museumplein-FP"},
		{name: "unchanged", input: "Bijenkorf", expected: "Bijenkorf"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CorrectName(tt.input, rules); got != tt.expected {
				t.Errorf("CorrectName(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCorrectName_Idempotent(t *testing.T) {
	rules := DefaultRules()
	names := []string{
		"P3 Centrum",
		"CE-P1 Amstel",
		"ZD-Arena P21",
		"PR-P+R Zeeburg",
		"Stationsplein FP-2",
		"VRN-FJ212 Noord",
		"GRV020HNK Oosterdok P4",
		"Garage P1 Oost",
		"P1 P3 Zuid",
		"P3 Noord P3 Zuid",
	}

	for _, n := range names {
		once := CorrectName(n, rules)
		twice := CorrectName(once, rules)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", n, once, twice)
		}
	}
}

func TestCorrectName_MarkerInsideName(t *testing.T) {
	got := CorrectName("Garage P1 Oost", DefaultRules())
	if got != "Garage P01 Oost" {
		t.Errorf("expected zero inserted at the marker, got %q", got)
	}
}

func TestCorrectName_EmptyRules(t *testing.T) {
	got := CorrectName("CE-P3 Centrum", Rules{})
	if got != "CE-P3 Centrum" {
		t.Errorf("empty rules should only apply fixed rewrites, got %q", got)
	}
}

func TestFilterUnknown(t *testing.T) {
	rules := DefaultRules()

	if v := FilterUnknown("ONBEKEND", rules); v.Valid {
		t.Errorf("ONBEKEND should be null, got %q", v.String)
	}
	if v := FilterUnknown("Onbekend", rules); v.Valid {
		t.Errorf("Onbekend should be null, got %q", v.String)
	}
	if v := FilterUnknown("onbekend", rules); !v.Valid {
		t.Error("only the listed case variants are sentinels")
	}
	if v := FilterUnknown("Damrak", rules); !v.Valid || v.String != "Damrak" {
		t.Errorf("expected Damrak to pass through, got %#v", v)
	}
}

func TestRules_Excluded(t *testing.T) {
	rules := DefaultRules()

	if !rules.Excluded("Dummy garage") {
		t.Error("Dummy rows should be excluded")
	}
	if rules.Excluded("P3 Centrum") {
		t.Error("regular garages should not be excluded")
	}
	if (Rules{Exclude: []string{""}}).Excluded("anything") {
		t.Error("empty tokens should never match")
	}
}

func TestCorrectName_EveryMarkerPadded(t *testing.T) {
	rules := DefaultRules()

	tests := map[string]string{
		"P1 P3 Zuid":       "P01 P03 Zuid",
		"P3 Noord P3 Zuid": "P03 Noord P03 Zuid",
	}
	for input, expected := range tests {
		if got := CorrectName(input, rules); got != expected {
			t.Errorf("CorrectName(%q) = %q, expected %q", input, got, expected)
		}
	}
}
