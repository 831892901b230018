package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/odp-amsterdam/normalize"
)

// loadFeatures decodes the features of a fixture in testdata/.
func loadFeatures(t *testing.T, filename string) []Feature {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", filename, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc struct {
		Features []map[string]any `json:"features"`
	}
	if err := dec.Decode(&doc); err != nil {
		t.Fatalf("Failed to decode fixture %s: %v", filename, err)
	}
	features := make([]Feature, 0, len(doc.Features))
	for _, f := range doc.Features {
		features = append(features, Feature(f))
	}
	return features
}

func TestGarageFromFeature(t *testing.T) {
	features := loadFeatures(t, "garages.json")

	g, err := GarageFromFeature(features[0], normalize.DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.GarageID != "A557D1AD-5D39-915B-8B54-A4AAFA2C1CFC" {
		t.Errorf("unexpected id %s", g.GarageID)
	}
	if g.GarageName != "P03 Centrum" {
		t.Errorf("expected name P03 Centrum, got %q", g.GarageName)
	}
	if g.Vehicle != VehicleCar || g.Category != CategoryGarage {
		t.Errorf("expected car/garage, got %s/%s", g.Vehicle, g.Category)
	}
	if g.State != "ok" {
		t.Errorf("expected state ok, got %q", g.State)
	}
	if !g.FreeSpaceShort.Valid || g.FreeSpaceShort.Int64 != 50 {
		t.Errorf("unexpected free_space_short %#v", g.FreeSpaceShort)
	}
	if !g.ShortCapacity.Valid || g.ShortCapacity.Int64 != 200 {
		t.Errorf("unexpected short_capacity %#v", g.ShortCapacity)
	}
	if g.FreeSpaceLong.Valid || g.LongCapacity.Valid {
		t.Error("empty long stay fields should be null")
	}
	if !g.AvailabilityPct.Valid || g.AvailabilityPct.Float64 != 25.0 {
		t.Errorf("expected availability 25.0, got %#v", g.AvailabilityPct)
	}
	if g.Latitude != 52.3791 || g.Longitude != 4.9003 {
		t.Errorf("unexpected coordinates (%v, %v)", g.Latitude, g.Longitude)
	}
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	if !g.UpdatedAt.Equal(want) {
		t.Errorf("expected updated_at %v, got %v", want, g.UpdatedAt)
	}
}

func TestGarageFromFeature_DerivedFields(t *testing.T) {
	features := loadFeatures(t, "garages.json")
	rules := normalize.DefaultRules()

	tests := []struct {
		index    int
		name     string
		vehicle  VehicleType
		category GarageCategory
	}{
		{index: 1, name: "P+R Zeeburg", vehicle: VehicleCar, category: CategoryParkAndRide},
		{index: 2, name: "Museumplein-FP", vehicle: VehicleBicycle, category: CategoryGarage},
		{index: 3, name: "PT Oosterdok", vehicle: VehicleTouringcar, category: CategoryGarage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := GarageFromFeature(features[tt.index], rules)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.GarageName != tt.name {
				t.Errorf("expected name %q, got %q", tt.name, g.GarageName)
			}
			if g.Vehicle != tt.vehicle {
				t.Errorf("expected vehicle %s, got %s", tt.vehicle, g.Vehicle)
			}
			if g.Category != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, g.Category)
			}
		})
	}
}

func TestGarageFromFeature_MalformedNumbersBecomeNull(t *testing.T) {
	features := loadFeatures(t, "garages.json")

	g, err := GarageFromFeature(features[2], normalize.DefaultRules())
	if err != nil {
		t.Fatalf("malformed numeric fields should not fail: %v", err)
	}
	if g.FreeSpaceShort.Valid {
		t.Errorf("n/a should be null, got %d", g.FreeSpaceShort.Int64)
	}
	if !g.ShortCapacity.Valid || g.ShortCapacity.Int64 != 0 {
		t.Errorf("expected short capacity 0, got %#v", g.ShortCapacity)
	}
	if g.AvailabilityPct.Valid {
		t.Error("availability should be null without free space")
	}
}

func TestGarageFromFeature_MissingOptionalFields(t *testing.T) {
	f := Feature{
		"Id":       "abc",
		"geometry": map[string]any{"coordinates": []any{json.Number("4.89"), json.Number("52.37")}},
		"properties": map[string]any{
			"Name":    "P1 Noord",
			"PubDate": "2024-03-01T12:30:00Z",
		},
	}

	g, err := GarageFromFeature(f, normalize.DefaultRules())
	if err != nil {
		t.Fatalf("missing numeric fields should not fail: %v", err)
	}
	if g.FreeSpaceShort.Valid || g.FreeSpaceLong.Valid || g.ShortCapacity.Valid || g.LongCapacity.Valid {
		t.Error("absent numeric fields should be null")
	}
	if g.AvailabilityPct.Valid {
		t.Error("availability should be null")
	}
	if g.State != "" {
		t.Errorf("absent state should be empty, got %q", g.State)
	}
	if g.GarageName != "P01 Noord" {
		t.Errorf("expected P01 Noord, got %q", g.GarageName)
	}
}

func TestGarageFromFeature_TextCoordinates(t *testing.T) {
	f := Feature{
		"Id":       "abc",
		"geometry": map[string]any{"coordinates": "[4.89, 52.37]"},
		"properties": map[string]any{
			"Name":    "Bijenkorf",
			"PubDate": "2024-03-01T12:30:00Z",
		},
	}

	g, err := GarageFromFeature(f, normalize.DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Latitude != 52.37 || g.Longitude != 4.89 {
		t.Errorf("expected (52.37, 4.89), got (%v, %v)", g.Latitude, g.Longitude)
	}
}

func TestGarageFromFeature_MissingStructuralKeys(t *testing.T) {
	base := func() Feature {
		return Feature{
			"Id":       "abc",
			"geometry": map[string]any{"coordinates": []any{4.89, 52.37}},
			"properties": map[string]any{
				"Name":    "Bijenkorf",
				"PubDate": "2024-03-01T12:30:00Z",
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(Feature)
		key    string
	}{
		{name: "id", mutate: func(f Feature) { delete(f, "Id") }, key: "Id"},
		{name: "properties", mutate: func(f Feature) { delete(f, "properties") }, key: "properties"},
		{name: "geometry", mutate: func(f Feature) { delete(f, "geometry") }, key: "geometry.coordinates"},
		{name: "name", mutate: func(f Feature) { delete(f["properties"].(map[string]any), "Name") }, key: "properties.Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base()
			tt.mutate(f)
			_, err := GarageFromFeature(f, normalize.DefaultRules())
			var mk *MissingKeyError
			if !errors.As(err, &mk) {
				t.Fatalf("expected MissingKeyError, got %v", err)
			}
			if mk.Key != tt.key {
				t.Errorf("expected missing key %q, got %q", tt.key, mk.Key)
			}
		})
	}
}

func TestGarage_DistanceKM(t *testing.T) {
	g := Garage{Latitude: 52.37, Longitude: 4.89}
	if d := g.DistanceKM(52.37, 4.89); d != 0 {
		t.Errorf("expected 0 km, got %v", d)
	}
}
