package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/odp-amsterdam/models"
	"gopkg.in/guregu/null.v4"
)

var now = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func sampleGarages() []models.Garage {
	return []models.Garage{
		{
			GarageID:        "far",
			GarageName:      "P+R Zeeburg",
			Vehicle:         models.VehicleCar,
			Category:        models.CategoryParkAndRide,
			State:           "ok",
			FreeSpaceShort:  null.IntFrom(120),
			ShortCapacity:   null.IntFrom(300),
			AvailabilityPct: null.FloatFrom(40),
			Latitude:        52.3629,
			Longitude:       4.9526,
			UpdatedAt:       now,
		},
		{
			GarageID:   "near",
			GarageName: "P03 Centrum",
			Vehicle:    models.VehicleCar,
			Category:   models.CategoryGarage,
			Latitude:   52.3791,
			Longitude:  4.9003,
			UpdatedAt:  now,
		},
	}
}

func TestSortByDistance(t *testing.T) {
	// Amsterdam Centraal
	sorted := SortByDistance(sampleGarages(), 52.3789, 4.9004)

	if len(sorted) != 2 {
		t.Fatalf("Expected 2 garages, got %d", len(sorted))
	}
	if sorted[0].GarageID != "near" {
		t.Errorf("Expected nearest garage first, got %s", sorted[0].GarageID)
	}
	if sorted[0].DistanceKM >= sorted[1].DistanceKM {
		t.Errorf("Distances not ascending: %v, %v", sorted[0].DistanceKM, sorted[1].DistanceKM)
	}
	if !strings.HasSuffix(sorted[0].Distance, " m") {
		t.Errorf("Expected meters for a short distance, got %q", sorted[0].Distance)
	}
}

func TestBuildJSON_Garages(t *testing.T) {
	b, err := BuildJSON(WrapGarages(sampleGarages(), now))
	if err != nil {
		t.Fatalf("BuildJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded["response_timestamp"] != "2024-03-01T12:30:00Z" {
		t.Errorf("Unexpected timestamp %v", decoded["response_timestamp"])
	}
	if decoded["count"] != float64(2) {
		t.Errorf("Unexpected count %v", decoded["count"])
	}
	garages := decoded["garages"].([]any)
	second := garages[1].(map[string]any)
	if second["free_space_short"] != nil || second["availability_pct"] != nil {
		t.Errorf("Null fields should serialize as null: %v", second)
	}
	if _, ok := decoded["parking_spots"]; ok {
		t.Error("Empty sections should be omitted")
	}
	if !bytes.HasSuffix(b, []byte("\n")) {
		t.Error("Expected trailing newline")
	}
}

func TestWrapGarages_EmptyListing(t *testing.T) {
	b, err := BuildJSON(WrapGarages(nil, now))
	if err != nil {
		t.Fatalf("BuildJSON failed: %v", err)
	}
	if !strings.Contains(string(b), `"count": 0`) {
		t.Errorf("Expected zero count, got %s", b)
	}
}

func TestWriteGarages(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGarages(&buf, sampleGarages()); err != nil {
		t.Fatalf("WriteGarages failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "40.0%") {
		t.Errorf("Expected availability column, got %q", lines[1])
	}
	if !strings.Contains(lines[2], " - ") {
		t.Errorf("Expected placeholder for null values, got %q", lines[2])
	}

	t.Logf("✓ Table:\n%s", buf.String())
}

func TestWriteNearbyGarages(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNearbyGarages(&buf, SortByDistance(sampleGarages(), 52.3789, 4.9004)); err != nil {
		t.Fatalf("WriteNearbyGarages failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.Contains(lines[1], "P03 Centrum") {
		t.Errorf("Expected nearest garage in the first row, got %q", lines[1])
	}
}

func TestWriteParkingSpots(t *testing.T) {
	spots := []models.ParkingSpot{
		{
			SpotID:          "121887633804",
			SpotType:        null.StringFrom("E6a"),
			SpotDescription: null.StringFrom("Parkeerplaats voor gehandicapten"),
			Street:          null.StringFrom("Damrak"),
			Number:          1,
			Orientation:     null.StringFrom("Langs"),
			Coordinates:     [][]float64{{4.8951, 52.3702}},
		},
		{SpotID: "2", Number: 2},
	}

	var buf bytes.Buffer
	if err := WriteParkingSpots(&buf, spots); err != nil {
		t.Fatalf("WriteParkingSpots failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "52.37020,4.89510") {
		t.Errorf("Expected lat,lon position, got:\n%s", out)
	}
	if !strings.Contains(out, "Damrak") {
		t.Errorf("Expected street, got:\n%s", out)
	}
}
