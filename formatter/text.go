package formatter

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/theoremus-urban-solutions/odp-amsterdam/models"
	"gopkg.in/guregu/null.v4"
)

const missing = "-"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// WriteGarages writes garages as an aligned table.
func WriteGarages(w io.Writer, garages []models.Garage) error {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tVEHICLE\tCATEGORY\tSTATE\tFREE\tCAPACITY\tAVAILABLE\tUPDATED")
	for _, g := range garages {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			g.GarageID, g.GarageName, g.Vehicle, g.Category, orMissing(g.State),
			intCell(g.FreeSpaceShort), intCell(g.ShortCapacity), pctCell(g.AvailabilityPct),
			g.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// WriteNearbyGarages writes distance ordered garages as an aligned table.
func WriteNearbyGarages(w io.Writer, garages []GarageDistance) error {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "DISTANCE\tNAME\tVEHICLE\tFREE\tCAPACITY\tAVAILABLE")
	for _, g := range garages {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.Distance, g.GarageName, g.Vehicle,
			intCell(g.FreeSpaceShort), intCell(g.ShortCapacity), pctCell(g.AvailabilityPct))
	}
	return tw.Flush()
}

// WriteParkingSpots writes parking spots as an aligned table.
func WriteParkingSpots(w io.Writer, spots []models.ParkingSpot) error {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tTYPE\tDESCRIPTION\tSTREET\tNUMBER\tORIENTATION\tPOSITION")
	for _, s := range spots {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			s.SpotID, stringCell(s.SpotType), stringCell(s.SpotDescription), stringCell(s.Street),
			s.Number, stringCell(s.Orientation), positionCell(s.Coordinates))
	}
	return tw.Flush()
}

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}

func intCell(v null.Int) string {
	if !v.Valid {
		return missing
	}
	return strconv.FormatInt(v.Int64, 10)
}

func pctCell(v null.Float) string {
	if !v.Valid {
		return missing
	}
	return strconv.FormatFloat(v.Float64, 'f', 1, 64) + "%"
}

func stringCell(v null.String) string {
	if !v.Valid {
		return missing
	}
	return orMissing(v.String)
}

func positionCell(coords [][]float64) string {
	if len(coords) == 0 || len(coords[0]) < 2 {
		return missing
	}
	return fmt.Sprintf("%.5f,%.5f", coords[0][1], coords[0][0])
}
