package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	odpamsterdam "github.com/theoremus-urban-solutions/odp-amsterdam"
	"github.com/theoremus-urban-solutions/odp-amsterdam/config"
	"github.com/theoremus-urban-solutions/odp-amsterdam/formatter"
	"github.com/theoremus-urban-solutions/odp-amsterdam/internal"
	"github.com/theoremus-urban-solutions/odp-amsterdam/models"
	"github.com/theoremus-urban-solutions/odp-amsterdam/server"
	"github.com/theoremus-urban-solutions/odp-amsterdam/utils"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	mode        string
	format      string
	configPath  string
	garageURL   string
	spotURL     string
	id          string
	vehicle     string
	category    string
	near        string
	limit       int
	parkingType string
	timeoutMS   int
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("odp-amsterdam", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.mode, "mode", "garages", "garages|garage|locations|overview|serve")
	fs.StringVar(&o.format, "format", "json", "json|text")
	fs.StringVar(&o.configPath, "config", "", "config file (default: config.yml search path)")
	fs.StringVar(&o.garageURL, "garages", "", "garage feed URL or local file (overrides config)")
	fs.StringVar(&o.spotURL, "parkingSpots", "", "parking spot feed URL or local file (overrides config)")
	fs.StringVar(&o.id, "id", "", "garage id for -mode=garage")
	fs.StringVar(&o.vehicle, "vehicle", "", "vehicle filter: bicycle|car|touringcar")
	fs.StringVar(&o.category, "category", "", "category filter: garage|park_and_ride")
	fs.StringVar(&o.near, "near", "", "sort garages by distance to lat,lon")
	fs.IntVar(&o.limit, "limit", odpamsterdam.DefaultLocationLimit, "number of parking spots")
	fs.StringVar(&o.parkingType, "type", "", "parking spot eType filter, e.g. E6a")
	fs.IntVar(&o.timeoutMS, "timeoutMS", 0, "request timeout in milliseconds (overrides config)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.format != "json" && o.format != "text" {
		return o, fmt.Errorf("unknown format %q", o.format)
	}
	return o, nil
}

func loadConfig(o options) (config.AppConfig, error) {
	var cfg config.AppConfig
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	} else {
		if err := config.LoadAppConfig(); err != nil {
			return cfg, err
		}
		cfg = config.Config
	}

	garageURL, err := feedURL(o.garageURL)
	if err != nil {
		return cfg, err
	}
	if garageURL != "" {
		cfg.Client.GarageURL = garageURL
	}
	spotURL, err := feedURL(o.spotURL)
	if err != nil {
		return cfg, err
	}
	if spotURL != "" {
		cfg.Client.ParkingSpotURL = spotURL
	}
	if o.timeoutMS > 0 {
		cfg.Client.TimeoutMS = o.timeoutMS
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	log := internal.NewLogger(cfg.Logging, stderr)
	client := odpamsterdam.New(
		odpamsterdam.WithConfig(cfg),
		odpamsterdam.WithHTTPClient(newHTTPClient()),
		odpamsterdam.WithLogger(log),
	)
	defer func() { _ = client.Close() }()

	switch o.mode {
	case "garages":
		filter, err := garageFilter(o)
		if err != nil {
			return err
		}
		garages, err := client.AllGarages(ctx, filter)
		if err != nil {
			return err
		}
		if o.near != "" {
			lat, lon, err := utils.ParseLatLon(o.near)
			if err != nil {
				return err
			}
			nearby := formatter.SortByDistance(garages, lat, lon)
			if o.format == "text" {
				return formatter.WriteNearbyGarages(stdout, nearby)
			}
			return writeJSON(stdout, formatter.WrapNearbyGarages(nearby, time.Now()))
		}
		if o.format == "text" {
			return formatter.WriteGarages(stdout, garages)
		}
		return writeJSON(stdout, formatter.WrapGarages(garages, time.Now()))

	case "garage":
		if o.id == "" {
			return fmt.Errorf("-id is required for -mode=garage")
		}
		g, err := client.Garage(ctx, o.id)
		if err != nil {
			return err
		}
		if o.format == "text" {
			return formatter.WriteGarages(stdout, []models.Garage{g})
		}
		return writeJSON(stdout, g)

	case "locations":
		spots, err := client.Locations(ctx, o.limit, o.parkingType)
		if err != nil {
			return err
		}
		if o.format == "text" {
			return formatter.WriteParkingSpots(stdout, spots)
		}
		return writeJSON(stdout, formatter.WrapParkingSpots(spots, time.Now()))

	case "overview":
		return overview(ctx, client, o, stdout)

	case "serve":
		if cfg.Logging.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		return server.New(client, cfg.Server, log).Run(ctx)

	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}
}

// overview fetches garages and parking spots concurrently.
func overview(ctx context.Context, client *odpamsterdam.Client, o options, stdout io.Writer) error {
	filter, err := garageFilter(o)
	if err != nil {
		return err
	}

	var (
		garages []models.Garage
		spots   []models.ParkingSpot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		garages, err = client.AllGarages(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		spots, err = client.Locations(gctx, o.limit, o.parkingType)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if o.format == "text" {
		if err := formatter.WriteGarages(stdout, garages); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(stdout)
		return formatter.WriteParkingSpots(stdout, spots)
	}
	return writeJSON(stdout, formatter.WrapOverview(garages, spots, time.Now()))
}

func garageFilter(o options) (odpamsterdam.GarageFilter, error) {
	vehicle, err := models.ParseVehicleType(o.vehicle)
	if err != nil {
		return odpamsterdam.GarageFilter{}, err
	}
	category, err := models.ParseGarageCategory(o.category)
	if err != nil {
		return odpamsterdam.GarageFilter{}, err
	}
	return odpamsterdam.GarageFilter{Vehicle: vehicle, Category: category}, nil
}

func writeJSON(w io.Writer, v any) error {
	buf, err := formatter.BuildJSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}
