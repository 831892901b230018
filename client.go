package odpamsterdam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/theoremus-urban-solutions/odp-amsterdam/apperr"
	"github.com/theoremus-urban-solutions/odp-amsterdam/config"
	"github.com/theoremus-urban-solutions/odp-amsterdam/feed"
	"github.com/theoremus-urban-solutions/odp-amsterdam/models"
	"github.com/theoremus-urban-solutions/odp-amsterdam/normalize"
)

// Version of the client library.
const Version = feed.Version

const (
	// GarageURL is the parking garage feed.
	GarageURL = "https://api.data.amsterdam.nl/dcatd/datasets/9ORkef6T-aU29g/purls/1"
	// ParkingSpotURL is the parkeervakken feed.
	ParkingSpotURL = "https://api.data.amsterdam.nl/v1/parkeervakken/parkeervakken"

	// DefaultLocationLimit is the page size used when Locations is called with limit <= 0.
	DefaultLocationLimit = 10
)

// GarageFilter narrows AllGarages. Zero fields match everything; when both are
// set a garage must match both.
type GarageFilter struct {
	Vehicle  models.VehicleType
	Category models.GarageCategory
}

func (f GarageFilter) match(g models.Garage) bool {
	if f.Vehicle != "" && g.Vehicle != f.Vehicle {
		return false
	}
	if f.Category != "" && g.Category != f.Category {
		return false
	}
	return true
}

// Client reads garages and parking spots from the open-data platform.
// It is safe for concurrent use.
type Client struct {
	garageURL      string
	parkingSpotURL string
	rules          normalize.Rules
	log            *slog.Logger

	feedOpts []feed.Option
	feed     *feed.Client
}

// Option configures a Client.
type Option func(*Client)

// WithConfig applies endpoint, transport and filter settings from an application config.
// A config without any filter lists keeps the default normalization rules.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *Client) {
		if cfg.Client.GarageURL != "" {
			c.garageURL = cfg.Client.GarageURL
		}
		if cfg.Client.ParkingSpotURL != "" {
			c.parkingSpotURL = cfg.Client.ParkingSpotURL
		}
		if !cfg.Filters.IsZero() {
			c.rules = cfg.Filters.Rules()
		}
		c.feedOpts = append(c.feedOpts,
			feed.WithTimeout(time.Duration(cfg.Client.TimeoutMS)*time.Millisecond),
			feed.WithUserAgent(cfg.Client.UserAgent),
			feed.WithRateLimit(cfg.Client.RequestsPerSecond, cfg.Client.Burst),
		)
	}
}

// WithGarageURL overrides the garage feed endpoint.
func WithGarageURL(u string) Option {
	return func(c *Client) { c.garageURL = u }
}

// WithParkingSpotURL overrides the parking spot feed endpoint.
func WithParkingSpotURL(u string) Option {
	return func(c *Client) { c.parkingSpotURL = u }
}

// WithHTTPClient uses a caller owned HTTP client. Close leaves it open.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.feedOpts = append(c.feedOpts, feed.WithHTTPClient(hc)) }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.feedOpts = append(c.feedOpts, feed.WithTimeout(d)) }
}

// WithLogger sets the logger for the client and its transport.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log == nil {
			return
		}
		c.log = log
		c.feedOpts = append(c.feedOpts, feed.WithLogger(log))
	}
}

// WithRules replaces the name and value normalization rules.
func WithRules(rules normalize.Rules) Option {
	return func(c *Client) { c.rules = rules }
}

// New creates a client for the open-data platform.
func New(opts ...Option) *Client {
	c := &Client{
		garageURL:      GarageURL,
		parkingSpotURL: ParkingSpotURL,
		rules:          normalize.DefaultRules(),
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.feed = feed.New(c.feedOpts...)
	return c
}

// Rules returns the normalization rules in use.
func (c *Client) Rules() normalize.Rules {
	return c.rules
}

// Close releases the HTTP client if this Client created it.
func (c *Client) Close() error {
	return c.feed.Close()
}

// AllGarages returns every garage in the feed, minus placeholder rows, that matches filter.
//
// A feature missing a required key fails the whole call with a data error
// whose details hold the offending feature.
func (c *Client) AllGarages(ctx context.Context, filter GarageFilter) ([]models.Garage, error) {
	features, err := c.features(ctx, c.garageURL, nil)
	if err != nil {
		return nil, err
	}

	garages := make([]models.Garage, 0, len(features))
	for _, f := range features {
		if c.rules.Excluded(f.Name()) {
			continue
		}
		g, err := models.GarageFromFeature(f, c.rules)
		if err != nil {
			return nil, c.buildError("odpamsterdam.AllGarages", f, err)
		}
		if !filter.match(g) {
			continue
		}
		garages = append(garages, g)
	}

	c.log.Debug("garages loaded", "count", len(garages), "features", len(features))
	return garages, nil
}

// Garage returns the garage whose Id equals id exactly.
func (c *Client) Garage(ctx context.Context, id string) (models.Garage, error) {
	features, err := c.features(ctx, c.garageURL, nil)
	if err != nil {
		return models.Garage{}, err
	}

	for _, f := range features {
		fid, err := f.ID()
		if err != nil {
			return models.Garage{}, c.buildError("odpamsterdam.Garage", f, err)
		}
		if fid != id {
			continue
		}
		g, err := models.GarageFromFeature(f, c.rules)
		if err != nil {
			return models.Garage{}, c.buildError("odpamsterdam.Garage", f, err)
		}
		return g, nil
	}

	return models.Garage{}, apperr.NotFound(fmt.Sprintf("No garage was found with id - %s", id)).
		WithOp("odpamsterdam.Garage").
		WithDetails(map[string]string{"id": id})
}

// Locations returns up to limit parking spots of the given type.
// A limit <= 0 uses DefaultLocationLimit; an empty type is sent as is.
func (c *Client) Locations(ctx context.Context, limit int, parkingType string) ([]models.ParkingSpot, error) {
	if limit <= 0 {
		limit = DefaultLocationLimit
	}
	params := url.Values{}
	params.Set("_pageSize", strconv.Itoa(limit))
	params.Set("eType", parkingType)
	params.Set("_format", "geojson")

	features, err := c.features(ctx, c.parkingSpotURL, params)
	if err != nil {
		return nil, err
	}

	spots := make([]models.ParkingSpot, 0, len(features))
	for _, f := range features {
		s, err := models.ParkingSpotFromFeature(f, c.rules)
		if err != nil {
			return nil, c.buildError("odpamsterdam.Locations", f, err)
		}
		spots = append(spots, s)
	}

	c.log.Debug("parking spots loaded", "count", len(spots), "type", parkingType)
	return spots, nil
}

// features fetches a feature collection and returns its features list.
func (c *Client) features(ctx context.Context, rawURL string, params url.Values) ([]models.Feature, error) {
	doc, err := c.feed.Fetch(ctx, rawURL, params)
	if err != nil {
		return nil, err
	}

	collection, ok := doc.(map[string]any)
	if !ok {
		return nil, apperr.Data("Got wrong data from the API").
			WithOp("odpamsterdam.features").
			WithDetails(doc)
	}
	raw, ok := collection["features"].([]any)
	if !ok {
		return nil, apperr.Wrap(apperr.KindData, "Got wrong data from the API", &models.MissingKeyError{Key: "features"}).
			WithOp("odpamsterdam.features")
	}

	features := make([]models.Feature, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, apperr.Data("Got wrong data from the API").
				WithOp("odpamsterdam.features").
				WithDetails(item)
		}
		features = append(features, models.Feature(obj))
	}
	return features, nil
}

func (c *Client) buildError(op string, f models.Feature, err error) error {
	c.log.Error("feature rejected", "op", op, "error", err)
	var missing *models.MissingKeyError
	if errors.As(err, &missing) {
		return apperr.Wrap(apperr.KindData, fmt.Sprintf("Got wrong data from the API: %s", missing.Key), err).
			WithOp(op).
			WithDetails(f)
	}
	return apperr.Wrap(apperr.KindData, "Got wrong data from the API", err).
		WithOp(op).
		WithDetails(f)
}
