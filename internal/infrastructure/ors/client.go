package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/config"
	"github.com/festival-trip-planner/internal/domain"
)

// Client wraps the OpenRouteService API for geocoding and driving directions.
// Every call is a single attempt: free-tier quotas make automatic retry
// storms more dangerous than a user-visible error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	profile    string
	logger     *zap.Logger
}

func NewClient(cfg *config.ORSConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		profile: cfg.Profile,
		logger:  logger,
	}
}

// Geocode resolves a free-text query to the first candidate coordinate.
func (c *Client) Geocode(ctx context.Context, query string) (*domain.Point, error) {
	endpoint := fmt.Sprintf("%s/geocode/search?api_key=%s&text=%s&size=1&boundary.country=EC",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	c.logger.Debug("Calling ORS geocode API", zap.String("query", query))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("no geocoding candidates for %q", query)
	}

	point, ok := fc.Features[0].Geometry.(orb.Point)
	if !ok {
		return nil, fmt.Errorf("unexpected geometry type in geocode response")
	}

	return &domain.Point{Lat: point.Lat(), Lon: point.Lon()}, nil
}

// ComputeRoute traces a driving path between two coordinates.
func (c *Client) ComputeRoute(ctx context.Context, origin, destination domain.Point) (*domain.Route, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)

	payload := map[string]interface{}{
		"coordinates": [][]float64{
			{origin.Lon, origin.Lat},
			{destination.Lon, destination.Lat},
		},
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode directions request: %w", err)
	}

	c.logger.Debug("Calling ORS directions API",
		zap.Float64("origin_lat", origin.Lat),
		zap.Float64("origin_lon", origin.Lon),
		zap.Float64("dest_lat", destination.Lat),
		zap.Float64("dest_lon", destination.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("ORS directions API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("ors directions error: status %d", resp.StatusCode)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("no route between the given points")
	}

	feature := fc.Features[0]
	line, ok := feature.Geometry.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("unexpected geometry type in directions response")
	}

	route := &domain.Route{
		Points: make([]domain.Point, 0, len(line)),
	}
	for _, p := range line {
		route.Points = append(route.Points, domain.Point{Lat: p.Lat(), Lon: p.Lon()})
	}

	if summary, ok := feature.Properties["summary"].(map[string]interface{}); ok {
		if d, ok := summary["distance"].(float64); ok {
			route.DistanceKm = d / 1000.0
		}
		if d, ok := summary["duration"].(float64); ok {
			route.DurationS = d
		}
	}

	c.logger.Debug("ORS directions call successful",
		zap.Int("points", len(route.Points)),
		zap.Float64("distance_km", route.DistanceKm))

	return route, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("ORS API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("ors API error: status %d", resp.StatusCode)
	}

	return body, nil
}
