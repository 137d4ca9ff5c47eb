package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	"github.com/festival-trip-planner/internal/domain/repository"
	"github.com/festival-trip-planner/internal/pkg/errors"
	"github.com/festival-trip-planner/internal/pkg/utils"
)

// fallbackPlaces resolves well-known Ecuadorian places without touching the
// geocoding provider. Keys are lower-case.
var fallbackPlaces = map[string]domain.Point{
	"quito":            {Lat: -0.1807, Lon: -78.4678},
	"otavalo":          {Lat: 0.2343, Lon: -78.2610},
	"cuenca":           {Lat: -2.9006, Lon: -79.0045},
	"guayaquil":        {Lat: -2.1709, Lon: -79.9224},
	"banos":            {Lat: -1.3928, Lon: -78.4269},
	"baños":            {Lat: -1.3928, Lon: -78.4269},
	"riobamba":         {Lat: -1.6635, Lon: -78.6547},
	"latacunga":        {Lat: -0.9346, Lon: -78.6158},
	"ibarra":           {Lat: 0.3517, Lon: -78.1223},
	"ambato":           {Lat: -1.2417, Lon: -78.6197},
	"loja":             {Lat: -3.9931, Lon: -79.2042},
	"mitad del mundo":  {Lat: -0.0022, Lon: -78.4558},
	"mindo":            {Lat: -0.0542, Lon: -78.7761},
	"puyo":             {Lat: -1.4924, Lon: -77.9962},
	"tena":             {Lat: -0.9938, Lon: -77.8129},
	"esmeraldas":       {Lat: 0.9682, Lon: -79.6517},
	"manta":            {Lat: -0.9677, Lon: -80.7089},
	"salinas":          {Lat: -2.2146, Lon: -80.9527},
	"laguna quilotoa":  {Lat: -0.8583, Lon: -78.9005},
	"puerto lopez":     {Lat: -1.5556, Lon: -80.8107},
	"santo domingo":    {Lat: -0.2522, Lon: -79.1719},
	"cotacachi":        {Lat: 0.3015, Lon: -78.2648},
	"guaranda":         {Lat: -1.5905, Lon: -79.0012},
	"zaruma":           {Lat: -3.6919, Lon: -79.6117},
	"vilcabamba":       {Lat: -4.2608, Lon: -79.2217},
	"puerto ayora":     {Lat: -0.7452, Lon: -90.3135},
	"nueva loja":       {Lat: 0.0847, Lon: -76.8828},
	"macas":            {Lat: -2.3090, Lon: -78.1204},
	"tulcan":           {Lat: 0.8117, Lon: -77.7172},
	"portoviejo":       {Lat: -1.0546, Lon: -80.4545},
	"san lorenzo":      {Lat: 1.2865, Lon: -78.8360},
	"alausi":           {Lat: -2.2006, Lon: -78.8475},
	"montanita":        {Lat: -1.8264, Lon: -80.7509},
	"gualaceo":         {Lat: -2.8919, Lon: -78.7782},
	"papallacta":       {Lat: -0.3652, Lon: -78.1442},
	"sangolqui":        {Lat: -0.3344, Lon: -78.4475},
	"cayambe":          {Lat: 0.0420, Lon: -78.1434},
	"machala":          {Lat: -3.2581, Lon: -79.9554},
}

// GeoResolver turns free-text place names into coordinates. Resolution order
// is deliberate: literal coordinates and known places resolve without network
// latency or rate-limit risk; the provider call is the expensive, failure-prone
// path; a substring match against the table recovers minor wording mismatches
// after a provider failure.
type GeoResolver struct {
	geocoder repository.GeocodingRepository
	cache    repository.CacheRepository
	logger   *zap.Logger
	cacheTTL time.Duration
}

func NewGeoResolver(
	geocoder repository.GeocodingRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *GeoResolver {
	return &GeoResolver{
		geocoder: geocoder,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Resolve returns coordinates for text or errors.ErrPlaceNotFound.
func (r *GeoResolver) Resolve(ctx context.Context, text string) (*domain.Point, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil, errors.ErrPlaceNotFound
	}

	// 1. Literal "lat,lng" input
	if p, ok := parseLatLon(query); ok {
		if !utils.ValidateCoordinates(p.Lat, p.Lon) {
			return nil, errors.ErrInvalidCoordinates
		}
		return p, nil
	}

	// 2. Exact match in the fallback table
	normalized := strings.ToLower(query)
	if p, ok := fallbackPlaces[normalized]; ok {
		return &p, nil
	}

	// 3. External provider, fronted by the cache
	if p, err := r.resolveRemote(ctx, query); err == nil {
		return p, nil
	} else {
		r.logger.Warn("Geocoding provider failed, trying substring fallback",
			zap.String("query", query),
			zap.Error(err))
	}

	// 4. Substring match against fallback keys
	for key, p := range fallbackPlaces {
		if strings.Contains(normalized, key) {
			point := p
			return &point, nil
		}
	}

	return nil, errors.ErrPlaceNotFound.WithDetails(map[string]interface{}{
		"query": text,
	})
}

func (r *GeoResolver) resolveRemote(ctx context.Context, query string) (*domain.Point, error) {
	cacheKey := "geocode:" + strings.ToLower(query)

	if r.cache != nil {
		if data, err := r.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var p domain.Point
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			if err := r.cache.Set(ctx, cacheKey, data, r.cacheTTL); err != nil {
				r.logger.Warn("Failed to cache geocode result", zap.Error(err))
			}
		}
	}

	return p, nil
}

// parseLatLon parses "lat,lng" with optionally signed decimals.
func parseLatLon(s string) (*domain.Point, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, false
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}

	return &domain.Point{Lat: lat, Lon: lon}, true
}
