package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/domain"
	apperrors "github.com/festival-trip-planner/internal/pkg/errors"
	"github.com/festival-trip-planner/internal/usecase"
)

func TestGeoResolver_Resolve(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("literal coordinate input skips the provider", func(t *testing.T) {
		mockGeocoder := &MockGeocodingRepository{}
		resolver := usecase.NewGeoResolver(mockGeocoder, nil, logger, time.Hour)

		p, err := resolver.Resolve(ctx, "-0.1807, -78.4678")
		require.NoError(t, err)
		assert.InDelta(t, -0.1807, p.Lat, 1e-9)
		assert.InDelta(t, -78.4678, p.Lon, 1e-9)
		mockGeocoder.AssertNotCalled(t, "Geocode")
	})

	t.Run("literal coordinates outside valid range", func(t *testing.T) {
		mockGeocoder := &MockGeocodingRepository{}
		resolver := usecase.NewGeoResolver(mockGeocoder, nil, logger, time.Hour)

		p, err := resolver.Resolve(ctx, "123.0, -78.0")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
	})

	t.Run("known place resolves from the fallback table", func(t *testing.T) {
		mockGeocoder := &MockGeocodingRepository{}
		resolver := usecase.NewGeoResolver(mockGeocoder, nil, logger, time.Hour)

		p, err := resolver.Resolve(ctx, "Quito")
		require.NoError(t, err)
		assert.InDelta(t, -0.1807, p.Lat, 1e-4)
		assert.InDelta(t, -78.4678, p.Lon, 1e-4)
		mockGeocoder.AssertNotCalled(t, "Geocode")
	})

	t.Run("unknown place goes to the provider", func(t *testing.T) {
		mockGeocoder := &MockGeocodingRepository{}
		mockGeocoder.On("Geocode", ctx, "Hacienda Zuleta").
			Return(&domain.Point{Lat: 0.2041, Lon: -78.0648}, nil)

		resolver := usecase.NewGeoResolver(mockGeocoder, nil, logger, time.Hour)

		p, err := resolver.Resolve(ctx, "Hacienda Zuleta")
		require.NoError(t, err)
		assert.InDelta(t, 0.2041, p.Lat, 1e-9)
		mockGeocoder.AssertExpectations(t)
	})

	t.Run("provider result is cached", func(t *testing.T) {
		mockGeocoder := &MockGeocodingRepository{}
		mockGeocoder.On("Geocode", ctx, "Hacienda Zuleta").
			Return(&domain.Point{Lat: 0.2041, Lon: -78.0648}, nil).Once()

		mockCache := &MockCacheRepository{}
		mockCache.On("Get", ctx, "geocode:hacienda zuleta").Return(nil, nil)
		mockCache.On("Set", ctx, "geocode:hacienda zuleta", mock.Anything, time.Hour).Return(nil)

		resolver := usecase.NewGeoResolver(mockGeocoder, mockCache, logger, time.Hour)

		_, err := resolver.Resolve(ctx, "Hacienda Zuleta")
		require.NoError(t, err)
		mockCache.AssertExpectations(t)
	})

	t.Run("substring fallback recovers after a provider failure", func(t *testing.T) {
		mockGeocoder := &MockGeocodingRepository{}
		mockGeocoder.On("Geocode", ctx, "Centro Historico de Cuenca").
			Return(nil, errors.New("provider down"))

		resolver := usecase.NewGeoResolver(mockGeocoder, nil, logger, time.Hour)

		p, err := resolver.Resolve(ctx, "Centro Historico de Cuenca")
		require.NoError(t, err)
		assert.InDelta(t, -2.9006, p.Lat, 1e-4)
	})

	t.Run("not found when every tier fails", func(t *testing.T) {
		mockGeocoder := &MockGeocodingRepository{}
		mockGeocoder.On("Geocode", ctx, "Atlantis").
			Return(nil, errors.New("provider down"))

		resolver := usecase.NewGeoResolver(mockGeocoder, nil, logger, time.Hour)

		p, err := resolver.Resolve(ctx, "Atlantis")
		assert.Nil(t, p)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrPlaceNotFound.Code, appErr.Code)
	})

	t.Run("empty input", func(t *testing.T) {
		resolver := usecase.NewGeoResolver(&MockGeocodingRepository{}, nil, logger, time.Hour)

		p, err := resolver.Resolve(ctx, "   ")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, apperrors.ErrPlaceNotFound)
	})
}
