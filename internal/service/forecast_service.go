package service

import (
	"context"
	"errors"
	"math"

	"github.com/andresuchdata/popar-tracker/internal/cache"
	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/forecast"
	"github.com/rs/zerolog/log"
)

const noHistoryMessage = "Not enough historical data to build a forecast"

// MaxLookbackMonths bounds the history window a request may ask for.
const MaxLookbackMonths = 120

// HistoryLoader loads the monthly series for a lookback window.
type HistoryLoader interface {
	Load(ctx context.Context, lookbackMonths int) ([]domain.PeriodRecord, error)
}

type ForecastService struct {
	loader          HistoryLoader
	cache           cache.ForecastCache
	defaultLookback int
}

func NewForecastService(loader HistoryLoader, cacheImpl cache.ForecastCache, defaultLookback int) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	if defaultLookback <= 0 {
		defaultLookback = 12
	}
	return &ForecastService{loader: loader, cache: cacheImpl, defaultLookback: defaultLookback}
}

// Forecast always answers with a response. Missing history degrades to an
// empty forecast with default scores; any other failure is reported as
// success=false with the error message.
func (s *ForecastService) Forecast(ctx context.Context, req domain.ForecastRequest) *domain.ForecastResponse {
	if req.LookbackMonths <= 0 {
		req.LookbackMonths = s.defaultLookback
	}
	if req.LookbackMonths > MaxLookbackMonths {
		req.LookbackMonths = MaxLookbackMonths
	}

	if resp, ok, err := s.cache.Get(ctx, req); err == nil && ok {
		return resp
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get failed")
	}

	history, err := s.loader.Load(ctx, req.LookbackMonths)
	if errors.Is(err, domain.ErrDataUnavailable) {
		log.Info().Int("lookback_months", req.LookbackMonths).Msg("forecast: history unavailable")
		return unavailableResponse()
	}
	if err != nil {
		log.Error().Err(err).Int("lookback_months", req.LookbackMonths).Msg("forecast: failed to load history")
		return failedResponse(err)
	}

	analysis, err := forecast.Analyze(history)
	if err != nil {
		log.Error().Err(err).Msg("forecast: analysis failed")
		return failedResponse(err)
	}

	resp := &domain.ForecastResponse{
		Success:         true,
		YearlyForecast:  roundPoints(analysis.Forecast),
		ConfidenceScore: analysis.Scores.ConfidenceScore,
		Alerts:          analysis.Alerts,
		InventoryHealth: analysis.Scores.InventoryHealth,
		POEfficiency:    analysis.Scores.POEfficiency,
		PARHealth:       analysis.Scores.PARHealth,
	}
	if req.IncludeHistorical {
		resp.Historical = history
	}

	log.Debug().
		Int("history_months", len(history)).
		Int("confidence", resp.ConfidenceScore).
		Int("alerts", len(resp.Alerts)).
		Msg("forecast: computed")

	if err := s.cache.Set(ctx, req, resp); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set failed")
	}

	return resp
}

func unavailableResponse() *domain.ForecastResponse {
	scores := forecast.Health(nil)
	return &domain.ForecastResponse{
		Success:         true,
		Message:         noHistoryMessage,
		YearlyForecast:  []domain.ForecastPoint{},
		ConfidenceScore: forecast.Confidence(nil),
		Alerts:          []domain.Alert{},
		InventoryHealth: scores.InventoryHealth,
		POEfficiency:    scores.POEfficiency,
		PARHealth:       scores.PARHealth,
	}
}

func failedResponse(err error) *domain.ForecastResponse {
	return &domain.ForecastResponse{
		Success:        false,
		Error:          err.Error(),
		YearlyForecast: []domain.ForecastPoint{},
		Alerts:         []domain.Alert{},
	}
}

func roundPoints(points []domain.ForecastPoint) []domain.ForecastPoint {
	out := make([]domain.ForecastPoint, len(points))
	for i, p := range points {
		out[i] = domain.ForecastPoint{
			Period:    p.Period,
			POAmount:  round2(p.POAmount),
			PARAmount: round2(p.PARAmount),
			Demand:    round2(p.Demand),
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
