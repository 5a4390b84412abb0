package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"StockCompass/internal/model"
	"StockCompass/internal/store"
)

func (s *Server) handleFeatures(c echo.Context) error {
	features, err := s.quotes.Features(c.Param("symbol"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, features)
}

func (s *Server) handleNarrative(c echo.Context) error {
	features, err := s.quotes.Features(c.Param("symbol"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, features.Narrative())
}

func (s *Server) handleBacktest(c echo.Context) error {
	req := new(backtestRequest)
	if err := s.bind(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	plan, err := req.plan()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	series, err := s.quotes.History(req.Symbol)
	if err != nil {
		return httpError(c, err)
	}
	result, err := s.sim.RunHistoricalBacktest(series, plan)
	if err != nil {
		return httpError(c, err)
	}

	s.recordRun(req.Symbol, "historical", 0, 0, result)
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleForecast(c echo.Context) error {
	req := new(forecastRequest)
	if err := s.bind(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	plan, err := req.plan()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	sim := s.sim
	if req.Seed != nil {
		sim = sim.WithSeed(*req.Seed)
	}

	series, err := s.quotes.History(req.Symbol)
	if err != nil {
		return httpError(c, err)
	}
	result, err := sim.RunForecastSimulation(series, plan, req.HorizonYears)
	if err != nil {
		return httpError(c, err)
	}

	// Record the seed the run actually used, so it can be replayed from the
	// stored row alone.
	s.recordRun(req.Symbol, "forecast", req.HorizonYears, sim.Seed(), result)
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleWatchlist(c echo.Context) error {
	symbols, err := s.store.Watchlist(c.Param("user"))
	if err != nil {
		return httpError(c, err)
	}
	if symbols == nil {
		symbols = []string{}
	}
	return c.JSON(http.StatusOK, symbols)
}

func (s *Server) handleAddWatch(c echo.Context) error {
	req := new(watchRequest)
	if err := s.bind(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if err := s.store.AddWatch(c.Param("user"), req.Symbol); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleRemoveWatch(c echo.Context) error {
	if err := s.store.RemoveWatch(c.Param("user"), c.Param("symbol")); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// recordRun persists a summary of a simulation; failures only log, the
// response is already computed.
func (s *Server) recordRun(symbol, mode string, horizonYears float64, seed int64, result model.SimulationResult) {
	if len(result) == 0 {
		return
	}
	last := result[len(result)-1]
	if err := s.store.RecordSimulation(&store.SimulationRun{
		Symbol:            symbol,
		Mode:              mode,
		HorizonYears:      horizonYears,
		Seed:              seed,
		Slippage:          s.sim.Slippage(),
		FinalValue:        last.PortfolioValue,
		TotalContribution: last.CumulativeContribution,
		Points:            len(result),
	}); err != nil {
		log.Printf("[ERROR] record simulation run: %v", err)
	}
}
