package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"StockCompass/internal/backtest"
	"StockCompass/internal/feature"
	"StockCompass/internal/quote"
	"StockCompass/internal/store"
)

// Server exposes the dashboard REST surface over the engines. Handlers stay
// thin: fetch, compute, persist, respond.
type Server struct {
	echo     *echo.Echo
	quotes   *quote.Service
	sim      *backtest.Simulator
	store    store.Store
	validate *validator.Validate
}

// NewServer wires the routes.
func NewServer(quotes *quote.Service, sim *backtest.Simulator, st store.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		quotes:   quotes,
		sim:      sim,
		store:    st,
		validate: validator.New(),
	}

	g := e.Group("/api/v1")
	g.GET("/features/:symbol", s.handleFeatures)
	g.GET("/narrative/:symbol", s.handleNarrative)
	g.POST("/backtest", s.handleBacktest)
	g.POST("/forecast", s.handleForecast)
	g.GET("/watchlist/:user", s.handleWatchlist)
	g.POST("/watchlist/:user", s.handleAddWatch)
	g.DELETE("/watchlist/:user/:symbol", s.handleRemoveWatch)
	return s
}

// Start begins serving and blocks until shutdown.
func (s *Server) Start(addr string) error {
	log.Printf("[INFO] api listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

type errorResponse struct {
	Error string `json:"error"`
}

// httpError maps engine failures onto the API surface: validation mistakes
// are the caller's to fix, short history is a data state, anything else is
// an upstream provider problem.
func httpError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, backtest.ErrInvalidPlan):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, feature.ErrEmptyInput), errors.Is(err, backtest.ErrInsufficientHistory):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: "insufficient data: " + err.Error()})
	default:
		log.Printf("[ERROR] upstream: %v", err)
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "upstream data provider failed"})
	}
}

func (s *Server) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return s.validate.Struct(req)
}
