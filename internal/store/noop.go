package store

import "StockCompass/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) AddWatch(_, _ string) error    { return nil }
func (n *NoopStore) RemoveWatch(_, _ string) error { return nil }

func (n *NoopStore) Watchlist(_ string) ([]string, error) { return nil, nil }
func (n *NoopStore) WatchedSymbols() ([]string, error)    { return nil, nil }

func (n *NoopStore) RecordSnapshot(_ string, _ *model.TechnicalFeatures) error { return nil }
func (n *NoopStore) RecordSimulation(_ *SimulationRun) error                   { return nil }

func (n *NoopStore) Close() error { return nil }
