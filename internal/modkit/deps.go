package modkit

import (
	"producescan/internal/modkit/repokit"
	"producescan/internal/platform/config"
	"producescan/internal/platform/logger"
	"producescan/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// SQL is the primary relational store, postgres or sqlite, nil when neither is enabled
	SQL repokit.TxRunner
	CH  store.Clickhouse
}
