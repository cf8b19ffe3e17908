package store

import (
	"time"

	"producescan/internal/platform/config"
)

// DefaultLitePath is used when sqlite is enabled without a path
const DefaultLitePath = "producescan.db"

// ConfigFromEnv reads SERVICE_PGSQL_*, SERVICE_SQLITE_* and SERVICE_CLICKHOUSE_*
// postgres is enabled when a DBURL is set, sqlite when postgres is not unless disabled explicitly
func ConfigFromEnv(root config.Conf, clientTag string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	lite := root.Prefix("SERVICE_SQLITE_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")

	pgURL := pg.MayString("DBURL", "")
	chURL := ch.MayString("DBURL", "")

	return Config{
		AppName: "producescan",
		PG: PGConfig{
			Enabled:     pg.MayBool("ENABLED", pgURL != ""),
			URL:         pgURL,
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pg.MayInt("SLOW_MS", 500),
			LogSQL:      pg.MayBool("LOG_SQL", false),
		},
		Lite: LiteConfig{
			Enabled:     lite.MayBool("ENABLED", pgURL == ""),
			Path:        lite.MayString("PATH", DefaultLitePath),
			BusyTimeout: lite.MayDuration("BUSY_TIMEOUT", 5*time.Second),
			SlowQueryMs: lite.MayInt("SLOW_MS", 200),
			LogSQL:      lite.MayBool("LOG_SQL", false),
		},
		CH: CHConfig{
			Enabled:    ch.MayBool("ENABLED", chURL != ""),
			URL:        chURL,
			ClientName: "producescan",
			ClientTag:  clientTag,
		},
	}
}
