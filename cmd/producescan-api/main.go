// @title         ProduceScan API
// @version       0.1.0
// @description   Identifies produce from images, assesses ripeness and joins nutrition facts
// @BasePath      /api/v1
// @securityDefinitions.apikey BearerAuth
// @in            header
// @name          Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"producescan/internal/adapters/auth/jwtauth"
	"producescan/internal/core/version"
	"producescan/internal/modkit/httpkit"
	"producescan/internal/modkit/repokit"
	"producescan/internal/platform/config"
	"producescan/internal/platform/logger"
	phttp "producescan/internal/platform/net/http"
	"producescan/internal/platform/net/middleware"
	"producescan/internal/platform/store"

	"producescan/internal/services/api"
	recmod "producescan/internal/services/recognition/module"
)

func main() {
	// .env before anything reads the environment
	if err := config.LoadDotEnv(); err != nil {
		logger.Get().Panic().Err(err).Msg("failed to load .env")
	}
	bi := version.For("producescan-api")
	logOpt := logger.FromEnv(bi.Service)
	logOpt.StaticFields = map[string]string{"version": bi.Version, "label_set": bi.LabelSet}
	logger.Init(logOpt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	l := logger.Get()

	// sqlite unless SERVICE_PGSQL_DBURL is set, clickhouse when SERVICE_CLICKHOUSE_DBURL is set
	st, err := store.Open(ctx, store.ConfigFromEnv(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	// fail fast when a configured backend does not answer
	repokit.MustGuard(ctx, st)

	if err := api.EnsureSchema(ctx, st); err != nil {
		l.Panic().Err(err).Msg("schema bootstrap failed")
	}

	// bearer tokens are optional unless CORE_SCAN_REQUIRE_AUTH is set
	var auth middleware.AuthPort
	secret := apiCfg.MayString("JWT_SECRET", "")
	if root.Prefix("CORE_SCAN_").MayBool("REQUIRE_AUTH", false) {
		secret = apiCfg.MustString("JWT_SECRET")
	}
	if secret != "" {
		v, err := jwtauth.New(jwtauth.Options{
			Secret: secret,
			Issuer: apiCfg.MayString("JWT_ISSUER", ""),
			Leeway: apiCfg.MayDuration("JWT_LEEWAY", 0),
		})
		if err != nil {
			l.Panic().Err(err).Msg("jwt verifier")
		}
		auth = httpkit.NewPortFunc(v.Parse)
	} else {
		l.Info().Msg("CORE_API_JWT_SECRET unset, scans are anonymous")
	}

	// probe the models before taking traffic
	rt := recmod.Open(ctx, recmod.FromConfig(root))

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(root.Prefix("CORE_"))

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			Auth:           auth,
			Recognition:    &rt,
		},
	)

	l.Info().Str("addr", srv.Addr()).Str("state", rt.Models.State().String()).Msg("producescan api starting")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
