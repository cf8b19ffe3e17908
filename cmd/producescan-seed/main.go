// Command producescan-seed creates the schema and upserts nutrition records from a json or yaml file
//
//	producescan-seed -file data/nutrition.json
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"producescan/internal/core/version"
	"producescan/internal/platform/config"
	"producescan/internal/platform/logger"
	"producescan/internal/platform/store"

	"producescan/internal/services/api"
	nrepo "producescan/internal/services/nutrition/repo"
	"producescan/internal/services/nutrition/seed"
	nsvc "producescan/internal/services/nutrition/service"
)

func main() {
	file := flag.String("file", "", "json or yaml file of nutrition records")
	schemaOnly := flag.Bool("schema-only", false, "create tables and exit")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load .env")
	}
	bi := version.For("producescan-seed")
	logOpt := logger.FromEnv(bi.Service)
	logOpt.StaticFields = map[string]string{"version": bi.Version, "label_set": bi.LabelSet}
	logger.Init(logOpt)
	l := logger.Get()
	if *file == "" && !*schemaOnly {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(config.New(), "seed"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := api.EnsureSchema(ctx, st); err != nil {
		l.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	if *schemaOnly {
		l.Info().Msg("schema ready")
		return
	}

	recs, err := seed.LoadFile(*file)
	if err != nil {
		l.Fatal().Err(err).Str("file", *file).Msg("load seed file")
	}
	res, err := seed.Apply(ctx, nsvc.New(st.Primary(), nrepo.NewSQL()), recs)
	if err != nil {
		l.Fatal().Err(err).Int("upserted", res.Upserted).Msg("seed failed")
	}
	l.Info().Int("upserted", res.Upserted).Int("skipped", res.Skipped).Str("file", *file).Msg("seed complete")
}
