// Command producescan-scan runs image files through the scan pipeline and prints the results
//
//	producescan-scan [-camera] [-actor name] image...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"producescan/internal/core/version"
	"producescan/internal/modkit/module"
	"producescan/internal/platform/config"
	"producescan/internal/platform/logger"
	"producescan/internal/platform/store"

	"producescan/internal/services/api"
	recmod "producescan/internal/services/recognition/module"
	"producescan/internal/services/scan/domain"
	scanmod "producescan/internal/services/scan/module"
)

func main() {
	camera := flag.Bool("camera", false, "treat each file as a camera frame")
	actor := flag.String("actor", "", "user the scans are attributed to")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-camera] [-actor name] image...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}
	bi := version.For("producescan-scan")
	logOpt := logger.FromEnv(bi.Service)
	logOpt.StaticFields = map[string]string{"version": bi.Version, "label_set": bi.LabelSet}
	logger.Init(logOpt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Args(), *camera, *actor); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, files []string, camera bool, actor string) error {
	root := config.New()
	l := logger.Get()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "scan"), store.WithLogger(*l))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()
	if err := api.EnsureSchema(ctx, st); err != nil {
		return err
	}

	rt := recmod.Open(ctx, recmod.FromConfig(root))
	opt := api.Options{Config: root, Store: st, Logger: l, Recognition: &rt}

	api.Modules(api.Deps(opt), opt)
	ports, ok := module.PortsAs[scanmod.Ports]("scan")
	if !ok || ports.Pipeline == nil {
		return fmt.Errorf("scan module not built")
	}
	pipeline := ports.Pipeline

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, f := range files {
		img, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		in := domain.Input{Image: img, Filename: filepath.Base(f), Actor: actor}

		var out domain.Outcome
		if camera {
			out = pipeline.Capture(ctx, in)
		} else {
			in.Source = domain.SourceUpload
			out = pipeline.Scan(ctx, in)
		}
		if err := enc.Encode(out.View()); err != nil {
			return err
		}
	}
	return nil
}
