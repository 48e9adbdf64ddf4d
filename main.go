package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/autointelli/intake/internal/client"
	"github.com/autointelli/intake/internal/config"
	"github.com/autointelli/intake/internal/logger"
	"github.com/autointelli/intake/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file (default: ./intake.toml)")
	variantName := flag.String("variant", "material", "form variant: "+strings.Join(config.VariantNames(), ", "))
	flag.Parse()

	if err := run(*configPath, *variantName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, variantName string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	variant, err := cfg.Variant(variantName)
	if err != nil {
		return err
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting intake client",
		zap.String("variant", variant.Name),
		zap.String("backend", cfg.Backend.BaseURL))

	backend := client.New(
		cfg.Backend.BaseURL,
		variant.SubmitPath,
		cfg.Backend.StatusPath,
		cfg.Backend.Timeout,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout)
	defer cancel()

	var ref client.Reference
	var solicitudes []client.Solicitud
	if variant.Dashboard {
		solicitudes, err = backend.LoadSolicitudes(ctx, cfg.SolicitudesSource())
		if err != nil {
			return fmt.Errorf("load dashboard rows: %w", err)
		}
	} else {
		// A failed reference load degrades the session, it does not end it.
		ref, err = backend.LoadReference(ctx, cfg.MasterListSource(), cfg.DimensionsSource())
		if err != nil {
			log.Warn("running with incomplete reference data", zap.Error(err))
		}
	}

	app := ui.New(variant, backend, ref, solicitudes, log)
	if err := app.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}
