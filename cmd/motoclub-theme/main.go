package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"motoclub-theme/internal/config"
	"motoclub-theme/internal/document"
	"motoclub-theme/internal/metrics"
	"motoclub-theme/internal/remote"
	"motoclub-theme/internal/site"
	"motoclub-theme/internal/ui"
)

var version = "dev"

func main() {
	// Load .env file if it exists
	// The error is ignored because in production the environment is set directly
	_ = godotenv.Load()

	os.Exit(run())
}

// run serves until a shutdown signal and returns the process exit code.
// Every deferred close has run by the time it returns.
func run() int {
	ui.PrintBanner(version, "Site theming service")

	cfg, err := config.Load(envOr("CONFIG_FILE", "config.json"))
	if err != nil {
		ui.ErrorNote(err.Error())
		return 1
	}

	ui.SetLevel(cfg.Env.LogLevel)
	if cfg.Env.LogFile != "" {
		sink := ui.AddFileSink(cfg.Env.LogFile, cfg.Env.LogMaxSizeMB, cfg.Env.LogMaxBackups)
		defer sink.Close()
	}

	if cfg.Env.IsDevelopment() {
		ui.LogStatus("info", "Environment: "+ui.Warn("DEVELOPMENT"))
	} else {
		ui.LogStatus("info", "Environment: "+ui.Success("PRODUCTION"))
	}
	ui.LogStatus("info", "Domain: "+cfg.Env.Domain)

	if err := cfg.Validate(); err != nil {
		// A missing colors file only means the built-in palette is served.
		var verr *config.ValidationError
		if !errors.Is(err, config.ErrColorsFileMissing) || !errors.As(err, &verr) || verr.Fatal() {
			ui.ErrorNote(err.Error())
			return 1
		}
		ui.WarningNote(err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.MetricsListen != "" {
		ms := metrics.NewMetricsServer(cfg.MetricsListen)
		ms.Start()
		ui.LogStatus("info", "Metrics: http://localhost"+cfg.MetricsListen+"/metrics")

		go func() {
			<-ctx.Done()
			ui.LogGracefulShutdown()
			_ = ms.Shutdown(context.Background())
		}()
	}

	doc := document.New(cfg.Regions...)
	if cfg.Env.TailwindRuntime {
		doc.EnableTailwind()
	}

	ui.LogSection("Site palette")
	ui.LogGroupItem("Source", cfg.ColorsSource())
	mgr := remote.NewManager(cfg.ColorsSource(), doc, nil)
	mgr.Init(ctx)
	if cfg.SiteProfile != "" {
		if err := mgr.ApplyProfile(cfg.SiteProfile); err != nil {
			ui.LogStatus("warn", "site_profile "+cfg.SiteProfile+": "+err.Error())
		}
	}
	ui.LogGroupItem("Active", mgr.Current())
	ui.LogGroupItem("Profiles", strings.Join(mgr.Profiles().Keys(), ", "))

	srv, err := site.NewServer(cfg, mgr)
	if err != nil {
		ui.ErrorNote(err.Error())
		return 1
	}
	if err := srv.Start(ctx); err != nil {
		ui.LogStatus("error", "Server failed: "+err.Error())
		return 1
	}
	ui.PrintFooter("Theme server stopped")
	return 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
