package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"sidesweep/internal/di"
	"sidesweep/internal/infrastructure/config"
	"sidesweep/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	var (
		configPath = flag.String("config", envService.GetDefault("SWEEP_CONFIG", "sweep.toml"), "path to TOML config")
		targetURL  = flag.String("url", "", "host application URL (overrides config)")
		selectAll  = flag.Bool("all", false, "select every deletable row")
		refList    = flag.String("refs", "", "comma-separated refs to select")
		headless   = flag.Bool("headless", envService.GetBool("SWEEP_HEADLESS", true), "run the browser headless")
		debug      = flag.Bool("debug", envService.GetBool("SWEEP_DEBUG", false), "debug logging")
	)
	flag.Parse()

	cfgFile, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if *targetURL != "" {
		cfgFile.Target.URL = *targetURL
	}
	if cfgFile.Target.URL == "" {
		log.Fatal("no target URL: pass -url or set [target].url in the config")
	}

	// Env beats the config file for per-run tuning.
	if n := envService.GetInt("SWEEP_CONCURRENCY", 0); n > 0 {
		cfgFile.Engine.Concurrency = n
	}
	if d := envService.GetDuration("SWEEP_STAGGER", 0); d > 0 {
		cfgFile.Engine.StaggerMs = int(d.Milliseconds())
	}
	if dir := envService.Get("SWEEP_EVIDENCE_DIR"); dir != "" {
		cfgFile.Evidence.Dir = dir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	container, err := di.NewContainer(ctx, di.Config{
		File:     cfgFile,
		Headless: *headless,
		Debug:    *debug,
	})
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		container.Close(shutdownCtx)
	}()

	engine := container.Engine
	if err := engine.StartWatcher(ctx); err != nil {
		container.Logger.Warn("watcher not started", "error", err)
	}
	if err := engine.AttachSelectionAffordances(); err != nil {
		container.Logger.Warn("affordance attach failed", "error", err)
	}

	switch {
	case *selectAll:
		n, err := engine.SelectAll()
		if err != nil {
			log.Fatalf("select error: %v", err)
		}
		container.Logger.Info("selected all rows", "count", n)
	case *refList != "":
		for _, ref := range strings.Split(*refList, ",") {
			ref = strings.TrimSpace(ref)
			if ref == "" {
				continue
			}
			if _, err := engine.Toggle(ref); err != nil {
				container.Logger.Warn("ref skipped", "ref", ref, "error", err)
			}
		}
	default:
		log.Fatal("nothing selected: pass -all or -refs")
	}

	if engine.SelectionCount() == 0 {
		fmt.Println("nothing to delete")
		return
	}

	summary, err := engine.RunRemoval(ctx)
	if err != nil {
		container.Logger.Error("run failed", "error", err)
		os.Exit(1)
	}
	if summary == nil {
		fmt.Println("nothing to delete")
		return
	}

	fmt.Printf("deleted %d/%d", summary.Succeeded, summary.Total)
	if summary.Failed > 0 {
		fmt.Printf(", %d failed", summary.Failed)
	}
	fmt.Println()
}
