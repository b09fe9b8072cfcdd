package di

import (
	"context"
	"fmt"

	"sidesweep/internal/application/port/output"
	"sidesweep/internal/infrastructure/browser/rod"
	"sidesweep/internal/infrastructure/config"
	"sidesweep/internal/infrastructure/logger"
	"sidesweep/internal/infrastructure/status"
	"sidesweep/internal/usecase/removal"
)

type Container struct {
	Surface output.SurfacePort
	Logger  output.LoggerPort
	Engine  *removal.Engine
	Status  *status.Server
}

type Config struct {
	File     *config.File
	Headless bool
	Debug    bool
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter("sweep", cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.Headless
	surface, err := rod.NewSurfaceAdapter(ctx, browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	if cfg.File.Target.URL != "" {
		if err := surface.Open(cfg.File.Target.URL); err != nil {
			surface.Close()
			log.Close()
			return nil, fmt.Errorf("failed to open target: %w", err)
		}
	}

	var sinks status.Fanout
	if cfg.File.Status.Overlay {
		sinks = append(sinks, status.NewOverlay(surface))
	}

	engine := removal.New(surface, sinks, log, cfg.File.EngineConfig())

	var srv *status.Server
	if cfg.File.Status.Addr != "" {
		srv = status.NewServer(cfg.File.Status.Addr, engine, log)
		srv.Start()
	}

	return &Container{
		Surface: surface,
		Logger:  log,
		Engine:  engine,
		Status:  srv,
	}, nil
}

func (c *Container) Close(ctx context.Context) {
	if c.Engine != nil {
		c.Engine.StopWatcher()
		c.Engine.SetEnabled(false)
	}
	if c.Status != nil {
		_ = c.Status.Shutdown(ctx)
	}
	if c.Surface != nil {
		c.Surface.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}
