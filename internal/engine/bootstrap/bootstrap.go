// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/wxmenu/internal/engine/config"
	"github.com/go-arcade/wxmenu/internal/engine/router"
	"github.com/go-arcade/wxmenu/internal/engine/service"
	"github.com/go-arcade/wxmenu/pkg/cron"
	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/go-arcade/wxmenu/pkg/metrics"
	"github.com/go-arcade/wxmenu/pkg/pprof"
	"github.com/go-arcade/wxmenu/pkg/shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// DriftJobName is the cron job name of the drift check.
const DriftJobName = "menu-drift"

// ProviderSet provides the application-level dependencies.
var ProviderSet = wire.NewSet(
	NewScheduler,
	NewApp,
)

type App struct {
	HttpApp   *fiber.App
	Metrics   *metrics.Server
	Pprof     *pprof.Server
	Scheduler *cron.Scheduler
	Shutdown  *shutdown.Manager
	Logger    *zap.Logger
	AppConf   *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

// NewScheduler registers the drift check when it is enabled. The
// scheduler is returned either way so that Run can start and stop it.
func NewScheduler(driftConf *config.DriftConfig, services *service.Services, recorder *metrics.CronMetricsRecorder) (*cron.Scheduler, error) {
	s := cron.New(
		cron.WithMetricsRecorder(recorder),
		cron.WithTimeout(time.Duration(driftConf.Timeout)*time.Second),
	)
	if !driftConf.Enabled {
		return s, nil
	}
	if err := s.AddFunc(DriftJobName, driftConf.Spec, services.Drift.CheckAll); err != nil {
		return nil, err
	}
	return s, nil
}

// NewApp takes the logger and TracerProvider first so every other component
// can use them while initializing.
func NewApp(
	logger *zap.Logger,
	_ *sdktrace.TracerProvider,
	rt *router.Router,
	metricsServer *metrics.Server,
	pprofServer *pprof.Server,
	scheduler *cron.Scheduler,
	sm *shutdown.Manager,
	appConf *config.AppConfig,
) (*App, func(), error) {
	app := &App{
		HttpApp:   rt.Router(),
		Metrics:   metricsServer,
		Pprof:     pprofServer,
		Scheduler: scheduler,
		Shutdown:  sm,
		Logger:    logger,
		AppConf:   appConf,
	}

	cleanup := func() {
		logger.Info("Stopping scheduler...")
		scheduler.Stop()
		_ = logger.Sync()
	}

	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	// Wire build App (every dependency is injected by wire)
	return initApp(configFile)
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	appConf := app.AppConf

	if err := app.Metrics.Start(); err != nil {
		log.Errorw("metrics server failed to start", "error", err)
	}
	if err := app.Pprof.Start(); err != nil {
		log.Errorw("pprof server failed to start", "error", err)
	}
	app.Scheduler.Start()
	for _, e := range app.Scheduler.Entries() {
		log.Infow("cron job scheduled", "name", e.Name, "spec", e.Spec, "next", e.Next)
	}

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// start HTTP server (async)
	go func() {
		addr := appConf.Http.Addr()
		log.Infow("HTTP listener started",
			"address", addr,
		)
		if err := app.HttpApp.Listen(addr); err != nil {
			log.Errorw("HTTP listener failed",
				"address", addr,
				"error", err,
			)
		}
	}()

	// wait for exit signal
	sig := <-quit
	log.Infof("Received signal: %v, shutting down gracefully...", sig)
	app.Shutdown.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), appConf.Http.ShutdownDuration())
	defer shutdownCancel()

	// close components in order
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}
	if err := app.Metrics.Stop(shutdownCtx); err != nil {
		log.Errorw("metrics server shutdown error", "error", err)
	}
	if err := app.Pprof.Stop(shutdownCtx); err != nil {
		log.Errorw("pprof server shutdown error", "error", err)
	}

	if cleanup != nil {
		cleanup()
	}
	log.Info("Server exited")
}
