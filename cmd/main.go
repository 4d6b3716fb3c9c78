package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/ringclock/internal/adapters/canvas"
	"github.com/okian/ringclock/internal/adapters/http/api"
	"github.com/okian/ringclock/internal/adapters/http/site"
	"github.com/okian/ringclock/internal/adapters/http/swagger"
	"github.com/okian/ringclock/internal/adapters/led"
	"github.com/okian/ringclock/internal/adapters/mqtt"
	"github.com/okian/ringclock/internal/adapters/rtc"
	"github.com/okian/ringclock/internal/adapters/timeapi"
	"github.com/okian/ringclock/internal/app"
	"github.com/okian/ringclock/internal/config"
	"github.com/okian/ringclock/internal/events"
	"github.com/okian/ringclock/internal/host"
	"github.com/okian/ringclock/internal/input"
	"github.com/okian/ringclock/internal/ledring"
	"github.com/okian/ringclock/internal/timesync"
	"github.com/okian/ringclock/pkg/logger"
	"github.com/okian/ringclock/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 10 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// clock is a time source that sync can adjust.
type clock interface {
	timesync.RTC
	Now() time.Time
}

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	bus, closeBus := buildBus(ctx, cfg, log)
	defer closeBus()

	driver, closeDriver, err := buildLEDDriver(cfg, os.Stdout)
	if err != nil {
		log.Error(ctx, "failed to open LED ring", logger.String("driver", cfg.LEDDriver), logger.Error(err))
		return
	}
	defer closeDriver()

	var runner *host.Runner
	appOpts, err := buildAppOptions(cfg, log, bus, driver, func() { runner.Minimise() })
	if err != nil {
		log.Error(ctx, "invalid app configuration", logger.Error(err))
		return
	}
	clockApp := app.New(ctx, appOpts...)

	queue := input.NewQueue(input.WithCapacity(cfg.InputQueueSize))
	runner = host.New(clockApp, queue, canvas.NewRaster(cfg.ScreenRadius),
		host.WithFrameInterval(cfg.FrameInterval()),
		host.WithBackgroundInterval(cfg.BackgroundInterval()),
		host.WithLogger(log.Named("host")),
	)
	go runner.Run(ctx)

	go startSystemMetricsUpdater(ctx)

	var srv *http.Server
	if cfg.Addr != "" {
		mux := http.NewServeMux()
		api.NewServer(queue, runner).Register(ctx, mux)
		swagger.Register(ctx, mux)
		site.Register(ctx, mux)

		srv = &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(ctx, "HTTP server failed", logger.Error(err))
				stop()
			}
		}()
	}

	<-ctx.Done()
	log.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "server shutdown failed", logger.Error(err))
		}
	}
	_ = queue.Close()
	if err := runner.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "runner shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "stopped")
}

// buildAppOptions maps configuration onto app options. Sync is only enabled
// when a URL is configured.
func buildAppOptions(cfg *config.Config, log logger.Logger, bus events.Bus, driver ledring.Driver, minimise func()) ([]app.Option, error) {
	rule, err := cfg.Leap()
	if err != nil {
		return nil, err
	}
	clk := buildClock(cfg)

	opts := []app.Option{
		app.WithLogger(log.Named("app")),
		app.WithBus(bus),
		app.WithClock(clk.Now),
		app.WithScreenRadius(float64(cfg.ScreenRadius)),
		app.WithLeapRule(rule),
		app.WithSchemeIndex(cfg.SchemeIndex),
		app.WithButtonLifetime(cfg.ButtonLifetime()),
		app.WithNotificationDuration(cfg.NotificationDuration()),
		app.WithMinimise(minimise),
	}
	if driver != nil {
		opts = append(opts, app.WithLEDDriver(driver))
	}
	if cfg.SyncURL != "" {
		opts = append(opts, app.WithTimeSync(
			timeapi.New(timeapi.WithURL(cfg.SyncURL)),
			clk,
			timesync.WithInterval(cfg.SyncInterval()),
			timesync.WithTimeout(cfg.SyncTimeout()),
		))
	}
	return opts, nil
}

func buildClock(cfg *config.Config) clock {
	if cfg.RTC == config.RTCSystem {
		return rtc.NewSystem(time.Local)
	}
	return rtc.NewSoftware(time.Local)
}

// buildBus logs events and, with a broker configured, also publishes them
// over MQTT. A broker that cannot be reached is logged and skipped.
func buildBus(ctx context.Context, cfg *config.Config, log logger.Logger) (events.Bus, func()) {
	logBus := events.NewLogBus(log.Named("events"))
	if cfg.MQTTBroker == "" {
		return logBus, func() {}
	}

	pub, err := mqtt.Connect(cfg.MQTTBroker, mqtt.WithTopic(cfg.MQTTTopic), mqtt.WithLogger(log.Named("mqtt")))
	if err != nil {
		log.Warn(ctx, "mqtt unavailable; events are only logged", logger.String("broker", cfg.MQTTBroker), logger.Error(err))
		return logBus, func() {}
	}
	return events.Multi{logBus, pub}, pub.Close
}

// buildLEDDriver opens the configured ring driver. The none driver returns a
// nil driver and the app skips LED commits.
func buildLEDDriver(cfg *config.Config, console io.Writer) (ledring.Driver, func(), error) {
	switch cfg.LEDDriver {
	case config.LEDDriverNone:
		return nil, func() {}, nil
	case config.LEDDriverNRZ:
		d, err := led.OpenNRZ(cfg.LEDSPIPort, ledring.Slots)
		if err != nil {
			return nil, nil, fmt.Errorf("open nrz %s: %w", cfg.LEDSPIPort, err)
		}
		return d, func() { _ = d.Close() }, nil
	default:
		return led.NewConsole(console, ledring.Slots), func() {}, nil
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
