package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/api/console"
	apihttp "github.com/GriffinCanCode/MiraOS/internal/api/http"
	"github.com/GriffinCanCode/MiraOS/internal/domain/app"
	"github.com/GriffinCanCode/MiraOS/internal/domain/discovery"
	"github.com/GriffinCanCode/MiraOS/internal/domain/launch"
	"github.com/GriffinCanCode/MiraOS/internal/domain/registry"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/monitoring"
)

// shutdownGrace bounds how long in-flight admin API requests may take to finish
const shutdownGrace = 5 * time.Second

// Server wraps the launcher and its surfaces
type Server struct {
	config     *config.Config
	logger     *logging.Logger
	metrics    *monitoring.Metrics
	controller *app.Controller
	console    *console.Console
	httpServer *http.Server
	out        io.Writer
}

// Options customizes NewServer
type Options struct {
	// In and Out are the console streams; a nil In runs without a console
	In  io.Reader
	Out io.Writer

	// GOOS overrides the host family used to pick a launch strategy
	GOOS string

	// Logger replaces the logger built from the configuration
	Logger *logging.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts Options) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	logger.Info("Initializing Mira OS",
		zap.String("apps_dir", cfg.Apps.Dir),
		zap.String("strategy", cfg.Launch.Strategy),
		zap.Bool("http", cfg.HTTP.Enabled),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	scanner, err := discovery.NewScanner(discovery.Options{
		Extension:      cfg.Apps.Extension,
		ReservedPrefix: cfg.Apps.ReservedPrefix,
		Exclude:        cfg.Apps.Exclude,
	}, logger.Named("discovery"))
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	strategy, terminator, err := launch.ForHost(goos, launch.FromConfig(cfg.Launch, logger.Named("launch")))
	if err != nil {
		return nil, fmt.Errorf("failed to select launch strategy: %w", err)
	}
	logger.Info("Launch strategy selected", zap.String("strategy", strategy.Name()), zap.String("os", goos))

	controller := app.NewController(cfg.Apps.Dir, scanner, strategy, terminator, registry.NewManager(), logger.Named("controller")).
		WithMetrics(metrics)

	s := &Server{
		config:     cfg,
		logger:     logger,
		metrics:    metrics,
		controller: controller,
		out:        opts.Out,
	}

	if opts.In != nil {
		s.console = console.New(controller, opts.In, opts.Out, logger.Named("console"))
	}

	if cfg.HTTP.Enabled {
		handlers := apihttp.NewHandlers(controller, logger.Named("http"))
		router := apihttp.NewRouter(handlers, apihttp.RouterConfig{
			HTTP:        cfg.HTTP,
			RateLimit:   cfg.RateLimit,
			Development: cfg.Logging.Development,
			Metrics:     metrics,
			Logger:      logger.Named("http"),
		})
		s.httpServer = &http.Server{
			Addr:              cfg.HTTP.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	if s.console == nil && s.httpServer == nil {
		return nil, errors.New("nothing to run: console disabled and admin API not enabled")
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// Controller returns the lifecycle controller
func (s *Server) Controller() *app.Controller {
	return s.controller
}

// Run scans for apps and serves the console and admin API until the console
// exits, the admin API fails, or ctx is cancelled. Running apps are closed
// before Run returns.
func (s *Server) Run(ctx context.Context) error {
	// A failed scan leaves the catalog empty; the console can rescan later
	if _, err := s.controller.Scan(ctx); err != nil {
		if errors.Is(err, discovery.ErrDirectoryNotFound) {
			fmt.Fprintf(s.out, "Error: Base directory '%s' does not exist.\n", s.config.Apps.Dir)
		} else {
			fmt.Fprintf(s.out, "Error: Failed to scan '%s': %v\n", s.config.Apps.Dir, err)
		}
	}

	httpErr := make(chan error, 1)
	if s.httpServer != nil {
		go func() {
			s.logger.Info("Starting admin API", zap.String("addr", s.httpServer.Addr))
			if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				httpErr <- err
			}
		}()
	}

	consoleDone := make(chan error, 1)
	if s.console != nil {
		go func() {
			consoleDone <- s.console.Run(ctx)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutdown requested")
	case err := <-consoleDone:
		if err != nil {
			runErr = fmt.Errorf("console: %w", err)
		}
	case err := <-httpErr:
		s.logger.Error("Admin API failed", zap.Error(err))
		runErr = fmt.Errorf("admin API: %w", err)
	}

	return multierr.Combine(runErr, s.Close(context.WithoutCancel(ctx)))
}

// Close stops the admin API and closes every running app
func (s *Server) Close(ctx context.Context) error {
	var errs error

	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shut down admin API", zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("admin API shutdown: %w", err))
		}
	}

	if len(s.controller.Running()) > 0 {
		fmt.Fprintln(s.out, "Exiting Mira OS. Closing all running apps...")
	}
	if err := s.controller.Shutdown(ctx); err != nil {
		s.logger.Warn("Some apps failed to close", zap.Error(err))
		errs = multierr.Append(errs, err)
	}

	// Sync logger before exit
	_ = s.logger.Sync()

	return errs
}
