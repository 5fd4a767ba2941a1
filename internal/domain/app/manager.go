package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/domain/discovery"
	"github.com/GriffinCanCode/MiraOS/internal/domain/launch"
	"github.com/GriffinCanCode/MiraOS/internal/domain/registry"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/MiraOS/internal/shared/id"
	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// Scanner discovers launchable items under a root directory
type Scanner interface {
	Scan(ctx context.Context, root string) ([]types.Item, error)
}

// Controller orchestrates app lifecycle
type Controller struct {
	mu         sync.Mutex
	root       string
	scanner    Scanner
	catalog    []types.Item // Protected by mu
	registry   *registry.Manager
	launcher   launch.Strategy
	terminator launch.Terminator
	logger     *logging.Logger
	metrics    *monitoring.Metrics
	now        func() time.Time
}

// NewController creates a controller for the apps under root
func NewController(root string, scanner Scanner, launcher launch.Strategy, terminator launch.Terminator, reg *registry.Manager, logger *logging.Logger) *Controller {
	if reg == nil {
		reg = registry.NewManager()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Controller{
		root:       root,
		scanner:    scanner,
		catalog:    []types.Item{},
		registry:   reg,
		launcher:   launcher,
		terminator: terminator,
		logger:     logger,
		now:        time.Now,
	}
}

// WithMetrics adds metrics tracking to the controller
func (c *Controller) WithMetrics(metrics *monitoring.Metrics) *Controller {
	c.metrics = metrics
	return c
}

// WithClock replaces the wall clock used for start times
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// Root returns the scanned directory
func (c *Controller) Root() string {
	return c.root
}

// Strategy returns the name of the launch strategy in use
func (c *Controller) Strategy() string {
	return c.launcher.Name()
}

// Scan rebuilds the catalog. A missing apps directory leaves the catalog
// empty and returns discovery.ErrDirectoryNotFound; any other failure keeps
// the previous catalog.
func (c *Controller) Scan(ctx context.Context) ([]types.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.scanner.Scan(ctx, c.root)
	switch {
	case err == nil:
		c.metrics.RecordScan("success", len(items))
	case errors.Is(err, discovery.ErrDirectoryNotFound):
		items = nil
		c.metrics.RecordScan("not_found", 0)
		c.logger.Warn("Apps directory not found", zap.String("path", c.root))
	default:
		c.metrics.RecordScan("error", len(c.catalog))
		c.logger.Error("Scan failed", zap.String("path", c.root), zap.Error(err))
		return c.catalogLocked(), err
	}

	if items == nil {
		items = []types.Item{}
	}
	c.catalog = items
	c.logger.Info("Apps discovered", zap.String("path", c.root), zap.Int("count", len(items)))
	return c.catalogLocked(), err
}

// Catalog returns a copy of the discovered apps
func (c *Controller) Catalog() []types.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalogLocked()
}

func (c *Controller) catalogLocked() []types.Item {
	return append([]types.Item{}, c.catalog...)
}

// find returns the first catalog item with the given base name (must hold lock)
func (c *Controller) find(name string) (types.Item, bool) {
	for _, item := range c.catalog {
		if item.Name == name {
			return item, true
		}
	}
	return types.Item{}, false
}

// Run launches the named app and tracks it. Launching a name that is
// already tracked replaces the tracked entry; the earlier process keeps
// running untracked.
func (c *Controller) Run(ctx context.Context, name string) (types.ProcessInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.find(name)
	if !ok {
		return types.ProcessInfo{}, fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}

	strategy := c.launcher.Name()
	handle, err := c.launcher.Launch(ctx, item)
	if err != nil {
		c.metrics.RecordLaunch(strategy, "failure")
		c.logger.Error("Launch failed",
			zap.String("app", name),
			zap.String("path", item.Path),
			zap.String("strategy", strategy),
			zap.Error(err))
		return types.ProcessInfo{}, err
	}

	entry := registry.Entry{
		Name:      name,
		LaunchID:  id.NewLaunchID(),
		Item:      item,
		Strategy:  strategy,
		StartedAt: c.now(),
		Handle:    handle,
	}
	if replaced := c.registry.Record(entry); replaced {
		c.logger.Warn("Replaced tracked process with the same name", zap.String("app", name))
	}

	c.metrics.RecordLaunch(strategy, "success")
	c.metrics.SetProcessesRunning(c.registry.Len())
	c.logger.Info("App launched",
		zap.String("app", name),
		zap.String("launch_id", entry.LaunchID.String()),
		zap.Int("pid", handle.PID()),
		zap.String("strategy", strategy))

	return entry.Info(), nil
}

// Running returns a snapshot of the tracked processes
func (c *Controller) Running() []types.ProcessInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.List()
}

// Close terminates the named process. The entry is removed even when
// termination fails, in which case a *TerminationError is returned.
func (c *Controller) Close(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked(ctx, name)
}

func (c *Controller) closeLocked(ctx context.Context, name string) error {
	entry, ok := c.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRunning, name)
	}

	start := c.now()
	err := c.terminator.Terminate(ctx, entry.Handle)
	c.registry.Remove(name)
	c.metrics.SetProcessesRunning(c.registry.Len())

	fields := []zap.Field{
		zap.String("app", name),
		zap.String("launch_id", entry.LaunchID.String()),
		zap.Int("pid", entry.Handle.PID()),
	}
	if err != nil {
		c.metrics.RecordClose("failure", c.now().Sub(start))
		c.logger.Error("Terminate failed, entry removed", append(fields, zap.Error(err))...)
		return &TerminationError{Name: name, Cause: err}
	}

	c.metrics.RecordClose("success", c.now().Sub(start))
	c.logger.Info("App closed", fields...)
	return nil
}

// Shutdown closes every tracked process. Failures are logged and combined;
// they never stop the sweep. The registry is empty afterwards.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := c.registry.Names()
	if len(names) == 0 {
		return nil
	}
	c.logger.Info("Closing running apps", zap.Int("count", len(names)))

	var errs error
	for _, name := range names {
		errs = multierr.Append(errs, c.closeLocked(ctx, name))
	}
	return errs
}

// Output returns the captured output of a process launched with output capture
func (c *Controller) Output(name string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRunning, name)
	}
	reader, ok := entry.Handle.(types.OutputReader)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoOutput, name)
	}
	out := reader.Output()
	if out == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoOutput, name)
	}
	return out, nil
}
