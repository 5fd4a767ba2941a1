package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/domain/app"
	"github.com/GriffinCanCode/MiraOS/internal/domain/discovery"
	"github.com/GriffinCanCode/MiraOS/internal/domain/launch"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// Controller is the subset of app.Controller served over HTTP
type Controller interface {
	Root() string
	Strategy() string
	Scan(ctx context.Context) ([]types.Item, error)
	Catalog() []types.Item
	Run(ctx context.Context, name string) (types.ProcessInfo, error)
	Running() []types.ProcessInfo
	Close(ctx context.Context, name string) error
	Output(name string) ([]byte, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	ctrl   Controller
	logger *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(ctrl Controller, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{ctrl: ctrl, logger: logger}
}

// Health handles health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "miraos",
		"apps_dir": h.ctrl.Root(),
		"strategy": h.ctrl.Strategy(),
		"apps":     len(h.ctrl.Catalog()),
		"running":  len(h.ctrl.Running()),
	})
}

// ListApps lists discovered apps
func (h *Handlers) ListApps(c *gin.Context) {
	apps := h.ctrl.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"apps":  apps,
		"count": len(apps),
	})
}

// ScanApps rescans the apps directory
func (h *Handlers) ScanApps(c *gin.Context) {
	apps, err := h.ctrl.Scan(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"apps":  apps,
		"count": len(apps),
	})
}

// RunApp launches an app by name
func (h *Handlers) RunApp(c *gin.Context) {
	info, err := h.ctrl.Run(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// ListProcesses lists running apps
func (h *Handlers) ListProcesses(c *gin.Context) {
	running := h.ctrl.Running()
	c.JSON(http.StatusOK, gin.H{
		"processes": running,
		"count":     len(running),
	})
}

// CloseProcess closes a running app
func (h *Handlers) CloseProcess(c *gin.Context) {
	name := c.Param("name")
	if err := h.ctrl.Close(c.Request.Context(), name); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"name":    name,
	})
}

// ProcessOutput returns the captured output of a running app
func (h *Handlers) ProcessOutput(c *gin.Context) {
	out, err := h.ctrl.Output(c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", out)
}

// fail maps controller errors to status codes and writes an error body
func (h *Handlers) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			tracing.Field(c.Request.Context()),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// StatusFor returns the HTTP status for a controller error
func StatusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrAppNotFound),
		errors.Is(err, app.ErrNotRunning),
		errors.Is(err, discovery.ErrDirectoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrNoOutput):
		return http.StatusConflict
	case errors.Is(err, launch.ErrNoTerminalAvailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
