package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiraOS/internal/shared/types"
)

// ErrDirectoryNotFound is returned when the scan root does not exist or is not a directory
var ErrDirectoryNotFound = errors.New("apps directory not found")

// Options controls which files qualify as launchable
type Options struct {
	Extension      string
	ReservedPrefix string
	Exclude        []string // doublestar patterns, relative to the scan root
}

// Scanner discovers launchable items under a root directory
type Scanner struct {
	opts   Options
	logger *logging.Logger
}

// NewScanner creates a scanner, rejecting malformed exclude patterns up front
func NewScanner(opts Options, logger *logging.Logger) (*Scanner, error) {
	if opts.Extension == "" {
		return nil, errors.New("extension is required")
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{opts: opts, logger: logger}, nil
}

// Qualifies reports whether a file name is launchable
func (s *Scanner) Qualifies(name string) bool {
	if !strings.HasSuffix(name, s.opts.Extension) {
		return false
	}
	if s.opts.ReservedPrefix != "" && strings.HasPrefix(name, s.opts.ReservedPrefix) {
		return false
	}
	return true
}

// Scan walks root and returns every qualifying file, sorted by path.
func (s *Scanner) Scan(ctx context.Context, root string) ([]types.Item, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if missing(err) {
			return []types.Item{}, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
		}
		return []types.Item{}, err
	}
	if !info.IsDir() {
		return []types.Item{}, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, root)
	}

	var (
		mu    sync.Mutex
		items = []types.Item{}
	)

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Unreadable subtrees are skipped, not fatal
			s.logger.Debug("Skipping unreadable path", zap.String("path", path), zap.Error(walkErr))
			return nil
		}

		if s.excluded(absRoot, path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !s.Qualifies(d.Name()) || !isRegular(path, d) {
			return nil
		}

		mu.Lock()
		items = append(items, types.NewItem(path))
		mu.Unlock()
		return nil
	})
	if err != nil {
		return []types.Item{}, fmt.Errorf("scan %s: %w", root, err)
	}

	// fastwalk visits directories in parallel; sorting keeps name lookups deterministic
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })

	s.logger.Debug("Scan complete", zap.String("root", absRoot), zap.Int("apps", len(items)))
	return items, nil
}

// missing reports stat errors meaning no directory exists at the path
func missing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ENAMETOOLONG)
}

func (s *Scanner) excluded(root, path string) bool {
	if len(s.opts.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range s.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// isRegular accepts regular files and symlinks that resolve to regular files.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	return err == nil && target.Mode().IsRegular()
}
