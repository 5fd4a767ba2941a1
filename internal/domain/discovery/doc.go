// Package discovery finds launchable scripts on disk.
//
// A Scanner walks a root directory recursively (charlievieth/fastwalk) and
// keeps every regular file whose name carries the qualifying extension and
// does not start with the reserved prefix. Directory symlinks are never
// followed, so symlink loops cannot trap the walk. Optional doublestar
// patterns prune files and whole subtrees.
//
// A missing root is not fatal: Scan returns an empty catalog together with
// ErrDirectoryNotFound and the caller decides how to report it.
//
// Example Usage:
//
//	scanner, err := discovery.NewScanner(discovery.Options{
//	    Extension:      ".py",
//	    ReservedPrefix: "__",
//	    Exclude:        []string{"**/tests/**"},
//	}, logger)
//	items, err := scanner.Scan(ctx, "Modules")
package discovery
