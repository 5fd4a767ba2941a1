// Package app implements the launcher's lifecycle controller.
//
// The Controller owns the catalog of discovered apps and drives the
// registry: Run launches an app by name and records it, Close terminates
// and forgets it, Shutdown closes everything that is still tracked. Every
// operation runs under one mutex, so commands from the console and the
// admin API are processed one at a time.
package app
